// Package reference scans scalar text for file references and output
// variable interpolations. Spans are created fresh per scan and carry
// ranges relative to the scalar text; callers shift them into document
// coordinates.
package reference

import (
	"regexp"
	"strings"

	"github.com/Trendyol/maestro-assistant/pkgs/document"
	"github.com/Trendyol/maestro-assistant/pkgs/schema"
)

var (
	filePattern   = regexp.MustCompile(`\.(js|yaml|yml)$`)
	outputPattern = regexp.MustCompile(`\$\{output\.([^}]*)\}`)
)

// FileReference marks a scalar whose whole text names a file.
type FileReference struct {
	Range   document.Range
	RawPath string
}

// OutputReference marks one ${output.a.b} interpolation inside a scalar.
type OutputReference struct {
	Range document.Range
	Path  []string
}

// Spans is the result of scanning one scalar. The two extractions are
// independent; both can fire on the same text.
type Spans struct {
	Files   []FileReference
	Outputs []OutputReference
}

// Empty reports whether the scan produced no references.
func (s Spans) Empty() bool {
	return len(s.Files) == 0 && len(s.Outputs) == 0
}

// Extract scans scalarText in the context of its enclosing command. def
// may be nil when the scalar has no known enclosing command; only the
// interpolation scan runs then.
func Extract(scalarText string, def *schema.CommandDefinition) Spans {
	var spans Spans

	if def != nil && def.AcceptsFileReferences && filePattern.MatchString(scalarText) {
		spans.Files = append(spans.Files, FileReference{
			Range:   document.Range{Start: 0, End: len(scalarText)},
			RawPath: scalarText,
		})
	}

	for _, idx := range outputPattern.FindAllStringSubmatchIndex(scalarText, -1) {
		spans.Outputs = append(spans.Outputs, OutputReference{
			Range: document.Range{Start: idx[0], End: idx[1]},
			Path:  strings.Split(scalarText[idx[2]:idx[3]], "."),
		})
	}

	return spans
}
