package lint

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Position is a 1-based line/column pair derived from a byte offset.
type Position struct {
	Line   int
	Column int
}

// positionAt translates a byte offset into a Position. Offsets past the
// end of source clamp to the last line.
func positionAt(source []byte, offset int) Position {
	if offset > len(source) {
		offset = len(source)
	}
	line, lineStart := 1, 0
	for i := 0; i < offset; i++ {
		if source[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return Position{Line: line, Column: offset - lineStart + 1}
}

// RenderText writes human-readable findings for reports to w, one block
// per diagnostic with a source snippet pointing at the offending token.
func RenderText(w io.Writer, reports []FileReport) {
	for _, report := range reports {
		if report.ParseFailure != "" {
			fmt.Fprintf(w, "%s: parse error: %s\n\n", report.Path, report.ParseFailure)
		}
		for _, d := range report.Diagnostics {
			pos := positionAt(report.Source, d.Range.Start)
			fmt.Fprintf(w, "%s: %s\n", d.Severity, d.Message)
			fmt.Fprint(w, codeSnippet(report.Path, report.Source, pos, d.Range.Len()))
			fmt.Fprintln(w)
		}
	}
}

// codeSnippet renders the offending line in Rust/Clang style:
//
//	 --> flows/login.yaml:5:3
//	  |
//	5 | - tapOnn: foo
//	  |   ^^^^^^
func codeSnippet(path string, source []byte, pos Position, width int) string {
	lines := strings.Split(string(source), "\n")
	if pos.Line > len(lines) {
		return ""
	}
	lineContent := lines[pos.Line-1]

	var snippet strings.Builder
	snippet.WriteString(fmt.Sprintf("  --> %s:%d:%d\n", path, pos.Line, pos.Column))
	snippet.WriteString("   |\n")
	snippet.WriteString(fmt.Sprintf("%2d | %s\n", pos.Line, lineContent))
	snippet.WriteString("   | ")
	if pos.Column > 0 && pos.Column <= len(lineContent)+1 {
		if width < 1 {
			width = 1
		}
		snippet.WriteString(strings.Repeat(" ", pos.Column-1) + strings.Repeat("^", width))
	}
	snippet.WriteString("\n")
	return snippet.String()
}

type jsonDiagnostic struct {
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Severity string `json:"severity"`
	Message  string `json:"message"`
}

type jsonReport struct {
	Path        string           `json:"path"`
	ParseError  string           `json:"parseError,omitempty"`
	Diagnostics []jsonDiagnostic `json:"diagnostics"`
}

// RenderJSON writes findings for reports to w as a JSON array, one
// element per file.
func RenderJSON(w io.Writer, reports []FileReport) error {
	out := make([]jsonReport, 0, len(reports))
	for _, report := range reports {
		entry := jsonReport{
			Path:        report.Path,
			ParseError:  report.ParseFailure,
			Diagnostics: make([]jsonDiagnostic, 0, len(report.Diagnostics)),
		}
		for _, d := range report.Diagnostics {
			pos := positionAt(report.Source, d.Range.Start)
			entry.Diagnostics = append(entry.Diagnostics, jsonDiagnostic{
				Line:     pos.Line,
				Column:   pos.Column,
				Severity: d.Severity.String(),
				Message:  d.Message,
			})
		}
		out = append(out, entry)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
