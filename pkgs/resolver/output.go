package resolver

import (
	"log/slog"
	"path"
	"regexp"

	"github.com/Trendyol/maestro-assistant/pkgs/fsys"
	"github.com/Trendyol/maestro-assistant/pkgs/scanner"
)

// runScriptPatterns match runScript directives under the three quoting
// conventions. Collected matches are concatenated without
// de-duplication: a path named twice is tried twice, harmlessly.
var runScriptPatterns = []*regexp.Regexp{
	regexp.MustCompile(`runScript:\s*([^\s"']+)`),
	regexp.MustCompile(`runScript:\s*"([^"]+)"`),
	regexp.MustCompile(`runScript:\s*'([^']+)'`),
}

// Location is a definition site inside a script file.
type Location struct {
	File   string
	Offset int
	Length int
}

// OutputResolver resolves ${output.*} variable paths against the script
// files reachable from an anchor flow document.
type OutputResolver struct {
	fs     fsys.FS
	files  *FileResolver
	logger *slog.Logger
}

// NewOutputResolver creates an OutputResolver. A nil logger discards
// per-candidate failure reports.
func NewOutputResolver(fs fsys.FS, logger *slog.Logger) *OutputResolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &OutputResolver{fs: fs, files: NewFileResolver(fs), logger: logger}
}

// ResolveValue resolves a dotted output path to its textual value: the
// whole balanced object for a single-segment path, otherwise the value
// span of the terminal property.
func (r *OutputResolver) ResolveValue(anchor string, varPath []string) (string, bool) {
	value, _, ok := r.resolve(anchor, varPath, scanner.ModeValue)
	return value, ok
}

// LocateDefinition resolves a dotted output path to the script-file
// offset of its defining property name, for go-to-definition.
func (r *OutputResolver) LocateDefinition(anchor string, varPath []string) (Location, bool) {
	_, loc, ok := r.resolve(anchor, varPath, scanner.ModeLocation)
	return loc, ok
}

// resolve walks the candidate scripts in order. The first file where the
// top-level definition is found wins; if deeper navigation then fails,
// the remaining candidates are not tried (first-viable-file semantics,
// not best-match).
func (r *OutputResolver) resolve(anchor string, varPath []string, mode scanner.Mode) (string, Location, bool) {
	if len(varPath) == 0 {
		return "", Location{}, false
	}

	for _, candidate := range r.candidateScripts(anchor) {
		text, err := r.fs.ReadText(candidate)
		if err != nil {
			r.logger.Warn("skipping unreadable candidate script", "file", candidate, "error", err)
			continue
		}

		def, ok := scanner.FindTopLevelDefinition(text, varPath[0])
		if !ok {
			continue
		}

		// This file owns the definition; succeed or fail here.
		if len(varPath) == 1 {
			if mode == scanner.ModeLocation {
				return "", Location{File: candidate, Offset: def.NameStart, Length: def.NameEnd - def.NameStart}, true
			}
			object := scanner.ExtractBalanced(text, def.Brace)
			if object == "" {
				return "", Location{}, false
			}
			return object, Location{}, true
		}

		result, ok := scanner.NavigateProperty(text, varPath[1:], def.Brace, mode)
		if !ok {
			return "", Location{}, false
		}
		if mode == scanner.ModeLocation {
			return "", Location{File: candidate, Offset: result.Start, Length: result.End - result.Start}, true
		}
		return result.Value, Location{}, true
	}

	return "", Location{}, false
}

// candidateScripts orders the scripts to try: every runScript directive
// in the anchor source (resolved strictly), then every .js file under
// the anchor's directory.
func (r *OutputResolver) candidateScripts(anchor string) []string {
	anchorDir := normalizeDir(path.Dir(anchor))

	var candidates []string
	if source, err := r.fs.ReadText(anchor); err != nil {
		r.logger.Warn("cannot read anchor document", "file", anchor, "error", err)
	} else {
		for _, raw := range collectRunScriptPaths(source) {
			if resolved, ok := r.files.ResolveScriptPath(anchorDir, raw); ok {
				candidates = append(candidates, resolved)
			}
		}
	}

	return append(candidates, r.files.ListScriptFiles(anchorDir)...)
}

// collectRunScriptPaths gathers runScript paths pattern by pattern,
// keeping duplicates and encounter order within each pattern.
func collectRunScriptPaths(source string) []string {
	var paths []string
	for _, pattern := range runScriptPatterns {
		for _, match := range pattern.FindAllStringSubmatch(source, -1) {
			paths = append(paths, match[1])
		}
	}
	return paths
}
