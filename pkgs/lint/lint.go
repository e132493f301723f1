// Package lint runs the validator over flow files on disk and renders
// the findings for terminal or JSON consumers.
package lint

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Trendyol/maestro-assistant/pkgs/document"
	"github.com/Trendyol/maestro-assistant/pkgs/flowcache"
	"github.com/Trendyol/maestro-assistant/pkgs/schema"
	"github.com/Trendyol/maestro-assistant/pkgs/validator"
)

// FileReport holds the findings for one file.
type FileReport struct {
	Path        string
	Source      []byte
	Diagnostics []validator.Diagnostic
	// ParseFailure is set when the file is not even valid YAML; the
	// diagnostics list then covers only the documents parsed before
	// the failure.
	ParseFailure string
}

// HasErrors reports whether the file produced any error-severity
// finding or failed to parse.
func (r FileReport) HasErrors() bool {
	if r.ParseFailure != "" {
		return true
	}
	for _, d := range r.Diagnostics {
		if d.Severity == validator.SeverityError {
			return true
		}
	}
	return false
}

// Runner lints files and directories.
type Runner struct {
	schema *schema.Schema
	cache  *flowcache.Cache
	check  *validator.Validator
	logger *slog.Logger
}

// NewRunner builds a Runner. cache gates which YAML files in a
// directory walk are treated as flows; nil disables gating by caching
// nothing and detecting every time.
func NewRunner(s *schema.Schema, cache *flowcache.Cache, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Runner{
		schema: s,
		cache:  cache,
		check:  validator.New(s, logger),
		logger: logger,
	}
}

// LintFile lints a single file regardless of classification.
func (r *Runner) LintFile(path string) (FileReport, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return FileReport{}, fmt.Errorf("lint: %w", err)
	}
	return r.lintSource(path, source), nil
}

// lintSource validates every document in source.
func (r *Runner) lintSource(path string, source []byte) FileReport {
	report := FileReport{Path: path, Source: source}

	docs, err := document.ParseAll(source)
	if err != nil {
		report.ParseFailure = err.Error()
	}
	for _, doc := range docs {
		report.Diagnostics = append(report.Diagnostics, r.check.Validate(doc)...)
	}
	return report
}

// LintPaths lints files and directory trees. Inside directories, only
// YAML files that classify as flow documents are linted; files named
// explicitly are always linted.
func (r *Runner) LintPaths(paths []string) ([]FileReport, error) {
	var reports []FileReport
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return reports, fmt.Errorf("lint: %w", err)
		}
		if !info.IsDir() {
			report, err := r.LintFile(path)
			if err != nil {
				return reports, err
			}
			reports = append(reports, report)
			continue
		}

		walked, err := r.lintDir(path)
		if err != nil {
			return reports, err
		}
		reports = append(reports, walked...)
	}
	return reports, nil
}

func (r *Runner) lintDir(root string) ([]FileReport, error) {
	var reports []FileReport
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() || !isYAMLFile(path) {
			return nil
		}

		source, err := os.ReadFile(path)
		if err != nil {
			// One unreadable file must not stop the walk.
			r.logger.Warn("skipping unreadable file", "file", path, "error", err)
			return nil
		}
		if !r.isFlow(path, source) {
			return nil
		}
		reports = append(reports, r.lintSource(path, source))
		return nil
	})
	if err != nil {
		return reports, fmt.Errorf("lint: walk %s: %w", root, err)
	}
	return reports, nil
}

func (r *Runner) isFlow(path string, source []byte) bool {
	if r.cache == nil {
		return flowcache.Detect(source, r.schema)
	}
	return r.cache.Classify(path, source, r.schema)
}

func isYAMLFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}
