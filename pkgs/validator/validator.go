// Package validator walks a document tree against the command schema and
// produces diagnostics. Each diagnostic is independent: one malformed
// node never blocks classification of its siblings.
package validator

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/Trendyol/maestro-assistant/pkgs/document"
	"github.com/Trendyol/maestro-assistant/pkgs/schema"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityInfo
)

func (s Severity) String() string {
	if s == SeverityInfo {
		return "info"
	}
	return "error"
}

// Diagnostic is one finding of a validation pass. Produced fresh per
// pass; never persisted.
type Diagnostic struct {
	Range    document.Range
	Severity Severity
	Message  string
}

// Validator checks documents against a command schema.
type Validator struct {
	schema *schema.Schema
	logger *slog.Logger
}

// New creates a Validator. A nil logger discards the fail-soft reports.
func New(s *schema.Schema, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Validator{schema: s, logger: logger}
}

// Validate walks the document and returns every diagnostic found.
func (v *Validator) Validate(doc *document.Document) []Diagnostic {
	var diags []Diagnostic
	if doc == nil || doc.Root == nil {
		return diags
	}
	document.Walk(doc.Root, func(n document.Node) bool {
		switch node := n.(type) {
		case *document.KeyValue:
			diags = append(diags, v.checkNode(func() []Diagnostic {
				return v.checkKeyValue(node)
			})...)
		case *document.SequenceItem:
			if scalar, ok := node.Value.(*document.Scalar); ok {
				diags = append(diags, v.checkNode(func() []Diagnostic {
					return v.checkItemScalar(node, scalar)
				})...)
			}
		}
		return true
	})
	return diags
}

// checkNode runs a single node check fail-soft: a panic is logged and
// swallowed so the rest of the pass continues.
func (v *Validator) checkNode(check func() []Diagnostic) (diags []Diagnostic) {
	defer func() {
		if r := recover(); r != nil {
			v.logger.Warn("node check failed", "panic", r)
			diags = nil
		}
	}()
	return check()
}

// checkKeyValue applies subcommand legality and required-value rules.
func (v *Validator) checkKeyValue(kv *document.KeyValue) []Diagnostic {
	parent := enclosingCommand(kv)

	var parentDef *schema.CommandDefinition
	if parent != nil {
		if d, ok := v.schema.Lookup(parent.Key); ok {
			parentDef = d
		}
	}

	// Open-ended bags (env, arguments, ...) accept anything below them.
	if parentDef != nil && parentDef.AcceptsUndefinedChildren {
		return nil
	}

	var diags []Diagnostic

	def, known := v.schema.Lookup(kv.Key)
	switch {
	case parentDef != nil && len(parentDef.AllowedChildren) > 0 && !parentDef.AllowsChild(kv.Key):
		diags = append(diags, Diagnostic{
			Range:    kv.KeyRng,
			Severity: SeverityError,
			Message: fmt.Sprintf("Subcommand '%s' is not allowed for '%s'. Allowed subcommands: %s",
				kv.Key, parent.Key, strings.Join(parentDef.AllowedChildrenSorted(), ", ")),
		})
	case !known:
		diags = append(diags, Diagnostic{
			Range:    kv.KeyRng,
			Severity: SeverityError,
			Message:  unknownCommandMessage(kv.Key, v.schema),
		})
	}

	if !known {
		return diags
	}

	if len(def.AllowedChildren) > 0 || def.AcceptsRawValue {
		if !hasUsableValue(kv.Value) {
			diags = append(diags, Diagnostic{
				Range:    kv.KeyRng,
				Severity: SeverityError,
				Message:  missingValueMessage(def),
			})
		}
	} else if kv.Value == nil {
		diags = append(diags, Diagnostic{
			Range:    kv.KeyRng,
			Severity: SeverityError,
			Message:  fmt.Sprintf("The key '%s' does not accept an empty value", kv.Key),
		})
	}

	return diags
}

// checkItemScalar classifies a plain scalar sequence item as a command
// token, unless the enclosing command accepts undefined children.
func (v *Validator) checkItemScalar(item *document.SequenceItem, scalar *document.Scalar) []Diagnostic {
	if parent := enclosingCommand(item); parent != nil {
		if d, ok := v.schema.Lookup(parent.Key); ok && d.AcceptsUndefinedChildren {
			return nil
		}
	}

	if Classify(scalar.Text, v.schema) != TokenInvalid {
		return nil
	}
	return []Diagnostic{{
		Range:    scalar.Rng,
		Severity: SeverityError,
		Message:  unknownCommandMessage(scalar.Text, v.schema),
	}}
}

// enclosingCommand walks ancestors until the nearest KeyValue node.
func enclosingCommand(n document.Node) *document.KeyValue {
	for p := n.Parent(); p != nil; p = p.Parent() {
		if kv, ok := p.(*document.KeyValue); ok {
			return kv
		}
	}
	return nil
}

// hasUsableValue reports whether a node satisfies a required-value rule:
// a non-blank scalar, a non-empty mapping, or a non-empty sequence.
func hasUsableValue(n document.Node) bool {
	switch node := n.(type) {
	case *document.Scalar:
		return strings.TrimSpace(node.Text) != ""
	case *document.Mapping:
		return len(node.Entries) > 0
	case *document.Sequence:
		return len(node.Items) > 0
	default:
		return false
	}
}

// missingValueMessage picks the most useful remediation hint.
func missingValueMessage(def *schema.CommandDefinition) string {
	if len(def.AllowedChildren) > 0 {
		return fmt.Sprintf("'%s' requires at least one subcommand or value. Add a subcommand such as '%s'",
			def.Key, def.AllowedChildrenSorted()[0])
	}
	if def.AcceptsFileReferences {
		return fmt.Sprintf("'%s' requires a value. Add a file path", def.Key)
	}
	return fmt.Sprintf("'%s' requires a value or subcommand", def.Key)
}

// unknownCommandMessage keeps the "Unknown command: " prefix host editors
// match on, appending a did-you-mean hint when a close key exists.
func unknownCommandMessage(text string, s *schema.Schema) string {
	msg := "Unknown command: " + text
	if suggestion := closestCommand(text, s.Keys()); suggestion != "" {
		msg += fmt.Sprintf(". Did you mean '%s'?", suggestion)
	}
	return msg
}

// maxSuggestionDistance bounds how far a typo may be from a catalog key
// before the hint does more harm than good.
const maxSuggestionDistance = 2

// closestCommand returns the catalog key nearest to text by edit
// distance, or empty when nothing is plausibly close.
func closestCommand(text string, keys []string) string {
	best := ""
	bestDistance := maxSuggestionDistance + 1
	for _, key := range keys {
		if d := fuzzy.LevenshteinDistance(text, key); d < bestDistance {
			best = key
			bestDistance = d
		}
	}
	return best
}
