// Package scanner locates property values inside script-like object
// literals without building an AST. It performs bounded, best-effort
// extraction: balanced-brace regions, property lookups under three
// quoting conventions, and string-aware value spans. Limitations are
// deliberate and documented per function.
package scanner

import (
	"regexp"
	"strings"
	"sync"
)

// Definition is a located top-level `output.<name> = {` assignment.
type Definition struct {
	Start     int // offset of the start of the match, not the brace
	Brace     int // offset of the opening brace
	NameStart int // offset of the name token
	NameEnd   int
}

// topLevelPatterns builds the three assignment forms for a name, checked
// in order: dotted, double-quoted index, single-quoted index. The first
// form that matches anywhere wins, even if a later form matches earlier
// in the text.
func topLevelPatterns(name string) []*regexp.Regexp {
	quoted := regexp.QuoteMeta(name)
	return []*regexp.Regexp{
		regexp.MustCompile(`output\.(` + quoted + `)\s*=\s*(\{)`),
		regexp.MustCompile(`output\["(` + quoted + `)"\]\s*=\s*(\{)`),
		regexp.MustCompile(`output\['(` + quoted + `)'\]\s*=\s*(\{)`),
	}
}

// FindTopLevelDefinition finds the first `output.<name> = {` assignment
// in text, under any of the three quoting conventions.
func FindTopLevelDefinition(text, name string) (Definition, bool) {
	for _, pattern := range topLevelPatterns(name) {
		idx := pattern.FindStringSubmatchIndex(text)
		if idx == nil {
			continue
		}
		return Definition{
			Start:     idx[0],
			Brace:     idx[4],
			NameStart: idx[2],
			NameEnd:   idx[3],
		}, true
	}
	return Definition{}, false
}

// ExtractBalanced returns the substring from the opening brace at
// openBrace through its matching close brace, inclusive. Braces are
// counted without string-literal awareness: a brace inside a string
// counts too, which can shift the match on such input. Returns "" when
// openBrace does not point at '{' or the text ends before balance.
func ExtractBalanced(text string, openBrace int) string {
	if openBrace < 0 || openBrace >= len(text) || text[openBrace] != '{' {
		return ""
	}
	depth := 0
	for i := openBrace; i < len(text); i++ {
		switch text[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[openBrace : i+1]
			}
		}
	}
	return ""
}

// PropertyMatch is a located `name:` property inside an object literal.
// End is the offset just past the colon, or just past the opening brace
// when the lookup used the object-valued suffix.
type PropertyMatch struct {
	Start     int
	End       int
	NameStart int
	NameEnd   int
}

// ObjectSuffix selects properties whose value opens an object literal.
const ObjectSuffix = `\{`

var propertyPatternCache sync.Map // string -> []*regexp.Regexp

// propertyPatterns builds the bare, double-quoted and single-quoted
// lookup patterns for a name/suffix pair. Compiled patterns are cached:
// the same few property names are looked up on every hover.
func propertyPatterns(name, suffix string) []*regexp.Regexp {
	cacheKey := name + "\x00" + suffix
	if cached, ok := propertyPatternCache.Load(cacheKey); ok {
		return cached.([]*regexp.Regexp)
	}
	quoted := regexp.QuoteMeta(name)
	patterns := []*regexp.Regexp{
		regexp.MustCompile(`\b(` + quoted + `)\s*:\s*` + suffix),
		regexp.MustCompile(`"(` + quoted + `)"\s*:\s*` + suffix),
		regexp.MustCompile(`'(` + quoted + `)'\s*:\s*` + suffix),
	}
	propertyPatternCache.Store(cacheKey, patterns)
	return patterns
}

// FindProperty locates a property by name inside objectText. suffix is
// ObjectSuffix when the caller needs an object-valued intermediate, or
// empty for any terminal property. Patterns are tried bare first, then
// double-quoted, then single-quoted; the first match wins.
func FindProperty(objectText, name, suffix string) (PropertyMatch, bool) {
	for _, pattern := range propertyPatterns(name, suffix) {
		idx := pattern.FindStringSubmatchIndex(objectText)
		if idx == nil {
			continue
		}
		return PropertyMatch{
			Start:     idx[0],
			End:       idx[1],
			NameStart: idx[2],
			NameEnd:   idx[3],
		}, true
	}
	return PropertyMatch{}, false
}

// ExtractValueSpan scans the textual value that starts just after a
// property's colon. Unlike ExtractBalanced, this scan is string-aware:
// quotes toggle string state (backslash escapes honored) and the brace
// depth only moves outside strings. The span ends at the first top-level
// comma, at the '}' closing the enclosing object, or at end of text.
// Returns the trimmed [start, end) offsets into objectText.
func ExtractValueSpan(objectText string, afterColon int) (int, int) {
	if afterColon < 0 {
		afterColon = 0
	}
	depth := 0
	inSingle := false
	inDouble := false

	end := len(objectText)
	for i := afterColon; i < len(objectText); i++ {
		ch := objectText[i]
		switch {
		case ch == '\'' && !inDouble && !escaped(objectText, i):
			inSingle = !inSingle
		case ch == '"' && !inSingle && !escaped(objectText, i):
			inDouble = !inDouble
		case inSingle || inDouble:
			// Everything inside a string is value text.
		case ch == '{':
			depth++
		case ch == '}':
			depth--
			if depth < 0 {
				end = i
				return trimSpan(objectText, afterColon, end)
			}
		case ch == ',' && depth == 0:
			end = i
			return trimSpan(objectText, afterColon, end)
		}
	}
	return trimSpan(objectText, afterColon, end)
}

// escaped reports whether the character at pos is preceded by an odd run
// of backslashes.
func escaped(text string, pos int) bool {
	backslashes := 0
	for i := pos - 1; i >= 0 && text[i] == '\\'; i-- {
		backslashes++
	}
	return backslashes%2 == 1
}

// trimSpan shrinks [start, end) to exclude surrounding whitespace.
func trimSpan(text string, start, end int) (int, int) {
	for start < end && isSpace(text[start]) {
		start++
	}
	for end > start && isSpace(text[end-1]) {
		end--
	}
	return start, end
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// Mode selects what NavigateProperty returns for the final segment.
type Mode int

const (
	// ModeValue returns the textual value span of the final property.
	ModeValue Mode = iota
	// ModeLocation returns the final property's name token, for
	// go-to-definition.
	ModeLocation
)

// Result of a successful navigation. Start/End are absolute offsets into
// the original text: the value span in ModeValue, the name token in
// ModeLocation. Value is populated only in ModeValue.
type Result struct {
	Value string
	Start int
	End   int
}

// NavigateProperty walks a dotted path inside the balanced object that
// opens at braceOffset. Every segment but the last must be an
// object-valued property; the last is a terminal. Any failed lookup
// aborts with not-found; there is no backtracking to a later occurrence
// of the same property name.
func NavigateProperty(text string, segments []string, braceOffset int, mode Mode) (Result, bool) {
	if len(segments) == 0 {
		return Result{}, false
	}

	scope := ExtractBalanced(text, braceOffset)
	if scope == "" {
		return Result{}, false
	}
	abs := braceOffset

	for _, segment := range segments[:len(segments)-1] {
		match, ok := FindProperty(scope, segment, ObjectSuffix)
		if !ok {
			return Result{}, false
		}
		inner := ExtractBalanced(scope, match.End-1)
		if inner == "" {
			return Result{}, false
		}
		abs += match.End - 1
		scope = inner
	}

	last := segments[len(segments)-1]
	match, ok := FindProperty(scope, last, "")
	if !ok {
		return Result{}, false
	}

	if mode == ModeLocation {
		return Result{
			Start: abs + match.NameStart,
			End:   abs + match.NameEnd,
		}, true
	}

	start, end := ExtractValueSpan(scope, match.End)
	return Result{
		Value: strings.TrimSpace(scope[start:end]),
		Start: abs + start,
		End:   abs + end,
	}, true
}
