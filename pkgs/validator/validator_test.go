package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Trendyol/maestro-assistant/pkgs/document"
	"github.com/Trendyol/maestro-assistant/pkgs/schema"
)

func validateSource(t *testing.T, source string) []Diagnostic {
	t.Helper()
	docs, err := document.ParseAll([]byte(source))
	require.NoError(t, err)

	v := New(schema.Default(), nil)
	var diags []Diagnostic
	for _, doc := range docs {
		diags = append(diags, v.Validate(doc)...)
	}
	return diags
}

func TestValidFlowHasNoDiagnostics(t *testing.T) {
	diags := validateSource(t, `appId: com.example.app
name: Login flow
env:
  USERNAME: tester
---
- launchApp:
    clearState: true
- tapOn:
    id: login
    optional: true
- inputText: hello
- back
- repeat:
    times: 3
    commands:
      - scroll
      - tapOn: Next
`)
	assert.Empty(t, diags)
}

func TestUnknownCommandScalarItem(t *testing.T) {
	diags := validateSource(t, `---
- launchApp
- tapOnn
`)
	require.Len(t, diags, 1)
	assert.Equal(t, SeverityError, diags[0].Severity)
	assert.True(t, strings.HasPrefix(diags[0].Message, "Unknown command: tapOnn"), diags[0].Message)
	assert.Contains(t, diags[0].Message, "Did you mean 'tapOn'?")
}

func TestUnknownCommandWithoutSuggestion(t *testing.T) {
	diags := validateSource(t, `---
- zzzzqqqq
`)
	require.Len(t, diags, 1)
	assert.Equal(t, "Unknown command: zzzzqqqq", diags[0].Message)
}

func TestIllegalSubcommand(t *testing.T) {
	diags := validateSource(t, `---
- swipe:
    direction: DOWN
    times: 3
`)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "Subcommand 'times' is not allowed for 'swipe'.")
	assert.Contains(t, diags[0].Message, "Allowed subcommands: ")
	// The allowed list is sorted.
	assert.Contains(t, diags[0].Message, "direction, duration, end, from, label, optional, start")
}

func TestMissingRequiredValue(t *testing.T) {
	diags := validateSource(t, `---
- tapOn:
`)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Message, "'tapOn' requires at least one subcommand or value")
	assert.Contains(t, diags[0].Message, "Add a subcommand such as")
}

func TestMissingFileValueHint(t *testing.T) {
	diags := validateSource(t, `---
- runScript:
    file:
`)
	require.Len(t, diags, 1)
	assert.Equal(t, "'file' requires a value. Add a file path", diags[0].Message)
}

func TestEmptyValueDistinctError(t *testing.T) {
	diags := validateSource(t, `appId: com.example.app
env:
`)
	require.Len(t, diags, 1)
	assert.Equal(t, "The key 'env' does not accept an empty value", diags[0].Message)
}

func TestUndefinedChildrenAreSkipped(t *testing.T) {
	diags := validateSource(t, `appId: com.example.app
env:
  ANYTHING_AT_ALL: 1
  another-key: two
tags:
  - smoke
  - not-a-command
---
- launchApp:
    arguments:
      isTestRun: true
`)
	assert.Empty(t, diags)
}

func TestDiagnosticsAreIndependent(t *testing.T) {
	diags := validateSource(t, `---
- tapOnn
- swipe:
    times: 3
- extendedWaitUntil:
`)
	// One unknown command, one illegal subcommand, one missing value:
	// a bad node never blocks its siblings.
	require.Len(t, diags, 3)
}

func TestDiagnosticRangeCoversToken(t *testing.T) {
	source := `---
- tapOnn
`
	diags := validateSource(t, source)
	require.Len(t, diags, 1)
	r := diags[0].Range
	assert.Equal(t, "tapOnn", source[r.Start:r.End])
}

func TestValidateNilDocument(t *testing.T) {
	v := New(schema.Default(), nil)
	assert.Empty(t, v.Validate(nil))
	assert.Empty(t, v.Validate(&document.Document{}))
}

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want TokenKind
	}{
		{"tapOn", TokenCommand},
		{"runScript", TokenCommand},
		{"-", TokenDash},
		{"---", TokenTripleDash},
		{"definitelyNotACommand", TokenInvalid},
		{"", TokenInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.text, schema.Default()))
		})
	}
}

func TestClosestCommand(t *testing.T) {
	keys := schema.Default().Keys()
	assert.Equal(t, "tapOn", closestCommand("tapOnn", keys))
	assert.Equal(t, "", closestCommand("somethingWild", keys))
}
