package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// artifactID is the canonical URL of the exported grammar artifact.
const artifactID = "https://github.com/Trendyol/maestro-assistant/flow.schema.json"

// ExportJSONSchema renders the command catalog as a draft 2020-12 JSON
// Schema document. The artifact is advisory tooling output for editors
// that cannot consume the Go registry directly; it encodes key legality
// and child composition, not value typing.
func (s *Schema) ExportJSONSchema() ([]byte, error) {
	defs := make(map[string]any, len(s.byKey))
	for _, key := range s.Keys() {
		d := s.byKey[key]
		defs[key] = commandJSONSchema(d)
	}

	rootProps := make(map[string]any, len(s.RootCommands()))
	for _, key := range s.RootCommands() {
		rootProps[key] = ref(key)
	}

	doc := map[string]any{
		"$schema":              "https://json-schema.org/draft/2020-12/schema",
		"$id":                  artifactID,
		"title":                "Maestro flow",
		"type":                 "object",
		"properties":           rootProps,
		"additionalProperties": false,
		"$defs":                defs,
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("schema: marshal artifact: %w", err)
	}
	return append(out, '\n'), nil
}

// commandJSONSchema builds the schema variants for a single definition.
func commandJSONSchema(d *CommandDefinition) map[string]any {
	var variants []any

	if d.AcceptsRawValue {
		variants = append(variants, map[string]any{
			"type": []any{"string", "number", "boolean"},
		})
	}

	if d.AcceptsUndefinedChildren {
		variants = append(variants,
			map[string]any{"type": "object"},
			map[string]any{"type": "array"},
		)
	} else if len(d.AllowedChildren) > 0 {
		props := make(map[string]any, len(d.AllowedChildren))
		for _, child := range d.AllowedChildrenSorted() {
			props[child] = ref(child)
		}
		variants = append(variants, map[string]any{
			"type":                 "object",
			"properties":           props,
			"additionalProperties": false,
		})
		// Child sets that hold action commands are written as sequences.
		variants = append(variants, map[string]any{"type": "array"})
	}

	if len(variants) == 0 {
		// Keys that take neither value nor children (bare markers).
		return map[string]any{"type": "null"}
	}
	if len(variants) == 1 {
		return variants[0].(map[string]any)
	}
	return map[string]any{"anyOf": variants}
}

func ref(key string) map[string]any {
	return map[string]any{"$ref": "#/$defs/" + key}
}

// CompileArtifact verifies that an exported artifact is a valid JSON
// Schema document. Export callers run this before writing the file out.
func CompileArtifact(data []byte) error {
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("schema: artifact is not valid JSON: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(artifactID, doc); err != nil {
		return fmt.Errorf("schema: add artifact resource: %w", err)
	}
	if _, err := compiler.Compile(artifactID); err != nil {
		return fmt.Errorf("schema: compile artifact: %w", err)
	}
	return nil
}
