package providers

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Model responses are free-form text that should contain JSON. After
// fence-stripping and parsing, the payload is validated against a schema
// before anything is written back to a page, so a malformed response is
// rejected as a provider error instead of corrupting region state.

const extractionSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["text", "bbox"],
		"properties": {
			"text": {"type": "string"},
			"bbox": {
				"type": "array",
				"items": {"type": "number", "minimum": 0, "maximum": 1},
				"minItems": 4,
				"maxItems": 4
			}
		}
	}
}`

const translationSchema = `{
	"type": "array",
	"items": {"type": "string"}
}`

var (
	compiledExtractionSchema  = mustCompileSchema("extraction.json", extractionSchema)
	compiledTranslationSchema = mustCompileSchema("translation.json", translationSchema)
)

func mustCompileSchema(name, schema string) *jsonschema.Schema {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, bytes.NewReader([]byte(schema))); err != nil {
		panic(fmt.Sprintf("failed to load %s: %v", name, err))
	}
	return compiler.MustCompile(name)
}

// validateJSON checks parsed model output against a compiled schema.
func validateJSON(schema *jsonschema.Schema, parsed json.RawMessage) error {
	var doc any
	if err := json.Unmarshal(parsed, &doc); err != nil {
		return fmt.Errorf("failed to decode model JSON for validation: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("model output does not match schema: %w", err)
	}
	return nil
}
