package caseset

import (
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// recordSchemaJSON is the JSON Schema every golden case record must satisfy
// before it is mapped to a GoldenCase. The expect block rejects unknown
// criteria so a typo like "must_flag" fails the load instead of vacuously
// passing every case.
const recordSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["id", "scan_data", "expect"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "jurisdiction": {"type": "string"},
    "scan_data": {"type": "object"},
    "expect": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "must_checks": {"type": "array", "items": {"type": "string"}},
        "must_checks_any": {"type": "array", "items": {"type": "string"}},
        "must_flags": {"type": "array", "items": {"type": "string"}},
        "must_flags_any": {"type": "array", "items": {"type": "string"}},
        "must_reasons": {"type": "array", "items": {"type": "string"}},
        "must_reasons_any": {"type": "array", "items": {"type": "string"}},
        "must_evidence": {"type": "string", "minLength": 1}
      }
    }
  }
}`

const recordSchemaURL = "harness://caseset/record.schema.json"

// compileRecordSchema compiles the embedded record schema.
func compileRecordSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(recordSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("decode record schema: %w", err)
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource(recordSchemaURL, doc); err != nil {
		return nil, fmt.Errorf("add record schema: %w", err)
	}
	sch, err := c.Compile(recordSchemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile record schema: %w", err)
	}
	return sch, nil
}
