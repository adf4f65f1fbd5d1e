// pkg/seed/seed.go

// Package seed loads the activity catalog that populates the registry at
// startup, either from a JSON file or from the built-in defaults.
package seed

import (
	"encoding/json"
	"fmt"
	"os"

	"activities-service/internal/models"

	"github.com/xeipuuv/gojsonschema"
)

// catalogSchema validates a seed file before it reaches the registry: every
// activity needs all four fields, a positive capacity, and a string roster.
const catalogSchema = `{
	"type": "object",
	"additionalProperties": {
		"type": "object",
		"properties": {
			"description": {"type": "string"},
			"schedule": {"type": "string"},
			"max_participants": {"type": "integer", "minimum": 1},
			"participants": {
				"type": "array",
				"items": {"type": "string"}
			}
		},
		"required": ["description", "schedule", "max_participants", "participants"]
	}
}`

// LoadFile reads and validates a JSON catalog file.
func LoadFile(path string) (models.Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return Parse(data)
}

// Parse validates raw JSON against the catalog schema and decodes it.
func Parse(data []byte) (models.Registry, error) {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(catalogSchema),
		gojsonschema.NewBytesLoader(data),
	)
	if err != nil {
		return nil, fmt.Errorf("validate seed: %w", err)
	}
	if !result.Valid() {
		return nil, fmt.Errorf("invalid seed: %s", formatSchemaErrors(result))
	}

	var reg models.Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("decode seed: %w", err)
	}
	for name, act := range reg {
		if act.Participants == nil {
			act.Participants = []string{}
			reg[name] = act
		}
	}
	return reg, nil
}

func formatSchemaErrors(result *gojsonschema.Result) string {
	out := ""
	for i, desc := range result.Errors() {
		if i > 0 {
			out += "; "
		}
		out += desc.String()
	}
	return out
}
