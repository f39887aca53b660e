package presets

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

const presetListSchema = `{
  "type": ["array", "null"],
  "items": {
    "type": "object",
    "required": ["name"],
    "properties": {
      "name": {"type": "string"},
      "algorithmText": {"type": ["string", "null"]},
      "bitsText": {"type": ["string", "null"]},
      "faithfulText": {"type": ["string", "null"]},
      "implementationText": {"type": ["string", "null"]},
      "parallelismText": {"type": ["string", "null"]}
    }
  }
}`

var schema = mustSchema(presetListSchema)

func mustSchema(def string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(def))
	if err != nil {
		panic(fmt.Sprintf("presets: invalid schema: %v", err))
	}
	return s
}

// decode validates raw against the preset list schema and unmarshals it.
func decode(raw []byte) ([]Preset, error) {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("presets: malformed blob: %w", err)
	}
	if !result.Valid() {
		var problems []string
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return nil, fmt.Errorf("presets: invalid blob: %s", strings.Join(problems, "; "))
	}

	var list []Preset
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, fmt.Errorf("presets: decode: %w", err)
	}
	return list, nil
}
