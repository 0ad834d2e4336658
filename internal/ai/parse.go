package ai

import (
	"strings"

	"github.com/tidwall/gjson"

	"github.com/webwizard2024/document-filling-agent-using-voice/internal/template"
)

// stripFences removes a markdown code fence around the model's JSON.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// parseFields decodes a flat JSON object keeping key order. Anything that
// is not a JSON object yields no fields.
func parseFields(raw string) template.Fields {
	cleaned := stripFences(raw)
	if !gjson.Valid(cleaned) {
		return nil
	}
	obj := gjson.Parse(cleaned)
	if !obj.IsObject() {
		return nil
	}

	var out template.Fields
	obj.ForEach(func(key, value gjson.Result) bool {
		switch value.Type {
		case gjson.Null:
			return true
		case gjson.String:
			out = append(out, template.Field{Key: key.String(), Value: value.String()})
		default:
			out = append(out, template.Field{Key: key.String(), Value: value.Raw})
		}
		return true
	})
	return out
}
