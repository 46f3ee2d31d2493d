package research

import (
	"encoding/json"
	"strings"
)

// stripFences removes Markdown code-fence markers from a model response so
// the remaining text can be parsed as JSON. Models frequently wrap JSON in
// ```json ... ``` despite instructions not to.
func stripFences(s string) string {
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// decodeResponse strips fences and unmarshals the response into v.
func decodeResponse(response string, v any) error {
	return json.Unmarshal([]byte(stripFences(response)), v)
}
