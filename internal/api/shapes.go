package api

import (
	"bytes"
	"encoding/json"

	"github.com/rs/zerolog"
)

// DecodeList decodes a list endpoint's body into out (a pointer to a slice).
// The server is inconsistent about wrapping: some endpoints return a bare
// array, others an object holding the array under a named field. Both are
// accepted; any other shape logs the surprise and leaves out empty rather
// than failing the render.
func DecodeList(logger zerolog.Logger, body []byte, field string, out any) {
	trimmed := bytes.TrimSpace(body)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, out); err == nil {
			return
		}
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err == nil {
		if inner, ok := wrapper[field]; ok {
			if err := json.Unmarshal(inner, out); err == nil {
				return
			}
		}
	}

	logger.Warn().
		Str("field", field).
		Str("body", truncate(string(trimmed), 200)).
		Msg("unexpected list shape, rendering empty")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
