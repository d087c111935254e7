// Package odata decodes the OData response shapes the remote service uses.
package odata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// UnwrapEnvelope strips the verbose {"d": ...} envelope when present and
// returns the inner payload unchanged otherwise.
func UnwrapEnvelope(raw json.RawMessage) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return raw
	}
	var envelope struct {
		D json.RawMessage `json:"d"`
	}
	if err := json.Unmarshal(trimmed, &envelope); err != nil || len(envelope.D) == 0 {
		return raw
	}
	return envelope.D
}

// ParseCursor extracts the byte cursor an upload call returns. The service
// answers with either a bare number (possibly as a string) or an object
// wrapping it under the verb name, e.g. {"StartUpload":"10485760"}.
// Anything else is a malformed response, never a zero cursor.
func ParseCursor(raw json.RawMessage, verb string) (int64, error) {
	payload := bytes.TrimSpace(UnwrapEnvelope(raw))
	if len(payload) == 0 {
		return 0, fmt.Errorf("empty %s response", verb)
	}

	if payload[0] == '{' {
		var fields map[string]json.RawMessage
		if err := json.Unmarshal(payload, &fields); err != nil {
			return 0, fmt.Errorf("malformed %s response: %w", verb, err)
		}
		wrapped, ok := fields[verb]
		if !ok {
			return 0, fmt.Errorf("malformed %s response: missing %q field", verb, verb)
		}
		payload = bytes.TrimSpace(wrapped)
	}

	var text string
	if err := json.Unmarshal(payload, &text); err != nil {
		// Not a JSON string; fall back to the raw token (bare number)
		text = string(payload)
	}
	cursor, err := parseNumeric(text)
	if err != nil {
		return 0, fmt.Errorf("malformed %s cursor %q: %w", verb, text, err)
	}
	if cursor < 0 {
		return 0, fmt.Errorf("malformed %s cursor %q: negative", verb, text)
	}
	return cursor, nil
}

func parseNumeric(text string) (int64, error) {
	text = strings.TrimSpace(text)
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, err
	}
	return int64(f), nil
}
