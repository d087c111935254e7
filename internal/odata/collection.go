package odata

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// UnwrapCollection extracts the items of a collection response. The service
// returns either {"value":[...]}, the verbose {"d":{"results":[...]}}, or a
// bare array.
func UnwrapCollection(raw json.RawMessage) (json.RawMessage, error) {
	payload := bytes.TrimSpace(UnwrapEnvelope(raw))
	if len(payload) == 0 {
		return nil, fmt.Errorf("empty collection response")
	}
	if payload[0] == '[' {
		return payload, nil
	}
	var wrapper struct {
		Value   json.RawMessage `json:"value"`
		Results json.RawMessage `json:"results"`
	}
	if err := json.Unmarshal(payload, &wrapper); err != nil {
		return nil, fmt.Errorf("malformed collection response: %w", err)
	}
	switch {
	case len(wrapper.Value) > 0:
		return wrapper.Value, nil
	case len(wrapper.Results) > 0:
		return wrapper.Results, nil
	}
	return nil, fmt.Errorf("malformed collection response: no value array")
}

// Int64 decodes an Edm.Int64 property, which the verbose format serializes
// as a string and the minimal format as a number.
type Int64 int64

func (n *Int64) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("malformed Int64 value %q: %w", s, err)
		}
		*n = Int64(v)
		return nil
	}
	var v int64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*n = Int64(v)
	return nil
}
