package ssr_test

import (
	"bytes"
	"encoding/json"
)

// jsonMarshal encodes v without HTML escaping, as the JSON responses do not
// need it for assertions.
func jsonMarshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSpace(buf.Bytes()), nil
}
