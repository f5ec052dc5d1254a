package store

import (
	"encoding/json"
	"fmt"

	"github.com/roach88/facet/internal/ir"
)

// marshalPayload converts an event payload to canonical JSON TEXT.
// A nil payload is stored as "[]".
func marshalPayload(payload ir.Array) (string, error) {
	if payload == nil {
		payload = ir.Array{}
	}
	data, err := ir.MarshalCanonical(payload)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return string(data), nil
}

// unmarshalPayload parses payload TEXT. Uses ir.Array.UnmarshalJSON, which
// keeps integers beyond 2^53 exact. An empty payload reads back as nil so
// round-tripped events compare equal to the recorded ones.
func unmarshalPayload(data string) (ir.Array, error) {
	if data == "" || data == "[]" {
		return nil, nil
	}
	var arr ir.Array
	if err := json.Unmarshal([]byte(data), &arr); err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return arr, nil
}
