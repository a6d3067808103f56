package model

import (
	"encoding/json"
	"fmt"
)

// The persistence layer stores comments, previews, phases, the event log
// and assigned artist ids as JSON-encoded text columns. All encoding and
// decoding goes through this codec so the empty-vs-absent round trip is
// enforced in exactly one place: an empty or nil collection encodes as
// "[]" and an empty column decodes back to an empty collection.

// EncodeList encodes a collection for a JSON text column.
// nil encodes as "[]", never as "null".
func EncodeList[T any](items []T) (string, error) {
	if items == nil {
		items = []T{}
	}

	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to encode collection: %w", err)
	}

	return string(data), nil
}

// DecodeList decodes a JSON text column into a collection.
// Empty, "null" and "[]" inputs all decode to an empty collection.
func DecodeList[T any](raw string) ([]T, error) {
	if raw == "" || raw == "null" {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("failed to decode collection: %w", err)
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}
