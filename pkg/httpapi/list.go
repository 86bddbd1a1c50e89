package httpapi

import (
	"bytes"
	"encoding/json"
)

// DecodeList reads the three collection shapes the portal uses: a DRF page
// {count, results}, an envelope {success, <key>: [...]} and a bare array.
// total is the server count when present, otherwise the number of items.
func DecodeList[T any](raw []byte, keys ...string) (items []T, total int, err error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return []T{}, 0, nil
	}
	if raw[0] == '[' {
		if err := json.Unmarshal(raw, &items); err != nil {
			return nil, 0, err
		}
		return items, len(items), nil
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, 0, err
	}
	for _, key := range append([]string{"results"}, keys...) {
		v, ok := obj[key]
		if !ok || bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			continue
		}
		if err := json.Unmarshal(v, &items); err != nil {
			return nil, 0, err
		}
		break
	}
	if items == nil {
		items = []T{}
	}
	total = len(items)
	for _, key := range []string{"count", "total"} {
		if v, ok := obj[key]; ok {
			var n int
			if err := json.Unmarshal(v, &n); err == nil {
				total = n
				break
			}
		}
	}
	return items, total, nil
}

// DecodeItem reads a single object, either bare or under one of keys.
func DecodeItem[T any](raw []byte, keys ...string) (T, error) {
	var item T
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		return item, err
	}
	for _, key := range keys {
		if v, ok := obj[key]; ok && len(v) > 0 && v[0] == '{' {
			err := json.Unmarshal(v, &item)
			return item, err
		}
	}
	err := json.Unmarshal(raw, &item)
	return item, err
}
