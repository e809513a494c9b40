package cache

import (
	"context"
	"encoding/json"
)

// Get reads key from h and deserializes it into V. ok is false on a miss;
// err is non-nil only on a transport or deserialization failure — the two
// must never be conflated (see Handle.GetBytes).
func Get[V any](ctx context.Context, h Handle, key string) (value V, ok bool, err error) {
	raw, err := h.GetBytes(ctx, key)
	if err != nil {
		return value, false, err
	}
	if raw == nil {
		return value, false, nil
	}
	if err := json.Unmarshal(raw, &value); err != nil {
		return value, false, NewError("failed to deserialize cached value for key "+key, err)
	}
	return value, true, nil
}

// Put serializes value and stores it under key, overwriting any prior
// value.
func Put[V any](ctx context.Context, h Handle, key string, value V) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return NewError("failed to serialize value for key "+key, err)
	}
	return h.PutBytes(ctx, key, raw)
}
