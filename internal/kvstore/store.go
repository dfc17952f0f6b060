package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is the durable key/value contract the simulator and the order
// store persist through. Values are opaque strings; a missing key is
// reported through the ok result, not an error. There are no
// transactions across keys.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// DecodeError marks a stored value that could not be parsed back into
// its expected shape.
type DecodeError struct {
	Key string
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode %q: %v", e.Key, e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// GetJSON loads key into out. Returns false when the key is absent; out
// is left untouched in that case.
func GetJSON(ctx context.Context, s Store, key string, out any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return false, &DecodeError{Key: key, Err: err}
	}
	return true, nil
}

func SetJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %q: %w", key, err)
	}
	return s.Set(ctx, key, string(raw))
}
