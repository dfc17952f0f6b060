package sim

import (
	"encoding/json"
	"fmt"
)

// Envelope is the uniform response wrapper every simulated call returns.
// The UI layer reads only this; it never inspects transport status.
type Envelope struct {
	Code    int    `json:"code"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

func OK(data any, message string) Envelope {
	return Envelope{Code: 200, Data: data, Message: message}
}

func Invalid(message string) Envelope {
	return Envelope{Code: 400, Data: nil, Message: message}
}

func NotFound(message string) Envelope {
	return Envelope{Code: 404, Data: nil, Message: message}
}

// DecodeError marks a payload that could not be parsed into its
// expected shape.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return fmt.Sprintf("decode payload: %v", e.Err) }
func (e *DecodeError) Unwrap() error { return e.Err }

// DecodeData re-encodes env.Data and decodes it into T. Callers get a
// typed value out of the envelope instead of poking at `any`.
func DecodeData[T any](env Envelope) (T, error) {
	var out T
	raw, err := json.Marshal(env.Data)
	if err != nil {
		return out, &DecodeError{Err: err}
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, &DecodeError{Err: err}
	}
	return out, nil
}
