package sim

import (
	"encoding/json"
	"fmt"
	"net/url"
)

// Request is one simulated call. Path carries no query string; Params
// is filled by the router for pattern routes.
type Request struct {
	Method string
	Path   string
	Query  url.Values
	Body   json.RawMessage
	Params map[string]string
}

func NewRequest(method, rawURL string, body []byte) (Request, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Request{}, fmt.Errorf("parse url %q: %w", rawURL, err)
	}
	return Request{
		Method: method,
		Path:   u.Path,
		Query:  u.Query(),
		Body:   body,
	}, nil
}

// Decode parses the request body into out with a typed failure.
func (r Request) Decode(out any) error {
	if len(r.Body) == 0 {
		return &DecodeError{Err: fmt.Errorf("empty body")}
	}
	if err := json.Unmarshal(r.Body, out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
