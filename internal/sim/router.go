package sim

import (
	"context"
	"errors"
	"strings"
)

// ErrNoRoute is returned when no registered route matches; callers
// issuing unknown paths are treated as a caller error.
var ErrNoRoute = errors.New("no route matches")

type Handler func(ctx context.Context, req Request) (Envelope, error)

type route struct {
	method  string
	literal string   // set for exact routes
	pattern []string // set for pattern routes; ":name" segments capture
	handler Handler
}

// Router is a prioritized list of (method, matcher, handler) tuples.
// Exact literals win over patterns; within each kind registration order
// is preserved and the first match is dispatched.
type Router struct {
	routes []route
}

// Handle registers path for method. A path containing ":" segments is a
// pattern route (e.g. "/api/products/:id"); anything else matches the
// path literally.
func (r *Router) Handle(method, path string, h Handler) {
	rt := route{method: method, handler: h}
	if strings.Contains(path, ":") {
		rt.pattern = splitPath(path)
	} else {
		rt.literal = path
	}
	r.routes = append(r.routes, rt)
}

func (r *Router) Dispatch(ctx context.Context, req Request) (Envelope, error) {
	for _, rt := range r.routes {
		if rt.method != req.Method || rt.literal == "" {
			continue
		}
		if rt.literal == req.Path {
			return rt.handler(ctx, req)
		}
	}

	segs := splitPath(req.Path)
	for _, rt := range r.routes {
		if rt.method != req.Method || rt.pattern == nil {
			continue
		}
		params, ok := matchPattern(rt.pattern, segs)
		if !ok {
			continue
		}
		req.Params = params
		return rt.handler(ctx, req)
	}

	return Envelope{}, ErrNoRoute
}

func splitPath(p string) []string {
	return strings.Split(strings.Trim(p, "/"), "/")
}

func matchPattern(pattern, segs []string) (map[string]string, bool) {
	if len(pattern) != len(segs) {
		return nil, false
	}
	var params map[string]string
	for i, ps := range pattern {
		if strings.HasPrefix(ps, ":") {
			if segs[i] == "" {
				return nil, false
			}
			if params == nil {
				params = make(map[string]string)
			}
			params[ps[1:]] = segs[i]
			continue
		}
		if ps != segs[i] {
			return nil, false
		}
	}
	return params, true
}
