package middleware

import "net/http"

// Middleware decorates a handler. Route-level limits and the server-wide
// request chain share this type.
type Middleware func(http.Handler) http.Handler

// Chain folds mws into one Middleware. The first argument is the outermost
// layer: it sees the request first and the response last.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			h = mws[i](h)
		}
		return h
	}
}
