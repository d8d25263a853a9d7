// Package middleware holds the http.Handler decorators shared by every
// route: request logging, CORS and cookie auth.
package middleware

import "net/http"

type Middleware func(http.Handler) http.Handler

// Wrap applies mws to h inside-out: the last middleware given sees the
// request first.
func Wrap(h http.Handler, mws ...Middleware) http.Handler {
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}
