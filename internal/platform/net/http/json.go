package http

import (
	stdhttp "net/http"

	"artisantrend/internal/platform/net/http/bind"
)

// JSONHandler binds and validates a T body, then wraps fn's result in an envelope
func JSONHandler[T any](fn func(*stdhttp.Request, T) (any, error)) stdhttp.HandlerFunc {
	return Handle(func(r *stdhttp.Request) Response {
		in, err := bind.ParseJSON[T](r)
		if err != nil {
			return Error(err)
		}
		out, err := fn(r, in)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}

// JSONHandlerNoBody wraps fn's result without reading a body
func JSONHandlerNoBody(fn func(*stdhttp.Request) (any, error)) stdhttp.HandlerFunc {
	return Handle(func(r *stdhttp.Request) Response {
		out, err := fn(r)
		if err != nil {
			return Error(err)
		}
		return OK(out)
	})
}
