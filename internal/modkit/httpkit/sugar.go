package httpkit

import (
	"net/http"

	phttp "artisantrend/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

// Get mounts a body-less handler under GET with the envelope adapter
func Get(r chi.Router, path string, h func(*http.Request) (any, error)) {
	r.Get(path, phttp.JSONHandlerNoBody(h))
}

// PostJSON mounts a bound and validated JSON handler under POST
func PostJSON[T any](r chi.Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSONHandler(h))
}
