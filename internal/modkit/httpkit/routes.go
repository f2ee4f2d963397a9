// Package httpkit holds the routing sugar modules use on top of chi
package httpkit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// MountUnder mounts a subrouter at prefix and applies per-module middlewares
func MountUnder(r chi.Router, prefix string, mw []func(http.Handler) http.Handler, mount func(chi.Router)) {
	r.Route(prefix, func(sub chi.Router) {
		if len(mw) > 0 {
			sub.Use(mw...)
		}
		mount(sub)
	})
}
