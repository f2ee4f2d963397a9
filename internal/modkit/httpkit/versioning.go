package httpkit

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// MountAPI mounts a subrouter under /api/{version}, applies the scope middleware,
// then invokes mount to register routes on that router
//
// example:
//
//	httpkit.MountAPI(r, "v1", httpkit.CommonStack(cfg), func(api chi.Router) {
//	  trends.MountRoutes(api)
//	})
func MountAPI(r chi.Router, version string, mw []func(http.Handler) http.Handler, mount func(chi.Router)) {
	MountUnder(r, "/api/"+strings.Trim(version, "/"), mw, mount)
}

// MountAPIV1 is MountAPI with version v1
func MountAPIV1(r chi.Router, mw []func(http.Handler) http.Handler, mount func(chi.Router)) {
	MountAPI(r, "v1", mw, mount)
}
