// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"net/http"
	"time"

	modkit "artisantrend/internal/modkit"
	"artisantrend/internal/modkit/httpkit"
	str "artisantrend/internal/platform/strings"
	metahttp "artisantrend/internal/services/api/meta/http"

	"github.com/go-chi/chi/v5"
)

// ServiceName is reported by the meta endpoints
const ServiceName = "artisantrend-api"

// Module implements the modkit.Module interface
type Module struct {
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	register func(chi.Router)

	startedAt time.Time
}

// New constructs a meta module with the provided dependencies and options
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	m := &Module{
		name:      b.Name,
		prefix:    b.Prefix,
		mws:       b.Mw,
		startedAt: time.Now(),
	}

	external := b.Register
	m.register = func(r chi.Router) {
		metahttp.Register(r, metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   m.startedAt,
			PG:          deps.PG,
			CH:          deps.CH,
			Vocab:       deps.Vocab,
		})
		external(r)
	}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r chi.Router) {
	httpkit.MountUnder(r, str.MustPrefix(m.prefix), m.mws, m.register)
}

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.Or(m.name, "meta") }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
