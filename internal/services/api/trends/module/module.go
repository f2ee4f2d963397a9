// Package module wires trends into the API using modkit
package module

import (
	"net/http"

	modkit "artisantrend/internal/modkit"
	"artisantrend/internal/modkit/httpkit"
	str "artisantrend/internal/platform/strings"
	trendshttp "artisantrend/internal/services/api/trends/http"
	trendssvc "artisantrend/internal/services/api/trends/service"
	fdomain "artisantrend/internal/services/forecast/domain"
	forecastrepo "artisantrend/internal/services/forecast/repo"

	"github.com/go-chi/chi/v5"
)

// Ports exposes the service to other modules
type Ports struct {
	Service *trendssvc.Service
}

// Module implements the trends module
type Module struct {
	name   string
	prefix string
	mws    []func(http.Handler) http.Handler

	register func(chi.Router)
	svc      *trendssvc.Service
}

// New constructs the trends module; PG backs stored runs and CH backs history
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("trends"), modkit.WithPrefix("/trends")}, opts...)...)

	var hist fdomain.History
	if deps.CH != nil {
		hist = forecastrepo.NewCH(deps.CH)
	}
	svc := trendssvc.New(trendssvc.Deps{
		PG:        deps.PG,
		Snapshots: forecastrepo.NewPG(),
		History:   hist,
		Vocab:     deps.Vocab,
		Costs:     deps.Costs,
	})

	m := &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	external := b.Register
	m.register = func(r chi.Router) {
		trendshttp.Register(r, m.svc)
		external(r)
	}
	return m
}

// MountRoutes mounts the module routes on the given router
func (m *Module) MountRoutes(r chi.Router) {
	httpkit.MountUnder(r, str.MustPrefix(m.prefix), m.mws, m.register)
}

// Name returns the module name
func (m *Module) Name() string { return str.Or(m.name, "trends") }

// Ports returns the module ports
func (m *Module) Ports() any { return Ports{Service: m.svc} }
