// Package api provides the HTTP API for the application
package api

import (
	"artisantrend/internal/core/trend"
	"artisantrend/internal/core/vocab"
	"artisantrend/internal/platform/config"
	"artisantrend/internal/platform/logger"
	"artisantrend/internal/platform/store"

	"artisantrend/internal/modkit"
	"artisantrend/internal/modkit/httpkit"
	"artisantrend/internal/modkit/swaggerkit"

	metamod "artisantrend/internal/services/api/meta/module"
	trendsmod "artisantrend/internal/services/api/trends/module"

	"github.com/go-chi/chi/v5"
)

// Options are the API options
type Options struct {
	Config        config.Conf
	Store         *store.Store
	Logger        *logger.Logger
	Vocab         *vocab.Vocab
	Costs         trend.Costs
	EnableSwagger bool
}

// Mount mounts the API service onto the given router
func Mount(r chi.Router, opt Options) {
	deps := modkit.Deps{
		Log:   opt.Logger,
		Cfg:   opt.Config,
		Vocab: opt.Vocab,
		Costs: opt.Costs,
	}
	if opt.Store != nil {
		deps.PG = opt.Store.PG
		deps.CH = opt.Store.CH
	}

	mods := []modkit.Module{
		metamod.New(deps),
		trendsmod.New(deps),
	}

	swaggerkit.Mount(r, opt.EnableSwagger)
	httpkit.MountAPIV1(r, httpkit.CommonStack(opt.Config), func(api chi.Router) {
		for _, m := range mods {
			deps.Logger().Debug().Str("module", m.Name()).Msg("mounting")
			m.MountRoutes(api)
		}
	})
}
