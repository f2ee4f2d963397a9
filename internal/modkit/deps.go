// Package modkit provides module wiring and core deps
package modkit

import (
	"artisantrend/internal/core/trend"
	"artisantrend/internal/core/vocab"
	"artisantrend/internal/modkit/repokit"
	"artisantrend/internal/platform/bus"
	"artisantrend/internal/platform/config"
	"artisantrend/internal/platform/logger"
	"artisantrend/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// PG, CH and Bus are optional and may be nil
type Deps struct {
	Log   *logger.Logger
	Cfg   config.Conf
	PG    repokit.TxRunner
	CH    store.Clickhouse
	Bus   bus.Publisher
	Vocab *vocab.Vocab
	Costs trend.Costs // nil means the vocabulary defaults
}

// Logger returns Log or a disabled logger
func (d Deps) Logger() *logger.Logger {
	if d.Log == nil {
		return logger.Nop()
	}
	return d.Log
}

// Publisher returns Bus or a no-op publisher
func (d Deps) Publisher() bus.Publisher {
	if d.Bus == nil {
		return bus.Noop{}
	}
	return d.Bus
}
