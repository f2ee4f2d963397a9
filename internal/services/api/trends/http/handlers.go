// Package http provides http transport for trends
package http

import (
	stdhttp "net/http"
	"strconv"

	"artisantrend/internal/modkit/httpkit"
	perr "artisantrend/internal/platform/errors"
	"artisantrend/internal/services/api/trends/domain"

	"github.com/go-chi/chi/v5"
)

// Register mounts trends endpoints on the given router
func Register(r chi.Router, s domain.Service) {
	h := &handlers{svc: s}

	// stored runs
	httpkit.Get(r, "/latest", h.latest)
	httpkit.PostJSON[domain.QueryInput](r, "/query", h.query)
	httpkit.Get(r, "/runs", h.runs)
	httpkit.Get(r, "/history/{product}", h.history)

	// in-process scoring
	httpkit.PostJSON[domain.AnalyzeInput](r, "/analyze", h.analyze)
}

type handlers struct{ svc domain.Service }

// swagger:route GET /trends/latest Trends trendsLatest
// @Summary Records of the latest stored run
// @Tags Trends
// @Produce json
// @Success 200 {object} domain.LatestResponse "ok"
// @Failure 404 {object} phttp.Envelope "no runs stored"
// @Failure 503 {object} phttp.Envelope "snapshots disabled"
// @Router /trends/latest [get]
func (h *handlers) latest(r *stdhttp.Request) (any, error) {
	return h.svc.Latest(r.Context(), domain.QueryInput{})
}

// swagger:route POST /trends/query Trends trendsQuery
// @Summary Filter the latest run's records
// @Tags Trends
// @Accept json
// @Produce json
// @Param payload body domain.QueryInput true "Filter"
// @Success 200 {object} domain.LatestResponse "ok"
// @Router /trends/query [post]
func (h *handlers) query(r *stdhttp.Request, in domain.QueryInput) (any, error) {
	return h.svc.Latest(r.Context(), in)
}

// swagger:route GET /trends/runs Trends trendsRuns
// @Summary Recent runs, newest first
// @Tags Trends
// @Produce json
// @Param limit query int false "max runs" default(20)
// @Success 200 {array} fdomain.RunSummary "ok"
// @Router /trends/runs [get]
func (h *handlers) runs(r *stdhttp.Request) (any, error) {
	limit, err := intParam(r, "limit", 20, 200)
	if err != nil {
		return nil, err
	}
	return h.svc.Runs(r.Context(), limit)
}

// swagger:route GET /trends/history/{product} Trends trendsHistory
// @Summary A product's stored score history
// @Tags Trends
// @Produce json
// @Param product path string true "product name"
// @Param limit query int false "max points" default(30)
// @Success 200 {object} domain.HistoryResponse "ok"
// @Router /trends/history/{product} [get]
func (h *handlers) history(r *stdhttp.Request) (any, error) {
	limit, err := intParam(r, "limit", 30, 1000)
	if err != nil {
		return nil, err
	}
	return h.svc.History(r.Context(), chi.URLParam(r, "product"), limit)
}

// swagger:route POST /trends/analyze Trends trendsAnalyze
// @Summary Score ad-hoc texts against products
// @Tags Trends
// @Accept json
// @Produce json
// @Param payload body domain.AnalyzeInput true "Products and texts"
// @Success 200 {object} domain.AnalyzeResponse "ok"
// @Router /trends/analyze [post]
func (h *handlers) analyze(r *stdhttp.Request, in domain.AnalyzeInput) (any, error) {
	return h.svc.Analyze(r.Context(), in)
}

func intParam(r *stdhttp.Request, name string, def, max int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > max {
		return 0, perr.WithField(perr.InvalidArgf("%s must be between 1 and %d", name, max), name)
	}
	return n, nil
}
