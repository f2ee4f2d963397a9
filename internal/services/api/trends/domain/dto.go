package domain

import (
	"artisantrend/internal/core/relevance"
	"artisantrend/internal/core/trend"
	fdomain "artisantrend/internal/services/forecast/domain"
)

// QueryInput narrows the latest run's records
type QueryInput struct {
	MinConfidence float64 `json:"min_confidence" validate:"gte=0,lte=100"                        example:"60"`
	Direction     string  `json:"direction"      validate:"omitempty,oneof=Rising Stable Declining" example:"Rising"`
	Limit         int     `json:"limit"          validate:"gte=0,lte=500"                       example:"10"`
}

// EntryInput is one ad-hoc text tied to a product
type EntryInput struct {
	Product string `json:"product" validate:"required,max=100"      example:"handmade soap"`
	Text    string `json:"text"    validate:"required,max=10000"    example:"Loving this lavender goat milk soap"`
	Kind    string `json:"kind"    validate:"omitempty,oneof=post comment" example:"post"`
}

// AnalyzeInput is a manual query: texts are checked against every product, entries
// carry their own product
type AnalyzeInput struct {
	Products []string     `json:"products" validate:"required,min=1,max=50,dive,required,max=100" example:"handmade soap,leather bag"`
	Texts    []string     `json:"texts"    validate:"max=1000,dive,max=10000"`
	Entries  []EntryInput `json:"entries"  validate:"max=1000,dive"`
	TopN     int          `json:"top_n"    validate:"gte=0,lte=50" example:"10"`
}

// LatestResponse is the newest run with its records
type LatestResponse struct {
	Run     fdomain.RunSummary `json:"run"`
	Records []trend.Record     `json:"records"`
}

// ProductAnalysis is the per-product answer to a manual query
type ProductAnalysis struct {
	Product      string       `json:"product"       example:"handmade soap"`
	Posts        int          `json:"posts"         example:"3"`
	Comments     int          `json:"comments"      example:"1"`
	Relevant     int          `json:"relevant"      example:"2"`
	RelevancePct float64      `json:"relevance_pct" example:"50"`
	Sentiment    float64      `json:"sentiment"     example:"0.42"`
	Keywords     []string     `json:"keywords"`
	Signals      []TextSignal `json:"signals"`
	Record       trend.Record `json:"record"`
}

// TextSignal explains one text against its product
type TextSignal struct {
	ID        string          `json:"id"        example:"texts[0]"`
	Relevant  bool            `json:"relevant"`
	Match     relevance.Match `json:"match"`
	Sentiment float64         `json:"sentiment"`
	Keywords  []string        `json:"keywords"`
}

// AnalyzeResponse lists products ranked like a forecast run
type AnalyzeResponse struct {
	Products []ProductAnalysis `json:"products"`
}

// HistoryResponse is a product's stored time series
type HistoryResponse struct {
	Product string                 `json:"product"`
	Points  []fdomain.HistoryPoint `json:"points"`
}
