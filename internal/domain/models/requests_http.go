package models

// Requests for dashboard HTTP endpoints. Defined in domain for consistency and reuse.

type MetricRequest struct {
	Name    string `query:"name" json:"name" validate:"required,oneof=cape pe_ratio buffett margin_debt concentration sentiment"`
	History bool   `query:"history" json:"history"`
}

type CompositeRequest struct {
	// Trend overrides the configured trend score when supplied.
	Trend *float64 `query:"trend" json:"trend" validate:"omitempty,gte=0,lte=100"`
}

type TechnicalRequest struct {
	Symbol string `query:"symbol" json:"symbol" validate:"required"`
	Period string `query:"period" json:"period" default:"1y" validate:"oneof=1mo 3mo 6mo 1y 2y 5y"`
}
