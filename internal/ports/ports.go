package ports

import (
	"context"

	"valuator/internal/domain"
	"valuator/internal/valuation"
)

// GenerationRequest is everything the generation capability sees for one pass.
type GenerationRequest struct {
	ReportID     string
	Selector     domain.PassSelector
	PassLabel    string
	Company      domain.Company
	PriorOutputs map[string]domain.PassResult
	// Narratives holds previously completed narrative results; set only for
	// narrative passes.
	Narratives map[domain.NarrativeID]domain.PassResult
	// Grounding carries authoritative values; set only for narrative passes.
	Grounding       *valuation.AuthoritativeValues
	UseWebSearch    bool
	ForceRegenerate bool
}

// Generator invokes the external text-generation capability for one pass. An
// unparseable response is returned as a parse-failure PassResult, not an error;
// errors mean the call itself failed.
type Generator interface {
	Generate(ctx context.Context, req GenerationRequest) (domain.PassResult, error)
}
