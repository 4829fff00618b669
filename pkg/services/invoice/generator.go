package invoice

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/enertools/meter-billing/pkg/models/domain"
	"github.com/enertools/meter-billing/pkg/services/billing"
)

// ReadsLister is the slice of the metering client the generator needs.
type ReadsLister interface {
	ListReads(
		ctx context.Context,
		moduleID, pointID string,
		period domain.BillingPeriod,
	) ([]domain.MeteringRead, error)
}

type Generator interface {
	GenerateInvoice(ctx context.Context, req domain.InvoiceRequest) (*domain.Invoice, error)
}

// Defaults come from the profile configuration and apply when the request
// leaves them unset.
type Defaults struct {
	Rate     string
	Currency string
}

type generator struct {
	reads    ReadsLister
	defaults Defaults
}

func NewGenerator(reads ReadsLister, defaults Defaults) Generator {
	if defaults.Currency == "" {
		defaults.Currency = "CAD"
	}
	return &generator{reads: reads, defaults: defaults}
}

// GenerateInvoice fetches the period's reads and prices them. Fetch failures
// propagate to the caller — an unreachable or misconfigured upstream must
// not quietly become a zero-total invoice.
func (g *generator) GenerateInvoice(ctx context.Context, req domain.InvoiceRequest) (*domain.Invoice, error) {
	logger := zerolog.Ctx(ctx)

	reads, err := g.reads.ListReads(ctx, req.ModuleID, req.PointID, req.Period)
	if err != nil {
		return nil, fmt.Errorf("failed to list reads for point %s: %w", req.PointID, err)
	}

	rate := req.Rate
	if strings.TrimSpace(rate) == "" {
		rate = g.defaults.Rate
	}

	result := billing.Calculate(reads, rate)

	logger.Info().
		Str("module", req.ModuleID).
		Str("point", req.PointID).
		Int("reads", len(reads)).
		Str("total_energy", result.TotalEnergy).
		Str("total_cost", result.TotalCost).
		Msg("invoice computed")

	return &domain.Invoice{
		ID:       uuid.NewString(),
		Profile:  req.Profile,
		ModuleID: req.ModuleID,
		PointID:  req.PointID,
		Currency: g.defaults.Currency,
		Period:   req.Period,
		Billing:  result,
		IssuedAt: time.Now().UTC(),
	}, nil
}
