package invoice

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/enertools/meter-billing/pkg/adapters"
	"github.com/enertools/meter-billing/pkg/cloudocean"
	"github.com/enertools/meter-billing/pkg/models/api"
	"github.com/enertools/meter-billing/pkg/models/domain"
	"github.com/enertools/meter-billing/pkg/services/metering"
)

const defaultPeriodDays = 30

type Handler struct {
	explorer metering.Explorer
}

func NewHandler(explorer metering.Explorer) *Handler {
	return &Handler{explorer: explorer}
}

func (h *Handler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	profiles, err := h.explorer.ListProfiles(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to list profiles")
		http.Error(w, "failed to list profiles", http.StatusInternalServerError)
		return
	}

	response := make([]api.Profile, 0, len(profiles))
	for _, name := range profiles {
		response = append(response, api.Profile{Name: name})
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.Error().Err(err).Msg("failed to encode profiles")
	}
}

func (h *Handler) GetInvoice(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	profile := chi.URLParam(r, "profile")
	moduleID := chi.URLParam(r, "module")
	pointID := chi.URLParam(r, "point")

	now := time.Now()
	from, err := parseDateParam(r, "from", now.AddDate(0, 0, -defaultPeriodDays))
	if err != nil {
		http.Error(w, "invalid 'from' date format. Expected format: YYYY-MM-DD", http.StatusBadRequest)
		return
	}
	to, err := parseDateParam(r, "to", now)
	if err != nil {
		http.Error(w, "invalid 'to' date format. Expected format: YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	generator, err := h.explorer.GetInvoiceGenerator(ctx, profile)
	if err != nil {
		logger.Error().Err(err).Str("profile", profile).Msg("failed to resolve profile")
		http.Error(w, "profile not found", http.StatusNotFound)
		return
	}

	inv, err := generator.GenerateInvoice(ctx, domain.InvoiceRequest{
		Profile:  profile,
		ModuleID: moduleID,
		PointID:  pointID,
		Period:   domain.BillingPeriod{Start: from, End: to},
		Rate:     r.URL.Query().Get("rate"),
	})
	if err != nil {
		h.writeUpstreamFailure(w, logger, profile, err)
		return
	}

	if err := json.NewEncoder(w).Encode(adapters.MapInvoiceDomainToApi(inv)); err != nil {
		logger.Error().Err(err).Str("profile", profile).Msg("failed to encode invoice")
	}
}

// writeUpstreamFailure maps the fetcher's error taxonomy onto responses.
// Everything upstream-related is a gateway problem from this API's point of
// view; the message tells the operator which kind.
func (h *Handler) writeUpstreamFailure(w http.ResponseWriter, logger *zerolog.Logger, profile string, err error) {
	logger.Error().Err(err).Str("profile", profile).Msg("failed to generate invoice")

	var exhausted *cloudocean.AuthExhaustedError
	var upstream *cloudocean.UpstreamError
	var transport *cloudocean.TransportError
	switch {
	case errors.As(err, &exhausted):
		http.Error(w, "metering API rejected the configured credential", http.StatusBadGateway)
	case errors.As(err, &upstream):
		http.Error(w, "metering API request failed", http.StatusBadGateway)
	case errors.As(err, &transport):
		http.Error(w, "metering API unreachable", http.StatusBadGateway)
	default:
		http.Error(w, "failed to generate invoice", http.StatusInternalServerError)
	}
}

func parseDateParam(r *http.Request, name string, defaultDate time.Time) (time.Time, error) {
	value := r.URL.Query().Get(name)
	if value == "" {
		return defaultDate, nil
	}
	return time.Parse("2006-01-02", value)
}
