package metering

import (
	"context"
	"fmt"
	"net/http"

	"github.com/enertools/meter-billing/pkg/cloudocean"
	"github.com/enertools/meter-billing/pkg/services/config"
	"github.com/enertools/meter-billing/pkg/services/invoice"
)

// Explorer resolves configured profiles into ready-to-use invoice
// generators. Clients are built per call from the profile's endpoint, so no
// shared session state exists between invocations.
type Explorer interface {
	ListProfiles(ctx context.Context) ([]string, error)
	GetInvoiceGenerator(ctx context.Context, profile string) (invoice.Generator, error)
}

type Options struct {
	HTTPClient *http.Client
	PageSize   int
}

type explorer struct {
	registry   config.Registry
	httpClient *http.Client
	pageSize   int
}

func NewExplorer(registry config.Registry, opts Options) Explorer {
	return &explorer{
		registry:   registry,
		httpClient: opts.HTTPClient,
		pageSize:   opts.PageSize,
	}
}

func (e *explorer) ListProfiles(ctx context.Context) ([]string, error) {
	return e.registry.GetProfiles(ctx)
}

func (e *explorer) GetInvoiceGenerator(ctx context.Context, profile string) (invoice.Generator, error) {
	endpoint, err := e.registry.GetEndpoint(ctx, profile)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve profile %q: %w", profile, err)
	}

	client := cloudocean.NewClient(cloudocean.Settings{
		Host:       endpoint.Host,
		Credential: endpoint.Token,
		PageSize:   e.pageSize,
	}, cloudocean.NewFetcher(e.httpClient))

	return invoice.NewGenerator(client, invoice.Defaults{
		Rate:     endpoint.Rate,
		Currency: endpoint.Currency,
	}), nil
}
