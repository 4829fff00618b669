package cloudocean

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/enertools/meter-billing/pkg/models/domain"
)

const defaultPageSize = 100

// Settings bind a Client to one deployment. The credential is injected here
// rather than read from the environment so concurrent clients against
// different deployments stay independent.
type Settings struct {
	Host       string
	Credential string
	PageSize   int
}

// Client reads measuring-point data from a Cloud Ocean deployment.
type Client struct {
	host       string
	credential string
	pageSize   int
	fetcher    *Fetcher
}

func NewClient(settings Settings, fetcher *Fetcher) *Client {
	if settings.PageSize <= 0 {
		settings.PageSize = defaultPageSize
	}
	if fetcher == nil {
		fetcher = NewFetcher(nil)
	}
	return &Client{
		host:       strings.TrimRight(settings.Host, "/"),
		credential: settings.Credential,
		pageSize:   settings.PageSize,
		fetcher:    fetcher,
	}
}

// readRecord mirrors the upstream wire format. Older deployments send
// time_stamp instead of timestamp, and consumption shows up both as a JSON
// number and as a quoted string.
type readRecord struct {
	Consumption    json.RawMessage `json:"consumption"`
	Timestamp      string          `json:"timestamp"`
	TimestampSnake string          `json:"time_stamp"`
	StartTime      string          `json:"start_time"`
	EndTime        string          `json:"end_time"`
}

type readsPage struct {
	Data []readRecord `json:"data"`
}

// ListReads fetches every read for the point between the period's start and
// end dates, walking limit/offset pages until a short page marks the end.
func (c *Client) ListReads(
	ctx context.Context,
	moduleID, pointID string,
	period domain.BillingPeriod,
) ([]domain.MeteringRead, error) {
	endpoint := fmt.Sprintf("%s/modules/%s/measuring-points/%s/reads", c.host, moduleID, pointID)

	var reads []domain.MeteringRead
	for offset := 0; ; offset += c.pageSize {
		query := url.Values{}
		query.Set("start", period.Start.Format("2006-01-02"))
		query.Set("end", period.End.Format("2006-01-02"))
		query.Set("limit", strconv.Itoa(c.pageSize))
		query.Set("offset", strconv.Itoa(offset))

		resp, err := c.fetcher.Get(ctx, endpoint, query, c.credential)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch reads page at offset %d: %w", offset, err)
		}

		var page readsPage
		err = json.NewDecoder(resp.Body).Decode(&page)
		_ = resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to decode reads page at offset %d: %w", offset, err)
		}

		for _, record := range page.Data {
			reads = append(reads, mapReadRecord(record))
		}

		if len(page.Data) < c.pageSize {
			return reads, nil
		}
	}
}

func mapReadRecord(record readRecord) domain.MeteringRead {
	date := record.Timestamp
	if date == "" {
		date = record.TimestampSnake
	}
	return domain.MeteringRead{
		Date:           date,
		StartTime:      record.StartTime,
		EndTime:        record.EndTime,
		ConsumedEnergy: rawNumberText(record.Consumption),
	}
}

// rawNumberText keeps the upstream value as text whether it arrived as a
// JSON number, a quoted numeric string, or something malformed. Billing
// validation decides what it is worth.
func rawNumberText(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
