package pvoutput

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/KasumiMercury/primind-power-scheduler/internal/domain"
	"github.com/KasumiMercury/primind-power-scheduler/internal/observability/tracing"
)

const userAgent = "primind-power-scheduler/1.0"

var ErrPageTooLarge = errors.New("intraday page exceeds size limit")

// Client fetches intraday telemetry pages from pvoutput.org.
type Client struct {
	httpClient   *http.Client
	maxPageBytes int64
}

var _ domain.PlantSource = (*Client)(nil)

// NewClient returns a client that rejects pages larger than maxPageBytes.
func NewClient(timeout time.Duration, maxPageBytes int64) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		maxPageBytes: maxPageBytes,
	}
}

func (c *Client) FetchPlant(ctx context.Context, url string) (*domain.PlantSamples, error) {
	ctx, span := tracing.StartExternalAPISpan(ctx, "fetch_plant", url)
	defer span.End()

	slog.DebugContext(ctx, "fetching plant telemetry",
		slog.String("url", url),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		tracing.RecordResult(span, err)
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", userAgent)
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.ErrorContext(ctx, "failed to send request to pvoutput",
			slog.String("url", url),
			slog.String("error", err.Error()),
		)
		tracing.RecordResult(span, err)
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		slog.ErrorContext(ctx, "unexpected status code from pvoutput",
			slog.String("url", url),
			slog.Int("status_code", resp.StatusCode),
		)
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		tracing.RecordResult(span, err)
		return nil, err
	}

	page, err := io.ReadAll(io.LimitReader(resp.Body, c.maxPageBytes+1))
	if err != nil {
		tracing.RecordResult(span, err)
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(page)) > c.maxPageBytes {
		slog.ErrorContext(ctx, "intraday page too large",
			slog.String("url", url),
			slog.Int64("max_bytes", c.maxPageBytes),
		)
		err := fmt.Errorf("%w: more than %d bytes", ErrPageTooLarge, c.maxPageBytes)
		tracing.RecordResult(span, err)
		return nil, err
	}

	plant, err := ParsePage(bytes.NewReader(page), url)
	if err != nil {
		tracing.RecordResult(span, err)
		return nil, err
	}

	slog.DebugContext(ctx, "successfully fetched plant telemetry",
		slog.String("plant", plant.Name),
		slog.Int("samples", len(plant.PowerOutputs)),
	)
	tracing.RecordResult(span, nil)

	return plant, nil
}
