package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"labonita/compras/internal/engineerror"
	"labonita/compras/internal/normalize"
)

// HTTPSource fetches record batches from the deployed web-app endpoint.
// The endpoint answers a GET with either a JSON 2D array or CSV text,
// depending on the deployment variant; both reduce to a raw table.
type HTTPSource struct {
	endpoint string
	client   *http.Client
}

// NewHTTPSource creates a source for the given endpoint URL. A zero timeout
// selects 30 seconds.
func NewHTTPSource(endpoint string, timeout time.Duration) *HTTPSource {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &HTTPSource{
		endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// FetchTable performs one batch fetch. Failures are SourceErrors; the caller
// is expected to keep its last-good snapshot when one is returned.
func (s *HTTPSource) FetchTable(ctx context.Context) (normalize.RawTable, error) {
	log.WithField("endpoint", s.endpoint).Info("Fetching record batch")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return normalize.RawTable{}, &engineerror.SourceError{Endpoint: s.endpoint, Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return normalize.RawTable{}, &engineerror.SourceError{Endpoint: s.endpoint, Err: err}
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Warn("Failed to close response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return normalize.RawTable{}, &engineerror.SourceError{
			Endpoint: s.endpoint,
			Err:      fmt.Errorf("unexpected status %d", resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return normalize.RawTable{}, &engineerror.SourceError{Endpoint: s.endpoint, Err: err}
	}

	var table normalize.RawTable
	if isCSVResponse(resp.Header.Get("Content-Type")) {
		table, err = ParseCSVTable(strings.NewReader(string(body)), ',')
	} else {
		table, err = ParseJSONTable(body)
	}
	if err != nil {
		return normalize.RawTable{}, &engineerror.SourceError{Endpoint: s.endpoint, Err: err}
	}

	log.WithField("rows", len(table.Rows)).Info("Fetched record batch")
	return table, nil
}

func isCSVResponse(contentType string) bool {
	return strings.Contains(contentType, "text/csv") ||
		strings.Contains(contentType, "application/csv")
}
