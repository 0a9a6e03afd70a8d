package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"time"

	"invdash/internal/errors"
)

// CSVReader fetches logical tables published as CSV export URLs, the way a
// shared spreadsheet exposes each worksheet under its own export link.
type CSVReader struct {
	urls       map[TableID]string
	httpClient *http.Client
}

// NewCSVReader creates a reader over the two configured export URLs.
func NewCSVReader(stockURL, newArrivalsURL string, timeout time.Duration) *CSVReader {
	return &CSVReader{
		urls: map[TableID]string{
			TableStock:       stockURL,
			TableNewArrivals: newArrivalsURL,
		},
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch retrieves and parses the CSV export for a logical table.
func (r *CSVReader) Fetch(ctx context.Context, id TableID) (*RawData, error) {
	if !id.Valid() {
		return nil, errors.InvalidInput(fmt.Sprintf("unknown table %q", id))
	}
	url := r.urls[id]
	if url == "" {
		return nil, errors.ConfigInvalid(fmt.Sprintf("no CSV URL configured for table %q", id))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.FetchFailed(id.DisplayName(), err)
	}

	reqStart := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, errors.FetchFailed(id.DisplayName(), err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.FetchFailed(id.DisplayName(), fmt.Errorf("source returned status %d", resp.StatusCode))
	}

	rows, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		return nil, errors.FetchFailed(id.DisplayName(), fmt.Errorf("malformed CSV: %w", err))
	}
	log.Printf("[CSVReader] %s fetched in %.2fms (%d rows)", id, float64(time.Since(reqStart).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, errors.FetchFailed(id.DisplayName(), fmt.Errorf("CSV export has no header row"))
	}

	return &RawData{
		Headers: rows[0],
		Rows:    rows[1:],
	}, nil
}
