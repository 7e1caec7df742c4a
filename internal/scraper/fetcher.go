package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"
	"time"

	"jobmate/board-service/internal/model"
)

const (
	// PageSize is the number of records requested per API page. A page with
	// fewer records is taken as the last one; the API sends no total.
	PageSize = 50

	headerPageSize    = "X-Request-Page-Size"
	headerCurrentPage = "X-Request-Current-Page"
)

// TransportError reports a failed page request. Any TransportError aborts the
// whole fetch.
type TransportError struct {
	Page       int
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("page %d: status %d: %v", e.Page, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// BoardFetcher retrieves every published posting from a job board endpoint
// that paginates through request headers.
type BoardFetcher struct {
	Endpoint string
	client   *http.Client
}

// NewBoardFetcher constructs a fetcher. A zero timeout leaves requests
// unbounded.
func NewBoardFetcher(endpoint string, timeout time.Duration) *BoardFetcher {
	return &BoardFetcher{
		Endpoint: endpoint,
		client:   &http.Client{Timeout: timeout},
	}
}

// FetchAll requests pages 1, 2, ... sequentially until a page comes back
// shorter than PageSize, and returns all records in page order.
// The first failure aborts the fetch; records already read are discarded.
func (f *BoardFetcher) FetchAll(ctx context.Context) ([]model.JobRecord, error) {
	var records []model.JobRecord

	for page := 1; ; page++ {
		batch, err := f.fetchPage(ctx, page)
		if err != nil {
			log.Printf("[fetcher] Aborting after %d record(s): %v", len(records), err)
			return nil, err
		}
		records = append(records, batch...)
		log.Printf("[fetcher] Page %d: %d record(s)", page, len(batch))
		if len(batch) < PageSize {
			break // Last page
		}
	}

	log.Printf("[fetcher] Fetched %d record(s) from %s", len(records), f.Endpoint)
	return records, nil
}

func (f *BoardFetcher) fetchPage(ctx context.Context, page int) ([]model.JobRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.Endpoint, nil)
	if err != nil {
		return nil, &TransportError{Page: page, Err: err}
	}
	req.Header.Set(headerPageSize, strconv.Itoa(PageSize))
	req.Header.Set(headerCurrentPage, strconv.Itoa(page))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{Page: page, Err: fmt.Errorf("http GET: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Page: page, StatusCode: resp.StatusCode, Err: fmt.Errorf("read body: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &TransportError{
			Page:       page,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("board returned %d: %s", resp.StatusCode, truncate(body, 200)),
		}
	}

	var batch []model.JobRecord
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, &TransportError{Page: page, StatusCode: resp.StatusCode, Err: fmt.Errorf("json unmarshal: %w", err)}
	}
	return batch, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "…"
}
