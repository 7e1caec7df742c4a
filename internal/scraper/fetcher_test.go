package scraper_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"jobmate/board-service/internal/model"
	"jobmate/board-service/internal/scraper"
)

// boardServer serves total records in pages of the requested size and
// records the page numbers it was asked for.
type boardServer struct {
	mu       sync.Mutex
	total    int
	failPage int
	requests []int
}

func (b *boardServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	size, _ := strconv.Atoi(r.Header.Get("X-Request-Page-Size"))
	page, _ := strconv.Atoi(r.Header.Get("X-Request-Current-Page"))

	b.mu.Lock()
	b.requests = append(b.requests, page)
	b.mu.Unlock()

	if page == b.failPage {
		http.Error(w, "boom", http.StatusBadGateway)
		return
	}

	jobs := make([]map[string]any, 0, size)
	for i := (page - 1) * size; i < page*size && i < b.total; i++ {
		jobs = append(jobs, map[string]any{
			"url":     fmt.Sprintf("https://example.com/jobs/%d", i),
			"options": map[string]any{"_title": fmt.Sprintf("Job %d", i)},
		})
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(jobs)
}

func TestFetchAll_StopsOnShortPage(t *testing.T) {
	srv := &boardServer{total: 120}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	jobs, err := scraper.NewBoardFetcher(ts.URL, 0).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(jobs) != 120 {
		t.Fatalf("len(jobs) = %d, want 120", len(jobs))
	}
	if want := []int{1, 2, 3}; fmt.Sprint(srv.requests) != fmt.Sprint(want) {
		t.Errorf("requested pages %v, want %v", srv.requests, want)
	}
	// Page order is preserved.
	for i, j := range jobs {
		if want := model.Scalar(fmt.Sprintf("Job %d", i)); j.Options.Title != want {
			t.Fatalf("jobs[%d].Title = %q, want %q", i, j.Options.Title, want)
		}
	}
}

func TestFetchAll_ExactMultipleRequestsTrailingEmptyPage(t *testing.T) {
	srv := &boardServer{total: 100}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	jobs, err := scraper.NewBoardFetcher(ts.URL, 0).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(jobs) != 100 {
		t.Errorf("len(jobs) = %d, want 100", len(jobs))
	}
	if len(srv.requests) != 3 {
		t.Errorf("requests = %v, want 3 pages", srv.requests)
	}
}

func TestFetchAll_EmptyBoard(t *testing.T) {
	srv := &boardServer{total: 0}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	jobs, err := scraper.NewBoardFetcher(ts.URL, 0).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(jobs) != 0 {
		t.Errorf("len(jobs) = %d, want 0", len(jobs))
	}
	if len(srv.requests) != 1 {
		t.Errorf("requests = %v, want exactly page 1", srv.requests)
	}
}

func TestFetchAll_SendsPaginationHeaders(t *testing.T) {
	var got http.Header
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	if _, err := scraper.NewBoardFetcher(ts.URL, 0).FetchAll(context.Background()); err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if v := got.Get("X-Request-Page-Size"); v != "50" {
		t.Errorf("X-Request-Page-Size = %q, want 50", v)
	}
	if v := got.Get("X-Request-Current-Page"); v != "1" {
		t.Errorf("X-Request-Current-Page = %q, want 1", v)
	}
	if v := got.Get("Content-Type"); v != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", v)
	}
}

func TestFetchAll_ErrorStatusDiscardsPartialResults(t *testing.T) {
	srv := &boardServer{total: 120, failPage: 2}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	jobs, err := scraper.NewBoardFetcher(ts.URL, 0).FetchAll(context.Background())
	if err == nil {
		t.Fatal("FetchAll: expected error, got nil")
	}
	if jobs != nil {
		t.Errorf("jobs = %d record(s), want nil on failure", len(jobs))
	}

	var te *scraper.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("error %T is not a *TransportError", err)
	}
	if te.Page != 2 || te.StatusCode != http.StatusBadGateway {
		t.Errorf("TransportError page=%d status=%d, want page=2 status=502", te.Page, te.StatusCode)
	}
	// No retry, no further pages.
	if fmt.Sprint(srv.requests) != "[1 2]" {
		t.Errorf("requested pages %v, want [1 2]", srv.requests)
	}
}

func TestFetchAll_MalformedBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer ts.Close()

	_, err := scraper.NewBoardFetcher(ts.URL, 0).FetchAll(context.Background())
	var te *scraper.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if te.Page != 1 {
		t.Errorf("Page = %d, want 1", te.Page)
	}
}

func TestFetchAll_EmptyMapsAsArraysKeepPage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"options":{"_title":"Nurse"}},{"options":[],"advert":[]}]`))
	}))
	defer ts.Close()

	jobs, err := scraper.NewBoardFetcher(ts.URL, 0).FetchAll(context.Background())
	if err != nil {
		t.Fatalf("FetchAll: %v", err)
	}
	if len(jobs) != 2 {
		t.Fatalf("len(jobs) = %d, want 2", len(jobs))
	}
	if jobs[0].Options.Title != "Nurse" {
		t.Errorf("jobs[0].Title = %q, want Nurse", jobs[0].Options.Title)
	}
}

func TestFetchAll_NetworkFailure(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := scraper.NewBoardFetcher(url, 0).FetchAll(context.Background())
	var te *scraper.TransportError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if te.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0 for a network failure", te.StatusCode)
	}
}

func TestFetchAll_CanceledContext(t *testing.T) {
	srv := &boardServer{total: 10}
	ts := httptest.NewServer(srv)
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := scraper.NewBoardFetcher(ts.URL, 0).FetchAll(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
