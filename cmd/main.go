// jobmate-board-service
//
// Read-only viewer over a job board's published postings.
// On startup it fetches every page from the board API, then serves a
// filtered, sorted, paginated view over JSON:
//   - GET  /board                      current page of cards + status
//   - POST /board/search, /search/clear free-text filter
//   - POST /board/sort                  ASC / DESC by publish date
//   - POST /board/next, /board/prev     display page navigation
//   - POST /board/refresh               full re-fetch
//
// Refresh outcomes are published to Redis when REDIS_URL is set.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"jobmate/board-service/internal/board"
	"jobmate/board-service/internal/config"
	"jobmate/board-service/internal/events"
	"jobmate/board-service/internal/listing"
	"jobmate/board-service/internal/scheduler"
	"jobmate/board-service/internal/scraper"
)

const version = "1.0.0"

func main() {
	// ── Config ──────────────────────────────────────────────────────────────
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[board-service] .env not loaded: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("[board-service] Config error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ── Redis (optional) ─────────────────────────────────────────────────────
	var publisher events.Publisher = events.Nop{}
	if cfg.RedisURL != "" {
		log.Println("[board-service] Connecting to Redis…")
		rdb, err := events.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatalf("[board-service] Redis: %v", err)
		}
		defer rdb.Close()
		publisher = events.NewRedisPublisher(rdb)
		log.Println("[board-service] Redis connected ✓")
	}

	// ── Board ────────────────────────────────────────────────────────────────
	fetcher := scraper.NewBoardFetcher(cfg.APIURL, cfg.FetchTimeout)
	svc := board.NewService(fetcher, publisher, listing.CardFormat{
		Location:   cfg.Location,
		DateLayout: cfg.DateLayout,
	})

	sched := scheduler.New(svc, cfg.RefreshIntervalHours, board.ErrRefreshInProgress)
	if err := sched.Start(ctx); err != nil {
		log.Fatalf("[board-service] Scheduler: %v", err)
	}

	// ── HTTP server ──────────────────────────────────────────────────────────
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Get("/health", healthHandler)
	board.NewHandler(svc).RegisterRoutes(r)

	srv := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		// No WriteTimeout: POST /board/refresh waits for the whole fetch.
	}

	go func() {
		log.Printf("[board-service] v%s listening on :%s (board %s)", version, cfg.Port, cfg.APIURL)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[board-service] HTTP server error: %v", err)
		}
	}()

	// ── Graceful shutdown ────────────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[board-service] Shutting down…")
	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[board-service] Shutdown error: %v", err)
	}
	log.Println("[board-service] Stopped.")
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "board-service",
		"version": version,
	})
}
