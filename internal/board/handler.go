package board

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Handler adapts Service to HTTP.
//
// Routes:
//
//	GET  /board                → current view
//	POST /board/search         → apply {"query": "..."}
//	POST /board/search/clear   → drop the query
//	POST /board/sort           → apply {"direction": "ASC"|"DESC"}
//	POST /board/next           → next display page
//	POST /board/prev           → previous display page
//	POST /board/refresh        → re-fetch everything from the job board
type Handler struct {
	svc *Service
}

// NewHandler returns a configured Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes mounts the board routes on r.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/board", func(r chi.Router) {
		r.Get("/", h.view)
		r.Post("/search", h.search)
		r.Post("/search/clear", h.clearSearch)
		r.Post("/sort", h.sort)
		r.Post("/next", h.next)
		r.Post("/prev", h.prev)
		r.Post("/refresh", h.refresh)
	})
}

func (h *Handler) view(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, h.svc.View())
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Query string `json:"query"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		jsonError(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	jsonOK(w, h.svc.Search(body.Query))
}

func (h *Handler) clearSearch(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, h.svc.ClearSearch())
}

func (h *Handler) sort(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Direction string `json:"direction"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Direction == "" {
		jsonError(w, "body must contain direction", http.StatusBadRequest)
		return
	}

	v, err := h.svc.Sort(body.Direction)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			jsonError(w, ve.Msg, http.StatusBadRequest)
			return
		}
		jsonError(w, "internal server error", http.StatusInternalServerError)
		return
	}
	jsonOK(w, v)
}

func (h *Handler) next(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, h.svc.NextPage())
}

func (h *Handler) prev(w http.ResponseWriter, r *http.Request) {
	jsonOK(w, h.svc.PrevPage())
}

// refresh runs synchronously: the response carries the post-fetch view.
// A failed fetch is not an HTTP error; the view shows the error banner.
// The fetch is shared by every viewer, so the caller hanging up does not
// cancel it.
func (h *Handler) refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.Refresh(context.WithoutCancel(r.Context())); err != nil {
		if errors.Is(err, ErrRefreshInProgress) {
			jsonError(w, err.Error(), http.StatusConflict)
			return
		}
		log.Printf("[board] refresh via HTTP failed: %v", err)
	}
	jsonOK(w, h.svc.View())
}

// ─── Helpers ─────────────────────────────────────────────────────────────────

func jsonOK(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
