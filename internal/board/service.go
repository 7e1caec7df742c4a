package board

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"jobmate/board-service/internal/events"
	"jobmate/board-service/internal/listing"
	"jobmate/board-service/internal/model"
)

// Fetcher retrieves the complete record set from the job board.
type Fetcher interface {
	FetchAll(ctx context.Context) ([]model.JobRecord, error)
}

// ErrRefreshInProgress is returned when a refresh is requested while another
// fetch is still running.
var ErrRefreshInProgress = errors.New("refresh already in progress")

// Service holds the single mutable reference to the board State. Every
// event applies a pure transition under mu and returns the resulting View.
type Service struct {
	fetcher   Fetcher
	publisher events.Publisher
	format    listing.CardFormat
	now       func() time.Time

	mu       sync.Mutex
	state    State
	fetching bool
}

// NewService returns a Service with an empty board.
func NewService(fetcher Fetcher, publisher events.Publisher, format listing.CardFormat) *Service {
	if publisher == nil {
		publisher = events.Nop{}
	}
	return &Service{
		fetcher:   fetcher,
		publisher: publisher,
		format:    format,
		now:       time.Now,
		state:     NewState(format.Location),
	}
}

// SetClock replaces the clock used for "new" badges.
func (s *Service) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// Refresh re-fetches every page from page 1 and replaces the collection.
// On failure the board shows the error banner and no records.
// Only one fetch runs at a time; concurrent calls get ErrRefreshInProgress.
func (s *Service) Refresh(ctx context.Context) error {
	s.mu.Lock()
	if s.fetching {
		s.mu.Unlock()
		return ErrRefreshInProgress
	}
	s.fetching = true
	s.state = s.state.Loading()
	s.mu.Unlock()

	runID := uuid.NewString()
	log.Printf("[board] Refresh %s started", runID)

	jobs, err := s.fetcher.FetchAll(ctx)

	s.mu.Lock()
	s.fetching = false
	if err != nil {
		s.state = s.state.Failed()
	} else {
		s.state = s.state.Loaded(jobs)
	}
	s.mu.Unlock()

	if err != nil {
		log.Printf("[board] Refresh %s failed: %v", runID, err)
		s.publish(ctx, events.ChannelRefreshFailed, events.RefreshFailed{
			Type:  events.ChannelRefreshFailed,
			RunID: runID,
			Error: err.Error(),
			At:    time.Now().UTC(),
		})
		return err
	}

	log.Printf("[board] Refresh %s done: records=%d", runID, len(jobs))
	s.publish(ctx, events.ChannelRefreshed, events.Refreshed{
		Type:    events.ChannelRefreshed,
		RunID:   runID,
		Records: len(jobs),
		At:      time.Now().UTC(),
	})
	return nil
}

// publish is non-fatal: the board never depends on event delivery.
func (s *Service) publish(ctx context.Context, channel string, payload any) {
	if err := s.publisher.Publish(ctx, channel, payload); err != nil {
		slog.Warn("publish board event failed", "channel", channel, "err", err)
	}
}

// View returns the current view.
func (s *Service) View() View {
	return s.apply(func(st State) State { return st })
}

// Search applies a free-text query.
func (s *Service) Search(query string) View {
	return s.apply(func(st State) State { return st.WithQuery(query) })
}

// ClearSearch removes the query.
func (s *Service) ClearSearch() View {
	return s.apply(func(st State) State { return st.WithQuery("") })
}

// Sort changes the sort direction. Unknown directions are rejected with a
// *ValidationError and leave the state untouched.
func (s *Service) Sort(direction string) (View, error) {
	dir, err := listing.ParseSortDirection(direction)
	if err != nil {
		return View{}, &ValidationError{Msg: err.Error()}
	}
	return s.apply(func(st State) State { return st.WithSort(dir) }), nil
}

// NextPage moves forward one display page.
func (s *Service) NextPage() View {
	return s.apply(State.Next)
}

// PrevPage moves back one display page.
func (s *Service) PrevPage() View {
	return s.apply(State.Prev)
}

func (s *Service) apply(transition func(State) State) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = transition(s.state)
	return s.state.View(s.now(), s.format)
}

// ValidationError wraps a user-facing validation message.
type ValidationError struct{ Msg string }

func (e *ValidationError) Error() string { return e.Msg }
