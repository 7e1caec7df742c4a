package board

import (
	"fmt"
	"time"

	"jobmate/board-service/internal/listing"
	"jobmate/board-service/internal/model"
)

// State is one immutable snapshot of the viewer. Transitions return a new
// State; none of them modify their receiver's slices.
type State struct {
	Jobs    []model.JobRecord // full collection from the last successful fetch
	Display []model.JobRecord // filtered and sorted view of Jobs
	Query   string
	Sort    listing.SortDirection
	Page    int
	Status  Status
	Message string

	loc *time.Location
}

// NewState returns the pre-fetch state.
func NewState(loc *time.Location) State {
	if loc == nil {
		loc = time.Local
	}
	return State{Sort: listing.DefaultSort, Page: 1, Status: StatusIdle, loc: loc}
}

// Loading marks a fetch as in flight. The current collection stays
// browsable until the fetch completes.
func (s State) Loading() State {
	s.Status = StatusLoading
	s.Message = MessageLoading
	return s
}

// Loaded replaces the collection wholesale and re-derives the view.
func (s State) Loaded(jobs []model.JobRecord) State {
	s.Jobs = jobs
	s.Status, s.Message = StatusIdle, ""
	return s.derive()
}

// Failed discards the collection and shows the generic error banner.
func (s State) Failed() State {
	s.Jobs = nil
	s.Display = nil
	s.Page = 1
	s.Status = StatusError
	s.Message = MessageError
	return s
}

// WithQuery applies a new search query.
func (s State) WithQuery(q string) State {
	s.Query = q
	return s.derive()
}

// WithSort applies a new sort direction.
func (s State) WithSort(d listing.SortDirection) State {
	s.Sort = d
	return s.derive()
}

// Next moves to the following display page, if any.
func (s State) Next() State {
	s.Page = listing.NextPage(s.Page, s.PageCount())
	return s
}

// Prev moves to the preceding display page, if any.
func (s State) Prev() State {
	s.Page = listing.PrevPage(s.Page)
	return s
}

// PageCount is the number of display pages, at least 1.
func (s State) PageCount() int {
	return listing.PageCount(len(s.Display), listing.DisplayPageSize)
}

// CurrentPage returns the records on the current display page.
func (s State) CurrentPage() []model.JobRecord {
	return listing.Page(s.Display, s.Page, listing.DisplayPageSize)
}

// derive recomputes Display from Jobs, resets the page and settles the
// status. An error state is left as is: it clears only on the next fetch.
func (s State) derive() State {
	s.Display = listing.Derive(s.Jobs, s.Query, s.Sort, s.loc)
	s.Page = 1

	switch {
	case s.Status == StatusLoading, s.Status == StatusError:
		return s
	case len(s.Jobs) == 0:
		s.Status, s.Message = StatusEmpty, MessageEmptyBoard
	case len(s.Display) == 0:
		s.Status, s.Message = StatusEmpty, MessageEmptyCriteria
	default:
		s.Status, s.Message = StatusIdle, ""
	}
	return s
}

// View is what the presentation layer renders.
type View struct {
	Status     Status         `json:"status"`
	Message    string         `json:"message,omitempty"`
	Cards      []listing.Card `json:"cards"`
	Page       int            `json:"page"`
	TotalPages int            `json:"totalPages"`
	PageLabel  string         `json:"pageLabel"`
	HasPrev    bool           `json:"hasPrev"`
	HasNext    bool           `json:"hasNext"`
	Query      string         `json:"query"`
	Sort       string         `json:"sort"`
	Total      int            `json:"total"`
}

// View renders the state as seen at now.
func (s State) View(now time.Time, f listing.CardFormat) View {
	total := s.PageCount()
	v := View{
		Status:     s.Status,
		Message:    s.Message,
		Cards:      []listing.Card{},
		Page:       s.Page,
		TotalPages: total,
		PageLabel:  fmt.Sprintf("Page %d of %d", s.Page, total),
		HasPrev:    s.Page > 1,
		HasNext:    s.Page < total,
		Query:      s.Query,
		Sort:       string(s.Sort),
		Total:      len(s.Display),
	}
	if !HasBanner(s.Status) {
		v.Cards = listing.BuildCards(s.CurrentPage(), now, f)
	}
	return v
}
