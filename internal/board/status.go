// Package board owns the viewer state and exposes it to the presentation
// layer.
//
// Status lifecycle:
//
//	IDLE ──► LOADING ──► IDLE | EMPTY | ERROR
//	  ▲                        │
//	  └──── search / sort ─────┘   (EMPTY ⇄ IDLE without a fetch)
//
// Exactly one status message is visible at a time; IDLE shows cards instead.
package board

// Status values gate which banner the presentation layer shows.
type Status string

const (
	StatusIdle    Status = "IDLE"
	StatusLoading Status = "LOADING"
	StatusError   Status = "ERROR"
	StatusEmpty   Status = "EMPTY"
)

// Banner texts.
const (
	MessageLoading       = "Loading all job listings (this may take a moment)..."
	MessageError         = "Failed to load job listings. Please try again later."
	MessageEmptyBoard    = "No job listings found from the API."
	MessageEmptyCriteria = "No job listings found for the current criteria."
)

// HasBanner reports whether the status shows a message instead of cards.
func HasBanner(s Status) bool { return s != StatusIdle }
