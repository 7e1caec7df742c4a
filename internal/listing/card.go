package listing

import (
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/text/language"

	"jobmate/board-service/internal/htmltext"
	"jobmate/board-service/internal/model"
)

const (
	// NewWindowDays is how many calendar days a posting counts as new.
	NewWindowDays = 5
	// DescriptionLimit is the maximum description length, in characters.
	DescriptionLimit = 250

	untitled      = "Untitled Job"
	notAvailable  = "N/A"
	noDescription = "No description available."
	noURL         = "#"
	ellipsis      = "..."
	rateUnit      = "PLN/hour"
)

// Card is the display form of one posting.
type Card struct {
	Title       string `json:"title"`
	Location    string `json:"location"`
	URL         string `json:"url"`
	IsNew       bool   `json:"isNew"`
	Rate        string `json:"rate,omitempty"`
	Description string `json:"description"`
	Published   string `json:"published"`
}

// CardFormat controls the clock- and locale-dependent card fields.
type CardFormat struct {
	Location   *time.Location
	DateLayout string
}

// BuildCard derives the display fields of a posting as seen at now.
func BuildCard(j model.JobRecord, now time.Time, f CardFormat) Card {
	loc := f.Location
	if loc == nil {
		loc = time.Local
	}
	layout := f.DateLayout
	if layout == "" {
		layout = time.DateOnly
	}

	c := Card{
		Title:       j.Options.Title.Or(untitled),
		Location:    j.Options.Location.Or(notAvailable),
		URL:         j.URL,
		Rate:        RateLine(j.Options.RateFrom, j.Options.RateTo),
		Description: Summary(j.Description()),
		Published:   notAvailable,
	}
	if c.URL == "" {
		c.URL = noURL
	}
	if at, ok := j.PublishedAt(loc); ok {
		c.Published = at.In(loc).Format(layout)
		c.IsNew = IsNew(at, now, loc)
	}
	return c
}

// BuildCards maps BuildCard over a page.
func BuildCards(jobs []model.JobRecord, now time.Time, f CardFormat) []Card {
	cards := make([]Card, 0, len(jobs))
	for _, j := range jobs {
		cards = append(cards, BuildCard(j, now, f))
	}
	return cards
}

// IsNew reports whether published falls within the last NewWindowDays
// calendar days of now, inclusive. Time of day is ignored and future dates
// are never new.
func IsNew(published, now time.Time, loc *time.Location) bool {
	days := calendarDays(published.In(loc), now.In(loc))
	return days >= 0 && days <= NewWindowDays
}

// calendarDays counts whole days from a to b by their dates alone, so DST
// shifts do not matter.
func calendarDays(a, b time.Time) int {
	da := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// RateLine formats the hourly rate. It returns "" when neither bound is set.
func RateLine(from, to model.Scalar) string {
	switch {
	case from.Present() && to.Present():
		return fmt.Sprintf("Hourly Rate: %s-%s %s", from, to, rateUnit)
	case from.Present():
		return fmt.Sprintf("Hourly Rate From: %s %s", from, rateUnit)
	case to.Present():
		return fmt.Sprintf("Hourly Rate To: %s %s", to, rateUnit)
	}
	return ""
}

// Summary extracts the first paragraph of an HTML description and truncates
// it to DescriptionLimit characters.
func Summary(descriptionHTML string) string {
	text := htmltext.FirstBlock(descriptionHTML)
	if text == "" {
		return noDescription
	}
	return Truncate(text, DescriptionLimit)
}

// Truncate cuts s to limit characters and appends "..." only when something
// was cut.
func Truncate(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	n := 0
	for i := range s {
		if n == limit {
			return s[:i] + ellipsis
		}
		n++
	}
	return s
}

// Date layouts per supported display locale. The first entry is the default.
var (
	localeTags = []language.Tag{
		language.AmericanEnglish,
		language.BritishEnglish,
		language.Polish,
		language.German,
		language.French,
	}
	localeLayouts = []string{
		"1/2/2006",
		"02/01/2006",
		"02.01.2006",
		"2.1.2006",
		"02/01/2006",
	}
	localeMatcher = language.NewMatcher(localeTags)
)

// DateLayoutFor returns the publish-date layout for a BCP 47 locale tag.
// Unsupported languages fall back to ISO dates.
func DateLayoutFor(locale string) (string, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return "", fmt.Errorf("parse locale %q: %w", locale, err)
	}
	_, idx, conf := localeMatcher.Match(tag)
	if conf == language.No {
		return time.DateOnly, nil
	}
	return localeLayouts[idx], nil
}
