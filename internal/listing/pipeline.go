// Package listing derives what the board displays from the fetched records.
package listing

import (
	"fmt"
	"slices"
	"time"

	"jobmate/board-service/internal/model"
	"jobmate/board-service/internal/scraper"
)

// SortDirection orders postings by publish date.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// DefaultSort shows the newest postings first.
const DefaultSort = SortDesc

// ParseSortDirection converts a raw string to a SortDirection. Matching is
// exact: "asc" or " ASC" are rejected.
func ParseSortDirection(s string) (SortDirection, error) {
	d := SortDirection(s)
	switch d {
	case SortAsc, SortDesc:
		return d, nil
	}
	return "", fmt.Errorf("unknown sort direction %q", s)
}

// Filter returns the records whose title or description contains query.
// The query is normalized first; an empty query keeps every record. The
// result never aliases jobs.
func Filter(jobs []model.JobRecord, query string) []model.JobRecord {
	q := scraper.NormalizeQuery(query)
	out := make([]model.JobRecord, 0, len(jobs))
	for _, j := range jobs {
		if scraper.MatchesQuery(j.Options.Title.String(), j.Description(), q) {
			out = append(out, j)
		}
	}
	return out
}

// SortByPublished orders jobs in place by publish date. Records without a
// parseable date sort as the earliest possible time. Ties keep their order.
func SortByPublished(jobs []model.JobRecord, dir SortDirection, loc *time.Location) {
	type keyed struct {
		at  time.Time
		job model.JobRecord
	}
	ks := make([]keyed, len(jobs))
	for i, j := range jobs {
		at, _ := j.PublishedAt(loc)
		ks[i] = keyed{at: at, job: j}
	}

	slices.SortStableFunc(ks, func(a, b keyed) int {
		if dir == SortDesc {
			return b.at.Compare(a.at)
		}
		return a.at.Compare(b.at)
	})

	for i := range ks {
		jobs[i] = ks[i].job
	}
}

// Derive filters then sorts the collection. The returned slice is fresh.
func Derive(jobs []model.JobRecord, query string, dir SortDirection, loc *time.Location) []model.JobRecord {
	out := Filter(jobs, query)
	SortByPublished(out, dir, loc)
	return out
}
