package listing_test

import (
	"testing"

	"jobmate/board-service/internal/listing"
	"jobmate/board-service/internal/model"
)

func TestPageCount(t *testing.T) {
	cases := []struct{ n, size, want int }{
		{0, 10, 1},
		{1, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{120, 10, 12},
		{5, 0, 1},
	}
	for _, c := range cases {
		if got := listing.PageCount(c.n, c.size); got != c.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", c.n, c.size, got, c.want)
		}
	}
}

func TestPage(t *testing.T) {
	seq := make([]model.JobRecord, 23)
	cases := []struct{ page, want int }{
		{1, 10},
		{2, 10},
		{3, 3},
		{4, 3},  // clamped to last page
		{0, 10}, // clamped to first page
	}
	for _, c := range cases {
		if got := listing.Page(seq, c.page, 10); len(got) != c.want {
			t.Errorf("Page(23 records, %d) = %d record(s), want %d", c.page, len(got), c.want)
		}
	}
	if got := listing.Page(nil, 1, 10); len(got) != 0 {
		t.Errorf("Page(empty) = %d record(s), want 0", len(got))
	}
}

func TestNavigationStaysInBounds(t *testing.T) {
	for count := 1; count <= 4; count++ {
		page := 1
		for i := 0; i < 10; i++ {
			page = listing.NextPage(page, count)
			if page < 1 || page > count {
				t.Fatalf("NextPage left [1, %d]: %d", count, page)
			}
		}
		if page != count {
			t.Errorf("after many NextPage, page = %d, want %d", page, count)
		}
		for i := 0; i < 10; i++ {
			page = listing.PrevPage(page)
			if page < 1 || page > count {
				t.Fatalf("PrevPage left [1, %d]: %d", count, page)
			}
		}
		if page != 1 {
			t.Errorf("after many PrevPage, page = %d, want 1", page)
		}
	}
}

func TestClampPage(t *testing.T) {
	if got := listing.ClampPage(9, 3); got != 3 {
		t.Errorf("ClampPage(9, 3) = %d", got)
	}
	if got := listing.ClampPage(-2, 3); got != 1 {
		t.Errorf("ClampPage(-2, 3) = %d", got)
	}
}
