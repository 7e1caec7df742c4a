package listing

import "jobmate/board-service/internal/model"

// DisplayPageSize is the number of cards shown per display page.
const DisplayPageSize = 10

// PageCount returns the number of display pages for n records. It is never
// less than 1, so an empty listing still reads "Page 1 of 1".
func PageCount(n, pageSize int) int {
	if pageSize <= 0 || n <= 0 {
		return 1
	}
	return (n + pageSize - 1) / pageSize
}

// ClampPage bounds page to [1, count].
func ClampPage(page, count int) int {
	if page > count {
		page = count
	}
	if page < 1 {
		page = 1
	}
	return page
}

// Page returns the records of the given 1-based page. Out-of-range pages are
// clamped first. The returned slice shares storage with seq.
func Page(seq []model.JobRecord, page, pageSize int) []model.JobRecord {
	if pageSize <= 0 {
		return nil
	}
	page = ClampPage(page, PageCount(len(seq), pageSize))
	start := (page - 1) * pageSize
	if start >= len(seq) {
		return seq[:0:0]
	}
	end := min(start+pageSize, len(seq))
	return seq[start:end:end]
}

// NextPage advances one page unless already on the last.
func NextPage(page, count int) int {
	if page < count {
		return page + 1
	}
	return page
}

// PrevPage steps back one page unless already on the first.
func PrevPage(page int) int {
	if page > 1 {
		return page - 1
	}
	return page
}
