package pagination

import "strconv"

// Paginator computes 1-indexed page windows for a fixed page size.
type Paginator struct {
	PageSize int
}

// ParsePage resolves a raw page query parameter. Empty, malformed, or
// non-positive values resolve to page 1.
func ParsePage(raw string) int {
	page, err := strconv.Atoi(raw)
	if err != nil || page < 1 {
		return 1
	}
	return page
}

// Window returns the LIMIT/OFFSET pair for the given page.
func (p Paginator) Window(page int) (limit, offset int) {
	if page < 1 {
		page = 1
	}
	size := p.size()
	return size, (page - 1) * size
}

// Indicators returns the next and previous page numbers for the given page
// against a total record count. A nil indicator means there is no such page.
func (p Paginator) Indicators(page, total int) (next, previous *int) {
	if page < 1 {
		page = 1
	}
	if page*p.size() < total {
		n := page + 1
		next = &n
	}
	if page > 1 {
		prev := page - 1
		previous = &prev
	}
	return next, previous
}

// size clamps a misconfigured page size so a window never degenerates to
// LIMIT 0.
func (p Paginator) size() int {
	if p.PageSize < 1 {
		return 1
	}
	return p.PageSize
}
