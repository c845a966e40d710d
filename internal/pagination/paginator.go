package pagination

import "strconv"

// Page describes one page of an ordered listing: its position, the
// navigation metadata, and where it starts inside the full collection.
type Page struct {
	Number         int
	PerPage        int
	TotalPages     int
	Count          int64
	HasNext        bool
	HasPrevious    bool
	NextNumber     int
	PreviousNumber int
}

// PageNumber parses a "page" query parameter. Anything that is not a
// positive integer means the first page.
func PageNumber(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// New builds the Page for the given 1-based page number. Out-of-range
// numbers clamp to the nearest valid page; an empty collection yields a
// single empty page.
func New(number, perPage int, total int64) Page {
	if perPage < 1 {
		perPage = 1
	}
	totalPages := int((total + int64(perPage) - 1) / int64(perPage))
	if totalPages < 1 {
		totalPages = 1
	}
	if number < 1 {
		number = 1
	}
	if number > totalPages {
		number = totalPages
	}

	p := Page{
		Number:      number,
		PerPage:     perPage,
		TotalPages:  totalPages,
		Count:       total,
		HasNext:     number < totalPages,
		HasPrevious: number > 1,
	}
	if p.HasNext {
		p.NextNumber = number + 1
	}
	if p.HasPrevious {
		p.PreviousNumber = number - 1
	}
	return p
}

// Offset is the zero-based index of the first item on the page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.PerPage
}
