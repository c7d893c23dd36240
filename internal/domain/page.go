package domain

import "math"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100

	// MaxPage keeps Offset within int for every allowed limit
	MaxPage = math.MaxInt / MaxPageLimit
)

// Page is a 1-based page request
type Page struct {
	Page  int
	Limit int
}

// Normalize clamps the page to sane bounds: page >= 1, limit in [1, MaxPageLimit]
func (p Page) Normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Page > MaxPage {
		p.Page = MaxPage
	}
	if p.Limit < 1 {
		p.Limit = DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		p.Limit = MaxPageLimit
	}
	return p
}

// Offset returns the number of rows to skip
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages returns how many pages of size Limit hold total rows
func (p Page) TotalPages(total int) int {
	if p.Limit < 1 {
		return 0
	}
	return (total + p.Limit - 1) / p.Limit
}
