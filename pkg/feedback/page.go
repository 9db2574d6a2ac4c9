package feedback

import (
	"sort"

	"github.com/valentinpelus/signal/pkg/types"
)

const (
	DefaultPerPage = 10

	// pages shown without ellipsis
	maxPlainPages = 7
)

// Page is one page of the feedback listing, newest first
type Page struct {
	Items      []types.FeedbackItem `json:"items"`
	Page       int                  `json:"page"`
	PerPage    int                  `json:"perPage"`
	TotalItems int                  `json:"totalItems"`
	TotalPages int                  `json:"totalPages"`
	Start      int                  `json:"start"` // 1-based, 0 when empty
	End        int                  `json:"end"`
	// PageNumbers is the navigation strip; 0 marks an ellipsis
	PageNumbers []int `json:"pageNumbers"`
}

// Paginate sorts records by timestamp descending and slices out the requested page.
// Out-of-range pages are clamped.
func Paginate(records []Record, page, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}

	sorted := make([]Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].timestamp.After(sorted[j].timestamp)
	})

	total := len(sorted)
	totalPages := (total + perPage - 1) / perPage

	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}

	p := Page{
		Items:       []types.FeedbackItem{},
		Page:        page,
		PerPage:     perPage,
		TotalItems:  total,
		TotalPages:  totalPages,
		PageNumbers: pageStrip(page, totalPages),
	}
	if total == 0 {
		return p
	}

	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}

	p.Items = Items(sorted[start:end])
	p.Start = start + 1
	p.End = end
	return p
}

func pageStrip(current, totalPages int) []int {
	strip := []int{}
	if totalPages <= maxPlainPages {
		for i := 1; i <= totalPages; i++ {
			strip = append(strip, i)
		}
		return strip
	}

	switch {
	case current <= 4:
		for i := 1; i <= 5; i++ {
			strip = append(strip, i)
		}
		strip = append(strip, 0, totalPages)
	case current >= totalPages-3:
		strip = append(strip, 1, 0)
		for i := totalPages - 4; i <= totalPages; i++ {
			strip = append(strip, i)
		}
	default:
		strip = append(strip, 1, 0, current-1, current, current+1, 0, totalPages)
	}
	return strip
}
