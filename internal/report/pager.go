package report

import (
	"sort"

	"frauddash/internal/domain"
)

// PageSize is the fixed number of transactions per page.
const PageSize = 100

// SortDataset returns a copy of the dataset ordered newest first by
// NormalizedTimeMs, ties broken by RowID ascending. The 0 timestamp
// sentinel therefore sorts after every positive timestamp, with sentinel
// rows kept in input order among themselves. The input slice is left
// untouched.
func SortDataset(dataset []domain.Transaction) []domain.Transaction {
	sorted := make([]domain.Transaction, len(dataset))
	copy(sorted, dataset)

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].NormalizedTimeMs != sorted[j].NormalizedTimeMs {
			return sorted[i].NormalizedTimeMs > sorted[j].NormalizedTimeMs
		}
		return sorted[i].RowID < sorted[j].RowID
	})
	return sorted
}

// TotalPages returns the page count for n transactions, never less
// than 1.
func TotalPages(n int) int {
	pages := (n + PageSize - 1) / PageSize
	if pages < 1 {
		return 1
	}
	return pages
}

// ClampPage forces a requested page number into [1, totalPages].
func ClampPage(requested, totalPages int) int {
	if requested < 1 {
		return 1
	}
	if requested > totalPages {
		return totalPages
	}
	return requested
}

// Project returns the page view for a requested page number over an
// already sorted dataset. The requested number is clamped; HasPrev and
// HasNext are false at their respective boundaries so the matching
// controls render inert.
func Project(sorted []domain.Transaction, requested int) domain.Page {
	totalPages := TotalPages(len(sorted))
	page := ClampPage(requested, totalPages)

	start := (page - 1) * PageSize
	end := start + PageSize
	if start > len(sorted) {
		start = len(sorted)
	}
	if end > len(sorted) {
		end = len(sorted)
	}

	return domain.Page{
		Number:       page,
		TotalPages:   totalPages,
		PageSize:     PageSize,
		Transactions: sorted[start:end],
		HasPrev:      page > 1,
		HasNext:      page < totalPages,
	}
}
