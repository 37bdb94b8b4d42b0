// Package report derives the dashboard views from a loaded dataset: the
// aggregate summary, the time-sorted paginated projection, and the
// fraud-by-location chart.
package report

import (
	"math"
	"sort"

	"frauddash/internal/domain"
)

// Summarize computes the aggregate view over the full dataset. It is a
// pure function of its input: repeated runs over the same dataset produce
// identical output, including the order of the location groupings.
func Summarize(dataset []domain.Transaction) domain.Summary {
	s := domain.Summary{
		TotalCount: len(dataset),
	}

	for _, tx := range dataset {
		if tx.IsPotentialFraud {
			s.FraudCount++
		}
		if !math.IsNaN(tx.Amount) {
			s.TotalAmount += tx.Amount
		}
	}

	if s.TotalCount > 0 {
		rate := float64(s.FraudCount) / float64(s.TotalCount) * 100
		s.FraudRatePercent = math.Round(rate*100) / 100
	}

	s.CountsByLocation = groupByLocation(dataset, func(domain.Transaction) bool { return true })
	s.FraudCountsByLocation = groupByLocation(dataset, func(tx domain.Transaction) bool { return tx.IsPotentialFraud })

	return s
}

// groupByLocation counts transactions matching the filter per display
// location, ordered descending by count. Ties keep first-seen input
// order so the grouping is deterministic; locations with no matching
// transactions never appear.
func groupByLocation(dataset []domain.Transaction, include func(domain.Transaction) bool) []domain.LocationCount {
	index := make(map[string]int)
	var counts []domain.LocationCount

	for _, tx := range dataset {
		if !include(tx) {
			continue
		}
		loc := tx.DisplayLocation()
		i, seen := index[loc]
		if !seen {
			i = len(counts)
			index[loc] = i
			counts = append(counts, domain.LocationCount{Location: loc})
		}
		counts[i].Count++
	}

	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].Count > counts[j].Count
	})
	return counts
}
