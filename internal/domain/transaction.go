// Package domain holds the core data model shared by the ingest and
// reporting packages.
package domain

// Transaction is one typed record derived from a raw CSV row.
//
// Amount may be NaN when the source field was empty or malformed; every
// consumer that sums amounts must treat NaN as zero. NormalizedTimeMs is
// computed once at parse time and reused by all sorting and formatting,
// with 0 meaning "absent or unparsable" (which also collides with the
// epoch instant itself, an inherited quirk of the source format).
type Transaction struct {
	// RowID is the zero-based position of the row in the source file,
	// header excluded. Unique per dataset, stable for its lifetime, and
	// the tie-break key for time sorting.
	RowID int

	TransactionID    string
	Merchant         string
	Location         string
	Amount           float64
	Timestamp        string // verbatim source value, kept for display
	IsPotentialFraud bool
	NormalizedTimeMs int64

	// Extra carries columns outside the known schema, verbatim. The
	// aggregator and projector ignore them.
	Extra map[string]string
}

// DisplayLocation returns the grouping/display key for the transaction's
// location, substituting "Unknown" for an empty value.
func (t Transaction) DisplayLocation() string {
	if t.Location == "" {
		return UnknownLocation
	}
	return t.Location
}

// UnknownLocation is the grouping key for transactions with no location.
const UnknownLocation = "Unknown"

// LocationCount is one entry of a per-location grouping, ordered by the
// aggregator descending by count.
type LocationCount struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// Summary is the aggregate view over a full dataset.
type Summary struct {
	TotalCount       int     `json:"total_count"`
	FraudCount       int     `json:"fraud_count"`
	FraudRatePercent float64 `json:"fraud_rate_percent"`
	TotalAmount      float64 `json:"total_amount"`

	CountsByLocation      []LocationCount `json:"counts_by_location"`
	FraudCountsByLocation []LocationCount `json:"fraud_counts_by_location"`
}

// Page is one projected window of the time-sorted dataset.
type Page struct {
	Number     int
	TotalPages int
	PageSize   int

	// Transactions is the contiguous slice of the sorted order for this
	// page, at most PageSize long.
	Transactions []Transaction

	// HasPrev and HasNext report whether navigation away from this page
	// is possible; at a boundary the corresponding control is inert.
	HasPrev bool
	HasNext bool
}
