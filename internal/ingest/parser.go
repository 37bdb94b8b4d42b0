// Package ingest turns raw CSV text into the typed transaction dataset.
//
// The feed is deliberately simple: comma-delimited, no quoting or escape
// support, first line is the header and fixes the column schema for the
// whole document. Field-level problems never fail the load; they degrade
// to defined sentinels (NaN amount, false fraud flag, 0 timestamp) so a
// bad row still shows up in every count and table.
package ingest

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"frauddash/internal/domain"
)

// Known schema columns. Anything else is preserved verbatim in
// Transaction.Extra.
const (
	colTransactionID = "transaction_id"
	colMerchant      = "merchant"
	colLocation      = "location"
	colAmount        = "amount"
	colTimestamp     = "timestamp"
	colFraud         = "is_potential_fraud"
)

// ErrEmptyInput is returned when the document contains no header line.
var ErrEmptyInput = errors.New("csv document is empty")

// ParseTransactions parses a whole CSV document into transactions in
// input order. RowID is assigned zero-based in emission order; blank
// lines (including a trailing newline) are skipped and consume no RowID.
// Rows shorter than the header get empty strings for the missing
// trailing fields.
func ParseTransactions(text string) ([]domain.Transaction, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ErrEmptyInput
	}

	lines := strings.Split(trimmed, "\n")
	headers := strings.Split(lines[0], ",")
	for i := range headers {
		headers[i] = strings.TrimSpace(headers[i])
	}

	txs := make([]domain.Transaction, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		values := strings.Split(line, ",")

		tx := domain.Transaction{RowID: len(txs)}
		for i, h := range headers {
			value := ""
			if i < len(values) {
				value = strings.TrimSpace(values[i])
			}

			switch h {
			case colTransactionID:
				tx.TransactionID = value
			case colMerchant:
				tx.Merchant = value
			case colLocation:
				tx.Location = value
			case colAmount:
				tx.Amount = parseAmount(value)
			case colTimestamp:
				tx.Timestamp = value
			case colFraud:
				tx.IsPotentialFraud = value == "1"
			default:
				if tx.Extra == nil {
					tx.Extra = make(map[string]string)
				}
				tx.Extra[h] = value
			}
		}
		tx.NormalizedTimeMs = NormalizeTimestamp(tx.Timestamp)

		txs = append(txs, tx)
	}

	return txs, nil
}

// parseAmount maps malformed input to NaN rather than failing the row.
// Downstream sums treat NaN as zero.
func parseAmount(value string) float64 {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}
