// Package handler provides the HTTP surface of the fraud dashboard: the
// JSON API, the chart image, and the server-rendered page.
package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"frauddash/internal/domain"
	"frauddash/internal/ingest"
	"frauddash/internal/report"
	"frauddash/pkg/logger"
	"frauddash/pkg/money"
)

// DashboardHandler serves all dashboard endpoints from a single Store.
type DashboardHandler struct {
	store  *report.Store
	money  *money.Formatter
	logger logger.Logger
}

// NewDashboardHandler creates a DashboardHandler.
func NewDashboardHandler(store *report.Store, m *money.Formatter, log logger.Logger) *DashboardHandler {
	return &DashboardHandler{
		store:  store,
		money:  m,
		logger: log,
	}
}

// SummaryResponse is the summary card payload: raw aggregates plus the
// preformatted display strings the cards show.
type SummaryResponse struct {
	TotalCount            int                    `json:"total_count"`
	FraudCount            int                    `json:"fraud_count"`
	FraudRatePercent      float64                `json:"fraud_rate_percent"`
	FraudRateDisplay      string                 `json:"fraud_rate_display"`
	TotalAmount           float64                `json:"total_amount"`
	TotalAmountDisplay    string                 `json:"total_amount_display"`
	CountsByLocation      []domain.LocationCount `json:"counts_by_location"`
	FraudCountsByLocation []domain.LocationCount `json:"fraud_counts_by_location"`
	ByLocationDisplay     string                 `json:"by_location_display"`
}

// TableRow is one rendered transaction table row. Amount, date and time
// are preformatted; degraded fields show their sentinel text ("$NaN",
// blank date/time) rather than dropping the row.
type TableRow struct {
	RowID    int    `json:"row_id"`
	ID       string `json:"id"`
	Merchant string `json:"merchant"`
	Location string `json:"location"`
	Amount   string `json:"amount"`
	Date     string `json:"date"`
	Time     string `json:"time"`
	Fraud    bool   `json:"fraud"`
}

// PageResponse is the paged transaction table payload.
type PageResponse struct {
	Page       int        `json:"page"`
	TotalPages int        `json:"total_pages"`
	PageSize   int        `json:"page_size"`
	HasPrev    bool       `json:"has_prev"`
	HasNext    bool       `json:"has_next"`
	Rows       []TableRow `json:"rows"`
}

// GetSummary returns the aggregate metrics for the loaded dataset.
func (h *DashboardHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	if msg := h.store.Err(); msg != "" {
		h.respondError(w, http.StatusServiceUnavailable, msg)
		return
	}
	h.respondJSON(w, http.StatusOK, h.summaryResponse())
}

// GetTransactions returns one page of the time-sorted transaction table.
// An optional ?page=N query selects the page; out-of-range values are
// clamped, not rejected.
func (h *DashboardHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	if msg := h.store.Err(); msg != "" {
		h.respondError(w, http.StatusServiceUnavailable, msg)
		return
	}

	var page domain.Page
	if raw := strings.TrimSpace(r.URL.Query().Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			h.respondError(w, http.StatusBadRequest, "page must be an integer")
			return
		}
		page = h.store.SetPage(n)
	} else {
		page = h.store.Page()
	}

	h.respondJSON(w, http.StatusOK, h.pageResponse(page))
}

// NextPage advances the table one page and returns the resulting view.
// On the last page the call is inert.
func (h *DashboardHandler) NextPage(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, h.store.Next)
}

// PrevPage moves the table one page back and returns the resulting view.
// On the first page the call is inert.
func (h *DashboardHandler) PrevPage(w http.ResponseWriter, r *http.Request) {
	h.navigate(w, h.store.Prev)
}

func (h *DashboardHandler) navigate(w http.ResponseWriter, move func() bool) {
	if msg := h.store.Err(); msg != "" {
		h.respondError(w, http.StatusServiceUnavailable, msg)
		return
	}
	move()
	h.respondJSON(w, http.StatusOK, h.pageResponse(h.store.Page()))
}

// GetFraudChart renders the fraud-by-location bar chart as a PNG.
func (h *DashboardHandler) GetFraudChart(w http.ResponseWriter, r *http.Request) {
	if msg := h.store.Err(); msg != "" {
		h.respondError(w, http.StatusServiceUnavailable, msg)
		return
	}

	summary := h.store.Summary()
	if len(summary.FraudCountsByLocation) == 0 {
		h.respondError(w, http.StatusNotFound, "No fraud data available")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	if err := report.RenderFraudChart(w, summary.FraudCountsByLocation); err != nil {
		h.logger.Error("chart render failed", map[string]interface{}{"error": err.Error()})
	}
}

// Health is the liveness check.
func (h *DashboardHandler) Health(w http.ResponseWriter, r *http.Request) {
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *DashboardHandler) summaryResponse() SummaryResponse {
	s := h.store.Summary()

	parts := make([]string, 0, len(s.CountsByLocation))
	for _, c := range s.CountsByLocation {
		parts = append(parts, fmt.Sprintf("%s: %d", c.Location, c.Count))
	}

	return SummaryResponse{
		TotalCount:            s.TotalCount,
		FraudCount:            s.FraudCount,
		FraudRatePercent:      s.FraudRatePercent,
		FraudRateDisplay:      fmt.Sprintf("%.2f%%", s.FraudRatePercent),
		TotalAmount:           s.TotalAmount,
		TotalAmountDisplay:    h.money.Format(s.TotalAmount),
		CountsByLocation:      s.CountsByLocation,
		FraudCountsByLocation: s.FraudCountsByLocation,
		ByLocationDisplay:     strings.Join(parts, " | "),
	}
}

func (h *DashboardHandler) pageResponse(page domain.Page) PageResponse {
	rows := make([]TableRow, 0, len(page.Transactions))
	for _, tx := range page.Transactions {
		rows = append(rows, NewTableRow(tx))
	}
	return PageResponse{
		Page:       page.Number,
		TotalPages: page.TotalPages,
		PageSize:   page.PageSize,
		HasPrev:    page.HasPrev,
		HasNext:    page.HasNext,
		Rows:       rows,
	}
}

// NewTableRow formats a transaction for table display. The amount keeps
// the plain number rendering of the source value ("$20", "$10.5") and
// shows "$NaN" for the degraded sentinel; an unparsable timestamp shows
// blank date and time cells.
func NewTableRow(tx domain.Transaction) TableRow {
	return TableRow{
		RowID:    tx.RowID,
		ID:       tx.TransactionID,
		Merchant: tx.Merchant,
		Location: tx.DisplayLocation(),
		Amount:   "$" + strconv.FormatFloat(tx.Amount, 'f', -1, 64),
		Date:     ingest.FormatDateMDY(tx.NormalizedTimeMs),
		Time:     ingest.FormatTimeAMPM(tx.NormalizedTimeMs),
		Fraud:    tx.IsPotentialFraud,
	}
}

func (h *DashboardHandler) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("json encode failed", map[string]interface{}{"error": err.Error()})
		_, _ = w.Write([]byte(`{"error":"response encoding failed"}`))
	}
}

func (h *DashboardHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}
