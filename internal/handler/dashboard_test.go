package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"frauddash/internal/ingest"
	"frauddash/internal/report"
	"frauddash/pkg/logger"
	"frauddash/pkg/money"
)

const sampleCSV = "transaction_id,merchant,location,amount,timestamp,is_potential_fraud\n" +
	"T1,A,NY,10.5,2026-02-13 18:28:11,0\n" +
	"T2,B,,20,2026-02-13 18:30:00,1\n"

func newTestHandler(t *testing.T, csv string) (*DashboardHandler, *report.Store) {
	t.Helper()

	store := report.NewStore(nil, logger.NewNop())
	if csv != "" {
		dataset, err := ingest.ParseTransactions(csv)
		require.NoError(t, err)
		store.Load(dataset)
	}
	formatter := money.NewFormatter("en-US", "$")
	return NewDashboardHandler(store, formatter, logger.NewNop()), store
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
}

func TestGetSummary(t *testing.T) {
	h, _ := newTestHandler(t, sampleCSV)

	rec := httptest.NewRecorder()
	h.GetSummary(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp SummaryResponse
	decode(t, rec, &resp)

	assert.Equal(t, 2, resp.TotalCount)
	assert.Equal(t, 1, resp.FraudCount)
	assert.Equal(t, 50.0, resp.FraudRatePercent)
	assert.Equal(t, "50.00%", resp.FraudRateDisplay)
	assert.Equal(t, 30.5, resp.TotalAmount)
	assert.Equal(t, "$30.5", resp.TotalAmountDisplay)
	assert.Contains(t, resp.ByLocationDisplay, "NY: 1")
	assert.Contains(t, resp.ByLocationDisplay, "Unknown: 1")
	assert.Contains(t, resp.ByLocationDisplay, " | ")
}

func TestGetTransactionsSortedNewestFirst(t *testing.T) {
	h, _ := newTestHandler(t, sampleCSV)

	rec := httptest.NewRecorder()
	h.GetTransactions(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/transactions", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PageResponse
	decode(t, rec, &resp)

	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "T2", resp.Rows[0].ID, "T2 has the later timestamp")
	assert.Equal(t, "T1", resp.Rows[1].ID)
	assert.Equal(t, "Unknown", resp.Rows[0].Location)
	assert.Equal(t, "$20", resp.Rows[0].Amount)
	assert.True(t, resp.Rows[0].Fraud)
	assert.Equal(t, "$10.5", resp.Rows[1].Amount)
}

func TestGetTransactionsPageClamped(t *testing.T) {
	var b strings.Builder
	b.WriteString("transaction_id,merchant,location,amount,timestamp,is_potential_fraud\n")
	for i := 0; i < 250; i++ {
		fmt.Fprintf(&b, "T%d,M,NY,1,2026-02-13 18:28:11,0\n", i)
	}
	h, _ := newTestHandler(t, b.String())

	rec := httptest.NewRecorder()
	h.GetTransactions(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/transactions?page=99", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp PageResponse
	decode(t, rec, &resp)

	assert.Equal(t, 3, resp.Page)
	assert.Equal(t, 3, resp.TotalPages)
	assert.Len(t, resp.Rows, 50)
	assert.True(t, resp.HasPrev)
	assert.False(t, resp.HasNext)
}

func TestGetTransactionsBadPage(t *testing.T) {
	h, _ := newTestHandler(t, sampleCSV)

	rec := httptest.NewRecorder()
	h.GetTransactions(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/transactions?page=abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNavigationBoundariesInert(t *testing.T) {
	h, _ := newTestHandler(t, sampleCSV) // 2 rows -> single page

	rec := httptest.NewRecorder()
	h.NextPage(rec, httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/transactions/next", nil))
	var resp PageResponse
	decode(t, rec, &resp)
	assert.Equal(t, 1, resp.Page)
	assert.False(t, resp.HasNext)

	rec = httptest.NewRecorder()
	h.PrevPage(rec, httptest.NewRequest(http.MethodPost, "/api/v1/dashboard/transactions/prev", nil))
	decode(t, rec, &resp)
	assert.Equal(t, 1, resp.Page)
	assert.False(t, resp.HasPrev)
}

func TestDegradedAmountRowStillRenders(t *testing.T) {
	csv := "transaction_id,merchant,location,amount,timestamp,is_potential_fraud\n" +
		"T1,A,NY,,2026-02-13 18:28:11,0\n" +
		"T2,B,NY,12,2026-02-13 18:30:00,0\n"
	h, _ := newTestHandler(t, csv)

	rec := httptest.NewRecorder()
	h.GetTransactions(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/transactions", nil))
	var page PageResponse
	decode(t, rec, &page)

	require.Len(t, page.Rows, 2, "a degraded row is never omitted")
	assert.Equal(t, "$NaN", page.Rows[1].Amount)

	rec = httptest.NewRecorder()
	h.GetSummary(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/summary", nil))
	var summary SummaryResponse
	decode(t, rec, &summary)
	assert.Equal(t, 12.0, summary.TotalAmount, "NaN amount contributes nothing to the total")
	assert.Equal(t, 2, summary.TotalCount)
}

func TestErrorStateReplacesDashboard(t *testing.T) {
	h, store := newTestHandler(t, "")
	store.Fail("HTTP 503 when fetching CSV")

	endpoints := []func(http.ResponseWriter, *http.Request){
		h.GetSummary, h.GetTransactions, h.NextPage, h.PrevPage, h.GetFraudChart,
	}
	for _, endpoint := range endpoints {
		rec := httptest.NewRecorder()
		endpoint(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

		var resp map[string]string
		decode(t, rec, &resp)
		assert.Equal(t, "HTTP 503 when fetching CSV", resp["error"])
	}
}

func TestGetFraudChart(t *testing.T) {
	h, _ := newTestHandler(t, sampleCSV)

	rec := httptest.NewRecorder()
	h.GetFraudChart(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/chart/fraud-by-location.png", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
}

func TestGetFraudChartNoFraud(t *testing.T) {
	csv := "transaction_id,merchant,location,amount,timestamp,is_potential_fraud\nT1,A,NY,1,2026-02-13 18:28:11,0\n"
	h, _ := newTestHandler(t, csv)

	rec := httptest.NewRecorder()
	h.GetFraudChart(rec, httptest.NewRequest(http.MethodGet, "/api/v1/dashboard/chart/fraud-by-location.png", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetPageHTML(t *testing.T) {
	h, _ := newTestHandler(t, sampleCSV)

	rec := httptest.NewRecorder()
	h.GetPage(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "Fraud Detection Dashboard")
	assert.Contains(t, body, "Page <b>1</b> of <b>1</b>")
	assert.Contains(t, body, "T2")
	// Single page: both controls render inert.
	assert.Contains(t, body, `<span class="nav disabled">Prev</span>`)
	assert.Contains(t, body, `<span class="nav disabled">Next</span>`)
}

func TestGetPageHTMLErrorPanel(t *testing.T) {
	h, store := newTestHandler(t, "")
	store.Fail("csv document is empty")

	rec := httptest.NewRecorder()
	h.GetPage(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "Failed to load CSV")
	assert.Contains(t, rec.Body.String(), "csv document is empty")
}
