package handler

import (
	"embed"
	"html/template"
	"net/http"
	"strconv"
	"strings"
)

//go:embed templates/dashboard.html.tmpl
var templateFS embed.FS

var dashboardTmpl = template.Must(template.ParseFS(templateFS, "templates/dashboard.html.tmpl"))

type pageData struct {
	Error        string
	Summary      SummaryResponse
	Page         PageResponse
	PrevPage     int
	NextPage     int
	HasFraudData bool
}

// GetPage renders the HTML dashboard. In the terminal error state the
// whole dashboard is replaced by an error panel.
func (h *DashboardHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	data := pageData{Error: h.store.Err()}

	if data.Error == "" {
		page := h.store.Page()
		if raw := r.URL.Query().Get("page"); raw != "" {
			if n, err := parsePage(raw); err == nil {
				page = h.store.SetPage(n)
			}
		}

		data.Summary = h.summaryResponse()
		data.Page = h.pageResponse(page)
		data.PrevPage = page.Number - 1
		data.NextPage = page.Number + 1
		data.HasFraudData = len(data.Summary.FraudCountsByLocation) > 0
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if data.Error != "" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	if err := dashboardTmpl.Execute(w, data); err != nil {
		h.logger.Error("template render failed", map[string]interface{}{"error": err.Error()})
	}
}

func parsePage(raw string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(raw))
}
