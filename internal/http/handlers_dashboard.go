package http

import (
	"log/slog"
	"net/http"
	"time"

	"finboard/internal/core"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if s.templates == nil {
		slog.ErrorContext(r.Context(), "Templates not loaded", "url", r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	sess, err := s.resolveSession(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Session resolution failed", "error", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	records, err := s.svc.List(r.Context(), sess.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Ledger list error", "error", err, "session_id", sess.ID)
		http.Error(w, "ledger unavailable", http.StatusInternalServerError)
		return
	}

	defaults := core.DefaultFilter(records)

	data := struct {
		Source           string
		Today            string
		Start            string
		End              string
		FilterCategories []string
		FilterGenders    []string
		FormCategories   []string
		FormGenders      []string
		FormTags         []string
		RecordCount      int
	}{
		Source:           sess.Source,
		Today:            core.DateOf(time.Now()).ExportString(),
		Start:            defaults.Start.ExportString(),
		End:              defaults.End.ExportString(),
		FilterCategories: defaults.Categories.Values(),
		FilterGenders:    defaults.Genders.Values(),
		FormCategories:   core.DefaultCategories,
		FormGenders:      core.GenderOptions,
		FormTags:         core.TagOptions,
		RecordCount:      len(records),
	}

	if err := s.templates.ExecuteTemplate(w, "index.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Index template execution failed", "error", err, "template", "index.html")
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// renderPartial resolves the session, computes the filtered view, and hands
// it to render. Every /ui/* handler funnels through here.
func (s *Server) renderPartial(w http.ResponseWriter, r *http.Request, render func(view dashboardView, f core.Filter)) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	sess, err := s.resolveSession(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Session resolution failed", "error", err)
		_, _ = w.Write([]byte(`<div class="placeholder">Session unavailable</div>`))
		return
	}

	view, f, err := s.filteredView(r.Context(), sess.ID, r.URL.Query())
	if err != nil {
		slog.ErrorContext(r.Context(), "View computation error", "error", err, "session_id", sess.ID)
		_, _ = w.Write([]byte(`<div class="placeholder">Error loading data</div>`))
		return
	}

	render(view, f)
}

func (s *Server) renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	if s.templates == nil {
		_, _ = w.Write([]byte(`<div class="placeholder">Templates not loaded</div>`))
		return
	}
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", name)
		_, _ = w.Write([]byte(`<div class="placeholder">Error rendering view</div>`))
	}
}

// handleSummary renders the KPI cards partial.
func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.renderPartial(w, r, func(view dashboardView, f core.Filter) {
		data := struct {
			HasData bool
			Total   string
			Average string
			Max     string
			Count   int
		}{
			HasData: view.Summary.Count > 0,
			Total:   formatAmount(view.Summary.Total.Cents),
			Average: formatAmount(view.Summary.Average.Cents),
			Max:     formatAmount(view.Summary.Max.Cents),
			Count:   view.Summary.Count,
		}
		s.renderTemplate(w, r, "summary.html", data)
	})
}

type barRow struct {
	Label  string
	Amount string
	Width  int
}

// barWidth scales cents against the largest row as a rounded percent,
// keeping tiny non-zero rows visible.
func barWidth(cents, maxCents int64) int {
	if maxCents <= 0 || cents <= 0 {
		return 0
	}
	width := int((cents*100 + maxCents/2) / maxCents)
	if width > 0 && width < 2 {
		width = 2
	}
	if width > 100 {
		width = 100
	}
	return width
}

// handleBreakdown renders the category breakdown partial.
func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	s.renderPartial(w, r, func(view dashboardView, f core.Filter) {
		var maxCents int64
		for _, row := range view.ByCategory {
			if row.Amount.Cents > maxCents {
				maxCents = row.Amount.Cents
			}
		}

		data := struct {
			HasData bool
			Rows    []barRow
		}{HasData: len(view.ByCategory) > 0}
		for _, row := range view.ByCategory {
			data.Rows = append(data.Rows, barRow{
				Label:  row.Name,
				Amount: formatAmount(row.Amount.Cents),
				Width:  barWidth(row.Amount.Cents, maxCents),
			})
		}
		s.renderTemplate(w, r, "breakdown.html", data)
	})
}

// handleTrend renders the monthly trend partial.
func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	s.renderPartial(w, r, func(view dashboardView, f core.Filter) {
		var maxCents int64
		for _, point := range view.ByMonth {
			if point.Amount.Cents > maxCents {
				maxCents = point.Amount.Cents
			}
		}

		data := struct {
			HasData bool
			Rows    []barRow
		}{HasData: len(view.ByMonth) > 0}
		for _, point := range view.ByMonth {
			data.Rows = append(data.Rows, barRow{
				Label:  point.Month,
				Amount: formatAmount(point.Amount.Cents),
				Width:  barWidth(point.Amount.Cents, maxCents),
			})
		}
		s.renderTemplate(w, r, "trend.html", data)
	})
}

type txRow struct {
	Date     string
	Category string
	Amount   string
	Notes    string
	Gender   string
}

func toTxRows(records []core.Transaction) []txRow {
	rows := make([]txRow, 0, len(records))
	for _, t := range records {
		rows = append(rows, txRow{
			Date:     t.Date.ExportString(),
			Category: core.DisplayCategory(t.Category),
			Amount:   formatAmount(t.Amount.Cents),
			Notes:    t.Notes,
			Gender:   core.DisplayGender(t.Gender),
		})
	}
	return rows
}

// handleTop renders the top transactions partial.
func (s *Server) handleTop(w http.ResponseWriter, r *http.Request) {
	s.renderPartial(w, r, func(view dashboardView, f core.Filter) {
		data := struct {
			HasData bool
			Rows    []txRow
		}{
			HasData: len(view.Top) > 0,
			Rows:    toTxRows(view.Top),
		}
		s.renderTemplate(w, r, "top.html", data)
	})
}

// tableLimit caps the transactions table so huge uploads do not balloon the page.
const tableLimit = 200

// handleTransactionsTable renders the filtered transactions table partial.
func (s *Server) handleTransactionsTable(w http.ResponseWriter, r *http.Request) {
	s.renderPartial(w, r, func(view dashboardView, f core.Filter) {
		records := view.Records
		truncated := false
		if len(records) > tableLimit {
			records = records[:tableLimit]
			truncated = true
		}

		data := struct {
			HasData   bool
			Rows      []txRow
			Truncated bool
			Total     int
		}{
			HasData:   len(view.Records) > 0,
			Rows:      toTxRows(records),
			Truncated: truncated,
			Total:     len(view.Records),
		}
		s.renderTemplate(w, r, "transactions.html", data)
	})
}
