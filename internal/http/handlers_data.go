package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"finboard/internal/export"
	"finboard/internal/ingest"
)

// handleUpload replaces the session ledger with the rows of an uploaded
// CSV or Excel file. A malformed file still seeds an empty ledger so the
// dashboard keeps rendering.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	sess, err := s.resolveSession(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Session resolution failed", "error", err)
		InternalServerError("Session unavailable").Write(w)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		slog.WarnContext(r.Context(), "Upload parse error", "error", err, "session_id", sess.ID)
		BadRequestError("Upload too large or malformed").Write(w)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		BadRequestError("Missing file field").Write(w)
		return
	}
	defer func() { _ = file.Close() }()

	records, readErr := ingest.ReadFile(header.Filename, file)
	if readErr != nil {
		slog.WarnContext(r.Context(), "Upload ingest error",
			"error", readErr, "session_id", sess.ID, "filename", header.Filename)
	}

	if err := s.svc.Seed(r.Context(), sess.ID, records); err != nil {
		slog.ErrorContext(r.Context(), "Ledger seed error", "error", err, "session_id", sess.ID)
		InternalServerError("Could not load the file").Write(w)
		return
	}

	s.sessions.SetSource(sess.ID, SourceUpload)
	s.invalidateSession(sess.ID)

	slog.InfoContext(r.Context(), "Ledger seeded from upload",
		"session_id", sess.ID, "filename", header.Filename, "record_count", len(records))

	resp := NewHTMXResponse().
		TriggerLedgerUpdated(len(records)).
		TriggerSourceChanged(SourceUpload)
	if readErr != nil {
		resp.TriggerErrorNotification("File could not be read; starting with an empty ledger").
			BodyHTML(`<div class="warning">Loaded 0 rows</div>`)
	} else {
		resp.TriggerSuccessNotification("File loaded").
			BodyHTML(`<div class="success">Loaded ` + strconv.Itoa(len(records)) + ` rows</div>`)
	}
	resp.Write(w)
}

// handleUseSample reseeds the session ledger from the bundled dataset.
func (s *Server) handleUseSample(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}

	sess, err := s.resolveSession(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Session resolution failed", "error", err)
		InternalServerError("Session unavailable").Write(w)
		return
	}

	records := ingest.Sample(s.opts.SamplePath)
	if err := s.svc.Seed(r.Context(), sess.ID, records); err != nil {
		slog.ErrorContext(r.Context(), "Ledger seed error", "error", err, "session_id", sess.ID)
		InternalServerError("Could not load sample data").Write(w)
		return
	}

	s.sessions.SetSource(sess.ID, SourceSample)
	s.invalidateSession(sess.ID)

	NewHTMXResponse().
		TriggerLedgerUpdated(len(records)).
		TriggerSourceChanged(SourceSample).
		TriggerSuccessNotification("Sample data loaded").
		BodyHTML(`<div class="success">Loaded ` + strconv.Itoa(len(records)) + ` rows</div>`).
		Write(w)
}

// handleExport streams the filtered subset as a CSV download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	if resp := RequireGET(r); resp != nil {
		resp.Write(w)
		return
	}

	sess, err := s.resolveSession(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Session resolution failed", "error", err)
		http.Error(w, "session unavailable", http.StatusInternalServerError)
		return
	}

	view, _, err := s.filteredView(r.Context(), sess.ID, r.URL.Query())
	if err != nil {
		slog.ErrorContext(r.Context(), "Export view error", "error", err, "session_id", sess.ID)
		http.Error(w, "ledger unavailable", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.Filename+`"`)

	if err := export.WriteCSV(w, view.Records); err != nil {
		slog.ErrorContext(r.Context(), "Export write error", "error", err, "session_id", sess.ID)
	}
}
