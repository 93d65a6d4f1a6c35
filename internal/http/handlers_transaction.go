package http

import (
	"html/template"
	"log/slog"
	"net/http"

	"finboard/internal/core"
)

// handleCreateTransaction appends a manual entry to the session ledger.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	sess, err := s.resolveSession(w, r)
	if err != nil {
		slog.ErrorContext(r.Context(), "Session resolution failed", "error", err)
		InternalServerError("Session unavailable").Write(w)
		return
	}

	tx, errResp := ParseTransactionForm(r.Form)
	if errResp != nil {
		errResp.Write(w)
		return
	}

	count, err := s.svc.Append(r.Context(), sess.ID, tx)
	if err != nil {
		slog.ErrorContext(r.Context(), "Transaction append error",
			"error", err, "session_id", sess.ID, "category", tx.Category, "amount_cents", tx.Amount.Cents)
		InternalServerError("Could not save the entry").Write(w)
		return
	}

	s.invalidateSession(sess.ID)

	NewHTMXResponse().
		TriggerLedgerUpdated(int(count)).
		TriggerFormReset().
		TriggerSuccessNotification("Entry added").
		BodyHTML(`<div class="success">Added ` + template.HTMLEscapeString(core.DisplayCategory(tx.Category)) +
			` ` + template.HTMLEscapeString(formatAmount(tx.Amount.Cents)) + `</div>`).
		Write(w)
}
