package http

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"finboard/internal/export"
	"finboard/internal/services"
	"finboard/internal/session"
	"finboard/internal/store/memory"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st := memory.New()
	svc := services.NewLedgerService(st, nil)
	sessions := session.NewManager(st, time.Hour)
	srv := NewServer(":0", svc, sessions, Options{})
	t.Cleanup(func() {
		sessions.Stop()
		_ = srv.Shutdown(context.Background())
	})
	return srv
}

// do runs a request against the server, carrying the session cookie from a
// previous response when given.
func do(t *testing.T, srv *Server, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func sessionCookie(t *testing.T, rr *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func TestIndexAndHealth(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	if rr.Code != 200 {
		t.Fatalf("index status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Expense Dashboard") {
		t.Fatalf("index body missing heading")
	}
	sessionCookie(t, rr)

	for _, path := range []string{"/healthz", "/readyz"} {
		rr := do(t, srv, httptest.NewRequest(http.MethodGet, path, nil), nil)
		if rr.Code != 200 {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestIndexExportSubmitsFilterForm(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	if rr.Code != 200 {
		t.Fatalf("index status=%d", rr.Code)
	}
	body := rr.Body.String()

	// The download control submits the filter form itself, so the export
	// always carries the current category/gender/date selections.
	formStart := strings.Index(body, `<form id="filters" action="/export" method="get">`)
	if formStart < 0 {
		t.Fatalf("filter form does not target /export")
	}
	formEnd := strings.Index(body[formStart:], "</form>")
	if formEnd < 0 {
		t.Fatalf("unterminated filter form")
	}
	form := body[formStart : formStart+formEnd]
	if !strings.Contains(form, `id="export-button"`) {
		t.Fatalf("export button not inside the filter form: %s", form)
	}
	for _, sentinel := range []string{`name="category" value=""`, `name="gender" value=""`} {
		if !strings.Contains(form, sentinel) {
			t.Fatalf("filter form missing sentinel %s", sentinel)
		}
	}
}

func TestFirstVisitSeedsSampleLedger(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, httptest.NewRequest(http.MethodGet, "/ui/transactions", nil), nil)
	if rr.Code != 200 {
		t.Fatalf("status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Groceries") {
		t.Fatalf("expected sample rows in table, got: %s", rr.Body.String())
	}
}

func TestCreateTransactionValidationAndSuccess(t *testing.T) {
	srv := newTestServer(t)

	// Wrong method
	rr := do(t, srv, httptest.NewRequest(http.MethodGet, "/transactions", nil), nil)
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", rr.Code)
	}

	// Invalid amount
	req := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("amount=abc&category=Travel"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr = do(t, srv, req, nil)
	if rr.Code != 422 {
		t.Fatalf("expected 422, got %d", rr.Code)
	}

	// Success
	req = httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader("date=2025-03-01&amount=12.50&category=Travel&gender=Female&tag=one-time"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr = do(t, srv, req, nil)
	if rr.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "success") {
		t.Fatalf("expected success in body: %s", rr.Body.String())
	}
	if !strings.Contains(rr.Header().Get("HX-Trigger"), "ledger:updated") {
		t.Fatalf("missing ledger:updated trigger: %s", rr.Header().Get("HX-Trigger"))
	}

	// The new row shows up for the same session.
	cookie := sessionCookie(t, rr)
	rr = do(t, srv, httptest.NewRequest(http.MethodGet, "/ui/transactions", nil), cookie)
	if !strings.Contains(rr.Body.String(), "Travel") {
		t.Fatalf("new entry missing from table: %s", rr.Body.String())
	}
}

func uploadRequest(t *testing.T, body string, filename string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fw.Write([]byte(body)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	_ = mw.Close()
	req := httptest.NewRequest(http.MethodPost, "/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadReplacesLedger(t *testing.T) {
	srv := newTestServer(t)

	csv := "Date,Category,Amount,Notes,Gender\n2025-04-01,Books,15.00,novel,Male\n2025-04-02,Books,25.00,textbook,Female\n"
	rr := do(t, srv, uploadRequest(t, csv, "expenses.csv"), nil)
	if rr.Code != 200 {
		t.Fatalf("upload status=%d: %s", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "Loaded 2 rows") {
		t.Fatalf("unexpected upload body: %s", rr.Body.String())
	}

	cookie := sessionCookie(t, rr)
	rr = do(t, srv, httptest.NewRequest(http.MethodGet, "/ui/transactions", nil), cookie)
	body := rr.Body.String()
	if !strings.Contains(body, "Books") || strings.Contains(body, "Groceries") {
		t.Fatalf("upload did not replace ledger: %s", body)
	}
}

func TestUploadMalformedSeedsEmptyLedger(t *testing.T) {
	srv := newTestServer(t)

	rr := do(t, srv, uploadRequest(t, "\"unclosed\nDate,Amount\n1", "broken.csv"), nil)
	if rr.Code != 200 {
		t.Fatalf("upload status=%d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "Loaded 0 rows") {
		t.Fatalf("expected empty ledger notice: %s", rr.Body.String())
	}

	cookie := sessionCookie(t, rr)
	rr = do(t, srv, httptest.NewRequest(http.MethodGet, "/ui/summary", nil), cookie)
	if !strings.Contains(rr.Body.String(), "No data") {
		t.Fatalf("expected empty summary: %s", rr.Body.String())
	}
}

func TestUseSampleRestoresLedger(t *testing.T) {
	srv := newTestServer(t)

	csv := "Date,Category,Amount,Notes,Gender\n2025-04-01,Books,15.00,,\n"
	rr := do(t, srv, uploadRequest(t, csv, "expenses.csv"), nil)
	cookie := sessionCookie(t, rr)

	rr = do(t, srv, httptest.NewRequest(http.MethodPost, "/source/sample", nil), cookie)
	if rr.Code != 200 {
		t.Fatalf("sample status=%d", rr.Code)
	}

	rr = do(t, srv, httptest.NewRequest(http.MethodGet, "/ui/transactions", nil), cookie)
	if !strings.Contains(rr.Body.String(), "Groceries") {
		t.Fatalf("sample data missing after reset: %s", rr.Body.String())
	}
}

func TestExportStreamsFilteredCSV(t *testing.T) {
	srv := newTestServer(t)

	csv := "Date,Category,Amount,Notes,Gender\n2025-04-01,Books,15.00,novel,Male\n2025-04-02,Food,25.00,lunch,Female\n"
	rr := do(t, srv, uploadRequest(t, csv, "expenses.csv"), nil)
	cookie := sessionCookie(t, rr)

	rr = do(t, srv, httptest.NewRequest(http.MethodGet, "/export?category=Books", nil), cookie)
	if rr.Code != 200 {
		t.Fatalf("export status=%d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type=%q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, export.Filename) {
		t.Fatalf("content disposition=%q", cd)
	}

	body := rr.Body.String()
	if !strings.Contains(body, "2025-04-01,Books,15.00,novel,Male") {
		t.Fatalf("export missing filtered row: %s", body)
	}
	if strings.Contains(body, "Food") {
		t.Fatalf("export contains excluded row: %s", body)
	}

	// Unchecking every box submits only the blank sentinel; the export
	// then contains the header row and nothing else.
	rr = do(t, srv, httptest.NewRequest(http.MethodGet, "/export?category=", nil), cookie)
	if rr.Code != 200 {
		t.Fatalf("empty-selection export status=%d", rr.Code)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != "Date,Category,Amount,Notes,Gender" {
		t.Fatalf("empty-selection export = %q", got)
	}
}

func TestSummaryReflectsDateRange(t *testing.T) {
	srv := newTestServer(t)

	csv := "Date,Category,Amount,Notes,Gender\n" +
		"2025-01-10,Books,100.00,,\n" +
		"2025-02-10,Books,200.00,,\n"
	rr := do(t, srv, uploadRequest(t, csv, "expenses.csv"), nil)
	cookie := sessionCookie(t, rr)

	rr = do(t, srv, httptest.NewRequest(http.MethodGet, "/ui/summary?start=2025-01-01&end=2025-01-31", nil), cookie)
	body := rr.Body.String()
	if !strings.Contains(body, "₹100.00") {
		t.Fatalf("expected January total only: %s", body)
	}
}

func TestRateLimitOnWrites(t *testing.T) {
	srv := newTestServer(t)

	var last *httptest.ResponseRecorder
	for i := 0; i < 61; i++ {
		req := httptest.NewRequest(http.MethodPost, "/source/sample", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		last = do(t, srv, req, nil)
	}
	if last.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst, got %d", last.Code)
	}
}
