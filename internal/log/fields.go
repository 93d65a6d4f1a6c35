package log

// Common field names for structured logging.
const (
	FieldComponent   = "component"
	FieldRequestID   = "request_id"
	FieldClientIP    = "client_ip"
	FieldMethod      = "method"
	FieldPath        = "path"
	FieldStatusCode  = "status_code"
	FieldDuration    = "duration_ms"
	FieldUserAgent   = "user_agent"
	FieldError       = "error"
	FieldSessionID   = "session_id"
	FieldSource      = "source"
	FieldRecordCount = "record_count"
	FieldSeq         = "seq"
	FieldCategory    = "category"
	FieldAmountCents = "amount_cents"
	FieldFilename    = "filename"
	FieldBackend     = "backend"
)

// Standard component names.
const (
	ComponentApp      = "app"
	ComponentHTTP     = "http"
	ComponentLedger   = "ledger"
	ComponentSession  = "session"
	ComponentStore    = "store"
	ComponentIngest   = "ingest"
	ComponentEvents   = "events"
	ComponentBackend  = "backend"
	ComponentTemplate = "template"
)
