package events

import (
	"encoding/json"
	"time"
)

// TransactionAppended is published after a record lands in a session
// ledger. Consumers get enough to audit or mirror the append without a
// callback into the service.
type TransactionAppended struct {
	SessionID   string    `json:"session_id"`
	Seq         int64     `json:"seq"`
	Category    string    `json:"category"`
	AmountCents int64     `json:"amount_cents"`
	Timestamp   time.Time `json:"timestamp"`
}

// NewTransactionAppended builds the event with the current timestamp.
func NewTransactionAppended(sessionID string, seq int64, category string, amountCents int64) *TransactionAppended {
	return &TransactionAppended{
		SessionID:   sessionID,
		Seq:         seq,
		Category:    category,
		AmountCents: amountCents,
		Timestamp:   time.Now(),
	}
}

// ToJSON converts the event to JSON bytes.
func (m *TransactionAppended) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// TransactionAppendedFromJSON parses the event from JSON bytes.
func TransactionAppendedFromJSON(data []byte) (*TransactionAppended, error) {
	var msg TransactionAppended
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
