package events

import (
	"encoding/json" // JSON encoding
	"time"          // Event timestamps

	"sharewallet/internal/ledger" // Ledger types
)

// RoutingTransactionCreated is the routing key of TransactionCreated events
const RoutingTransactionCreated = "transaction.created"

// TransactionCreated is published after a transaction and its splits are stored
type TransactionCreated struct {
	ID          int64          `json:"id"`           // Transaction id
	CategoryID  int64          `json:"category_id"`  // Category reference
	TotalAmount int64          `json:"total_amount"` // Total amount
	UsedDate    ledger.Date    `json:"used_date"`    // Day the money was spent
	Splits      []ledger.Split `json:"splits"`       // Participant shares
	Timestamp   time.Time      `json:"timestamp"`    // When the event was built
}

// NewTransactionCreated builds the event for a freshly created transaction
func NewTransactionCreated(d *ledger.Detail) *TransactionCreated {
	return &TransactionCreated{
		ID:          d.ID,
		CategoryID:  d.CategoryID,
		TotalAmount: d.TotalAmount,
		UsedDate:    d.UsedDate,
		Splits:      d.Splits,
		Timestamp:   time.Now().UTC(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *TransactionCreated) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}
