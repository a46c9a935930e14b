package ledger

import "context"

// StoreQuery is the part of a Filter a store can evaluate on headers alone.
// Nil fields impose no constraint; date bounds are inclusive.
type StoreQuery struct {
	From       *Date
	To         *Date
	CategoryID *int64
}

// Store is the durable record storage the ledger reads and appends to.
type Store interface {
	// InsertTransaction persists a new header and fills in its ID,
	// CreatedAt and UpdatedAt.
	InsertTransaction(ctx context.Context, tx *Transaction) error

	// InsertSplit persists one split of an existing transaction.
	InsertSplit(ctx context.Context, transactionID int64, split Split) error

	// GetTransaction returns the header with the given id, or ErrNotFound.
	GetTransaction(ctx context.Context, id int64) (*Transaction, error)

	// ListSplits returns the splits of a transaction in insertion order.
	ListSplits(ctx context.Context, transactionID int64) ([]Split, error)

	// QueryTransactions returns the headers matching q.
	QueryTransactions(ctx context.Context, q StoreQuery) ([]Transaction, error)
}

// Atomic is implemented by stores that can run several writes as one unit.
// fn receives a Store bound to the unit; returning an error rolls it back.
type Atomic interface {
	Atomically(ctx context.Context, fn func(Store) error) error
}
