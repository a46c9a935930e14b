// Package store implements ledger.Store over GORM and in process memory.
package store

import (
	"context" // Context for store calls
	"fmt"     // Error wrapping
	"sync"    // Guards concurrent requests
	"time"    // Timestamps

	"sharewallet/internal/ledger" // Ledger types
)

// Memory is an in-process ledger.Store. Rows live until the process exits.
type Memory struct {
	mu     sync.RWMutex
	nextID int64
	txs    []ledger.Transaction
	index  map[int64]int
	splits map[int64][]ledger.Split
	now    func() time.Time
}

// NewMemory creates an empty Memory store
func NewMemory() *Memory {
	return &Memory{
		index:  make(map[int64]int),
		splits: make(map[int64][]ledger.Split),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// InsertTransaction implements ledger.Store
func (m *Memory) InsertTransaction(ctx context.Context, tx *ledger.Transaction) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	now := m.now()
	tx.ID = m.nextID
	tx.CreatedAt = now
	tx.UpdatedAt = now
	m.index[tx.ID] = len(m.txs)
	m.txs = append(m.txs, *tx)
	return nil
}

// InsertSplit implements ledger.Store
func (m *Memory) InsertSplit(ctx context.Context, transactionID int64, split ledger.Split) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.index[transactionID]; !ok {
		return fmt.Errorf("split for transaction %d: %w", transactionID, ledger.ErrNotFound)
	}
	for _, s := range m.splits[transactionID] {
		if s.UserID == split.UserID {
			return fmt.Errorf("split for user %d already stored on transaction %d", split.UserID, transactionID)
		}
	}
	m.splits[transactionID] = append(m.splits[transactionID], split)
	return nil
}

// GetTransaction implements ledger.Store
func (m *Memory) GetTransaction(ctx context.Context, id int64) (*ledger.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[id]
	if !ok {
		return nil, ledger.ErrNotFound
	}
	tx := m.txs[i]
	return &tx, nil
}

// ListSplits implements ledger.Store
func (m *Memory) ListSplits(ctx context.Context, transactionID int64) ([]ledger.Split, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.splits[transactionID]
	out := make([]ledger.Split, len(stored))
	copy(out, stored)
	return out, nil
}

// QueryTransactions implements ledger.Store
func (m *Memory) QueryTransactions(ctx context.Context, q ledger.StoreQuery) ([]ledger.Transaction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	match := ledger.Filter{From: q.From, To: q.To, CategoryID: q.CategoryID}
	out := make([]ledger.Transaction, 0, len(m.txs))
	for _, tx := range m.txs {
		if match.MatchesHeader(tx) {
			out = append(out, tx)
		}
	}
	return out, nil
}
