// Package ledger holds the shared-expense rules: how a transaction and its
// splits must relate, how stored transactions are filtered, and how a set of
// transactions is aggregated per user and per category.
package ledger

import (
	"context" // Context for store calls
	"fmt"     // Error wrapping
	"sort"    // Result ordering
)

// Ledger assembles and queries transactions over an injected Store
type Ledger struct {
	store      Store
	categories CategoryResolver
}

// New creates a Ledger. A nil resolver falls back to StubResolver.
func New(store Store, categories CategoryResolver) *Ledger {
	if categories == nil {
		categories = StubResolver{}
	}
	return &Ledger{store: store, categories: categories}
}

// Create validates req, persists the header and its splits, and returns the
// assembled view. Validation failures never reach the store. The returned
// splits are the request's own, not re-read from storage.
func (l *Ledger) Create(ctx context.Context, req CreateRequest) (*Detail, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if err := CheckParticipants(req.Splits); err != nil {
		return nil, err
	}
	if err := CheckTotal(req.TotalAmount, req.Splits); err != nil {
		return nil, err
	}

	tx := Transaction{
		CategoryID:  req.CategoryID,
		TotalAmount: req.TotalAmount,
		UsedDate:    req.UsedDate,
		Name:        req.Name,
		Memo:        req.Memo,
	}
	write := func(s Store) error {
		if err := s.InsertTransaction(ctx, &tx); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}
		for _, sp := range req.Splits {
			if err := s.InsertSplit(ctx, tx.ID, sp); err != nil {
				return fmt.Errorf("insert split for user %d: %w", sp.UserID, err)
			}
		}
		return nil
	}

	var err error
	if a, ok := l.store.(Atomic); ok {
		err = a.Atomically(ctx, write)
	} else {
		// Without a unit of work a failed split insert leaves the header behind.
		err = write(l.store)
	}
	if err != nil {
		return nil, err
	}

	category, err := resolveCategory(ctx, l.categories, tx.CategoryID)
	if err != nil {
		return nil, err
	}
	splits := make([]Split, len(req.Splits))
	copy(splits, req.Splits)
	return &Detail{Transaction: tx, Category: category, Splits: splits}, nil
}

// Get returns the full view of one transaction, or ErrNotFound
func (l *Ledger) Get(ctx context.Context, id int64) (*Detail, error) {
	tx, err := l.store.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}
	d, err := l.assemble(ctx, *tx, nil)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns the views of every stored transaction matching f, ordered by
// used date then id.
func (l *Ledger) List(ctx context.Context, f Filter) ([]Detail, error) {
	headers, err := l.store.QueryTransactions(ctx, f.StoreQuery())
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}

	names := make(map[int64]Category)
	out := make([]Detail, 0, len(headers))
	for _, h := range headers {
		if !f.MatchesHeader(h) {
			continue
		}
		d, err := l.assemble(ctx, h, names)
		if err != nil {
			return nil, err
		}
		if !f.MatchesSplits(d.Splits) {
			continue
		}
		out = append(out, d)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].UsedDate.Equal(out[j].UsedDate.Time) {
			return out[i].UsedDate.Before(out[j].UsedDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// Summary aggregates every transaction used within w
func (l *Ledger) Summary(ctx context.Context, w Window) (Summary, error) {
	details, err := l.window(ctx, w)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(details), nil
}

// UserTotals returns per-user totals within w, largest first
func (l *Ledger) UserTotals(ctx context.Context, w Window) ([]UserTotal, error) {
	details, err := l.window(ctx, w)
	if err != nil {
		return nil, err
	}
	return UserTotals(details), nil
}

// UserCategories returns userID's own spending within w per category
func (l *Ledger) UserCategories(ctx context.Context, w Window, userID int64) ([]CategoryTotal, error) {
	details, err := l.window(ctx, w)
	if err != nil {
		return nil, err
	}
	return UserCategoryBreakdown(details, userID), nil
}

// Validate checks that the window has both bounds in order
func (w Window) Validate() error {
	if w.From.IsZero() || w.To.IsZero() {
		return fmt.Errorf("%w: from and to are required", ErrInvalidWindow)
	}
	if w.From.After(w.To) {
		return fmt.Errorf("%w: from %s is after to %s", ErrInvalidWindow, w.From, w.To)
	}
	return nil
}

func (l *Ledger) window(ctx context.Context, w Window) ([]Detail, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	from, to := w.From, w.To
	return l.List(ctx, Filter{From: &from, To: &to})
}

// assemble reads the splits of h and derives its category. names memoizes
// category lookups across calls and may be nil.
func (l *Ledger) assemble(ctx context.Context, h Transaction, names map[int64]Category) (Detail, error) {
	splits, err := l.store.ListSplits(ctx, h.ID)
	if err != nil {
		return Detail{}, fmt.Errorf("list splits of transaction %d: %w", h.ID, err)
	}
	if splits == nil {
		splits = []Split{}
	}

	category, ok := names[h.CategoryID]
	if !ok {
		category, err = resolveCategory(ctx, l.categories, h.CategoryID)
		if err != nil {
			return Detail{}, err
		}
		if names != nil {
			names[h.CategoryID] = category
		}
	}
	return Detail{Transaction: h, Category: category, Splits: splits}, nil
}
