package store

import (
	"context" // Context for store calls
	"errors"  // Error matching

	"sharewallet/internal/domain" // Persistence models
	"sharewallet/internal/ledger" // Ledger types

	"gorm.io/gorm" // GORM ORM library
)

// Gorm is a ledger.Store backed by a GORM connection
type Gorm struct {
	db *gorm.DB
}

// NewGorm wraps an open GORM connection
func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

// InsertTransaction implements ledger.Store
func (g *Gorm) InsertTransaction(ctx context.Context, tx *ledger.Transaction) error {
	row := domain.Transaction{
		CategoryID:  tx.CategoryID,  // Category reference
		TotalAmount: tx.TotalAmount, // Total amount
		UsedDate:    tx.UsedDate.Time,
		Name:        tx.Name,
		Memo:        tx.Memo,
	}
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return err
	}
	tx.ID = int64(row.ID)        // Generated id
	tx.CreatedAt = row.CreatedAt // Set by GORM
	tx.UpdatedAt = row.UpdatedAt // Set by GORM
	return nil
}

// InsertSplit implements ledger.Store
func (g *Gorm) InsertSplit(ctx context.Context, transactionID int64, split ledger.Split) error {
	row := domain.Split{
		TransactionID: uint(transactionID), // Owning transaction
		UserID:        split.UserID,        // Participant
		Amount:        split.Amount,        // Share
	}
	return g.db.WithContext(ctx).Create(&row).Error
}

// GetTransaction implements ledger.Store
func (g *Gorm) GetTransaction(ctx context.Context, id int64) (*ledger.Transaction, error) {
	var row domain.Transaction
	if err := g.db.WithContext(ctx).First(&row, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ledger.ErrNotFound // No header with this id
		}
		return nil, err
	}
	tx := toLedger(row)
	return &tx, nil
}

// ListSplits implements ledger.Store
func (g *Gorm) ListSplits(ctx context.Context, transactionID int64) ([]ledger.Split, error) {
	var rows []domain.Split
	if err := g.db.WithContext(ctx).
		Where("transaction_id = ?", transactionID).
		Order("id asc").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ledger.Split, 0, len(rows))
	for _, r := range rows {
		out = append(out, ledger.Split{UserID: r.UserID, Amount: r.Amount})
	}
	return out, nil
}

// QueryTransactions implements ledger.Store
func (g *Gorm) QueryTransactions(ctx context.Context, q ledger.StoreQuery) ([]ledger.Transaction, error) {
	query := g.db.WithContext(ctx).Model(&domain.Transaction{})
	if q.From != nil {
		query = query.Where("used_date >= ?", q.From.Time) // Inclusive lower bound
	}
	if q.To != nil {
		query = query.Where("used_date <= ?", q.To.Time) // Inclusive upper bound
	}
	if q.CategoryID != nil {
		query = query.Where("category_id = ?", *q.CategoryID) // Exact category
	}
	var rows []domain.Transaction
	if err := query.Order("used_date asc").Order("id asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]ledger.Transaction, 0, len(rows))
	for _, r := range rows {
		out = append(out, toLedger(r))
	}
	return out, nil
}

// Atomically implements ledger.Atomic with a database transaction
func (g *Gorm) Atomically(ctx context.Context, fn func(ledger.Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Gorm{db: tx}) // Returning an error rolls back
	})
}

func toLedger(row domain.Transaction) ledger.Transaction {
	return ledger.Transaction{
		ID:          int64(row.ID),
		CategoryID:  row.CategoryID,
		TotalAmount: row.TotalAmount,
		UsedDate:    ledger.DateOf(row.UsedDate),
		Name:        row.Name,
		Memo:        row.Memo,
		CreatedAt:   row.CreatedAt,
		UpdatedAt:   row.UpdatedAt,
	}
}
