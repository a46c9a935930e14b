package store

import (
	"context"
	"path/filepath"
	"testing"

	"sharewallet/internal/domain"
	"sharewallet/internal/ledger"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates a migrated SQLite database in a temp directory
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.db")
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Transaction{}, &domain.Split{}, &domain.Category{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestGorm_RoundTrip(t *testing.T) {
	ctx := context.Background()
	g := NewGorm(openTestDB(t))

	memo := "weekly"
	tx := ledger.Transaction{CategoryID: 3, TotalAmount: 800, UsedDate: ledger.NewDate(2025, 10, 15), Name: "Market", Memo: &memo}
	require.NoError(t, g.InsertTransaction(ctx, &tx))
	assert.NotZero(t, tx.ID)
	assert.False(t, tx.CreatedAt.IsZero())
	require.NoError(t, g.InsertSplit(ctx, tx.ID, ledger.Split{UserID: 1, Amount: 500}))
	require.NoError(t, g.InsertSplit(ctx, tx.ID, ledger.Split{UserID: 2, Amount: 300}))

	got, err := g.GetTransaction(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, tx.ID, got.ID)
	assert.Equal(t, "Market", got.Name)
	assert.Equal(t, "weekly", *got.Memo)
	assert.Equal(t, ledger.NewDate(2025, 10, 15), got.UsedDate)

	splits, err := g.ListSplits(ctx, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, []ledger.Split{{UserID: 1, Amount: 500}, {UserID: 2, Amount: 300}}, splits)

	_, err = g.GetTransaction(ctx, tx.ID+100)
	assert.ErrorIs(t, err, ledger.ErrNotFound)
}

func TestGorm_QueryTransactions(t *testing.T) {
	ctx := context.Background()
	g := NewGorm(openTestDB(t))
	days := []ledger.Date{ledger.NewDate(2025, 1, 31), ledger.NewDate(2025, 1, 1), ledger.NewDate(2025, 2, 1)}
	for i, d := range days {
		tx := ledger.Transaction{CategoryID: int64(i%2 + 1), TotalAmount: 10, UsedDate: d, Name: "t"}
		require.NoError(t, g.InsertTransaction(ctx, &tx))
	}

	from, to := ledger.NewDate(2025, 1, 1), ledger.NewDate(2025, 1, 31)
	got, err := g.QueryTransactions(ctx, ledger.StoreQuery{From: &from, To: &to})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ledger.NewDate(2025, 1, 1), got[0].UsedDate, "ordered by used date")

	cat := int64(2)
	got, err = g.QueryTransactions(ctx, ledger.StoreQuery{CategoryID: &cat})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, ledger.NewDate(2025, 1, 1), got[0].UsedDate)
}

func TestGorm_AtomicallyRollsBack(t *testing.T) {
	ctx := context.Background()
	g := NewGorm(openTestDB(t))
	l := ledger.New(g, nil)

	// The unique index on (transaction_id, user_id) rejects the second split
	// inside the unit, so the header must not survive.
	err := g.Atomically(ctx, func(s ledger.Store) error {
		tx := ledger.Transaction{CategoryID: 1, TotalAmount: 2, UsedDate: ledger.NewDate(2025, 1, 1), Name: "t"}
		if err := s.InsertTransaction(ctx, &tx); err != nil {
			return err
		}
		if err := s.InsertSplit(ctx, tx.ID, ledger.Split{UserID: 1, Amount: 1}); err != nil {
			return err
		}
		return s.InsertSplit(ctx, tx.ID, ledger.Split{UserID: 1, Amount: 1})
	})
	require.Error(t, err)

	all, err := l.List(ctx, ledger.Filter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGorm_LedgerCreate(t *testing.T) {
	ctx := context.Background()
	l := ledger.New(NewGorm(openTestDB(t)), nil)

	created, err := l.Create(ctx, ledger.CreateRequest{
		CategoryID:  1,
		TotalAmount: 800,
		UsedDate:    ledger.NewDate(2025, 10, 15),
		Name:        "Market",
		Splits:      []ledger.Split{{UserID: 1, Amount: 500}, {UserID: 2, Amount: 300}},
	})
	require.NoError(t, err)

	got, err := l.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Splits, got.Splits)
}

func TestCategoryCatalog(t *testing.T) {
	ctx := context.Background()
	catalog := NewCategoryCatalog(openTestDB(t))

	require.NoError(t, catalog.Upsert(ctx, map[int64]string{1: "Groceries", 2: "Rent"}))
	require.NoError(t, catalog.Upsert(ctx, map[int64]string{2: "Housing"}))

	name, err := catalog.CategoryName(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", name)

	name, err = catalog.CategoryName(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Housing", name)

	name, err = catalog.CategoryName(ctx, 9)
	require.NoError(t, err)
	assert.Equal(t, "Category 9", name)
}
