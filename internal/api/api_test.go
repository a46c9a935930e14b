package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"sharewallet/internal/events"
	"sharewallet/internal/ledger"
	"sharewallet/internal/middleware"
	"sharewallet/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingPublisher keeps every published event
type recordingPublisher struct {
	mu   sync.Mutex
	msgs []*events.TransactionCreated
}

func (p *recordingPublisher) PublishTransactionCreated(_ context.Context, msg *events.TransactionCreated) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.msgs = append(p.msgs, msg)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func setupRouter(t *testing.T) (*gin.Engine, *recordingPublisher) {
	return setupRouterWithCache(t, nil)
}

// setupRouterWithCache wires the stats cache to rdb; nil disables it
func setupRouterWithCache(t *testing.T, rdb *redis.Client) (*gin.Engine, *recordingPublisher) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	pub := &recordingPublisher{}
	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	RegisterRoutes(r, Dependencies{
		Ledger:    ledger.New(store.NewMemory(), nil),
		Publisher: pub,
		Redis:     rdb,
		StatsTTL:  time.Minute,
	})
	return r, pub
}

func do(t *testing.T, r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) APIError {
	t.Helper()
	var e APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &e))
	return e
}

func createBody(total int64, splits ...map[string]int64) gin.H {
	return gin.H{
		"category_id":  1,
		"total_amount": total,
		"used_date":    "2025-10-15",
		"name":         "Supermarket",
		"memo":         "weekly shop",
		"splits":       splits,
	}
}

func split(user, amount int64) map[string]int64 {
	return map[string]int64{"user_id": user, "amount": amount}
}

func TestCreateTransaction_Success(t *testing.T) {
	r, pub := setupRouter(t)

	w := do(t, r, http.MethodPost, "/transactions", createBody(800, split(1, 500), split(2, 300)))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var got ledger.Detail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.NotZero(t, got.ID)
	assert.Equal(t, int64(800), got.TotalAmount)
	assert.Equal(t, ledger.NewDate(2025, 10, 15), got.UsedDate)
	assert.Equal(t, ledger.Category{ID: 1, Name: "Category 1"}, got.Category)
	assert.Equal(t, []ledger.Split{{UserID: 1, Amount: 500}, {UserID: 2, Amount: 300}}, got.Splits)
	require.NotNil(t, got.Memo)
	assert.Equal(t, "weekly shop", *got.Memo)

	require.Len(t, pub.msgs, 1)
	assert.Equal(t, got.ID, pub.msgs[0].ID)
}

func TestCreateTransaction_Mismatch(t *testing.T) {
	r, pub := setupRouter(t)

	w := do(t, r, http.MethodPost, "/transactions", createBody(900, split(1, 500), split(2, 300)))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	e := decodeError(t, w)
	assert.Equal(t, CodeAmountMismatch, e.Error)
	assert.NotEmpty(t, e.Message)
	assert.Empty(t, pub.msgs)

	list := do(t, r, http.MethodGet, "/transactions", nil)
	assert.JSONEq(t, "[]", list.Body.String())
}

func TestCreateTransaction_DuplicateParticipant(t *testing.T) {
	r, _ := setupRouter(t)

	for _, total := range []int64{800, 900, 0} {
		w := do(t, r, http.MethodPost, "/transactions", createBody(total, split(1, 500), split(1, 300)))

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, CodeDuplicateParticipant, decodeError(t, w).Error)
	}
}

func TestCreateTransaction_InvalidBody(t *testing.T) {
	r, _ := setupRouter(t)

	cases := map[string]gin.H{
		"missing name":    {"category_id": 1, "total_amount": 10, "used_date": "2025-01-01", "splits": []any{split(1, 10)}},
		"zero total":      {"category_id": 1, "total_amount": 0, "used_date": "2025-01-01", "name": "x", "splits": []any{split(1, 10)}},
		"bad date":        {"category_id": 1, "total_amount": 10, "used_date": "01/01/2025", "name": "x", "splits": []any{split(1, 10)}},
		"missing date":    {"category_id": 1, "total_amount": 10, "name": "x", "splits": []any{split(1, 10)}},
		"no splits":       {"category_id": 1, "total_amount": 10, "used_date": "2025-01-01", "name": "x", "splits": []any{}},
		"negative amount": {"category_id": 1, "total_amount": 10, "used_date": "2025-01-01", "name": "x", "splits": []any{split(1, -10)}},
		"missing user_id": {"category_id": 1, "total_amount": 10, "used_date": "2025-01-01", "name": "x", "splits": []any{gin.H{"amount": 10}}},
		"huge total":      {"category_id": 1, "total_amount": ledger.MaxAmount + 1, "used_date": "2025-01-01", "name": "x", "splits": []any{split(1, ledger.MaxAmount + 1)}},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			w := do(t, r, http.MethodPost, "/transactions", body)

			assert.Equal(t, http.StatusUnprocessableEntity, w.Code, w.Body.String())
			assert.Equal(t, CodeValidation, decodeError(t, w).Error)
		})
	}
}

func TestGetTransaction(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(t, r, http.MethodGet, "/transactions/42", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, CodeNotFound, decodeError(t, w).Error)

	w = do(t, r, http.MethodGet, "/transactions/abc", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	created := do(t, r, http.MethodPost, "/transactions", createBody(800, split(2, 300), split(1, 500)))
	require.Equal(t, http.StatusCreated, created.Code)
	var c ledger.Detail
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &c))

	w = do(t, r, http.MethodGet, "/transactions/"+strconv.FormatInt(c.ID, 10), nil)
	require.Equal(t, http.StatusOK, w.Code)
	var got ledger.Detail
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, c.Splits, got.Splits)
	assert.Equal(t, c.Category, got.Category)
}

func TestListTransactions_Filters(t *testing.T) {
	r, _ := setupRouter(t)
	bodies := []gin.H{
		{"category_id": 1, "total_amount": 100, "used_date": "2025-01-10", "name": "Market", "splits": []any{split(1, 60), split(2, 40)}},
		{"category_id": 2, "total_amount": 50, "used_date": "2025-01-05", "name": "Bistro", "memo": "Dinner with FRIENDS", "splits": []any{split(1, 50)}},
		{"category_id": 1, "total_amount": 70, "used_date": "2025-02-01", "name": "Market", "splits": []any{split(3, 70)}},
	}
	for _, b := range bodies {
		require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/transactions", b).Code)
	}

	cases := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"?from=2025-01-05&to=2025-01-10", 2},
		{"?category_id=1", 2},
		{"?user_id=2", 1},
		{"?keyword=friends", 1},
		{"?keyword=MARKET&from=2025-01-15", 1},
		{"?user_id=9", 0},
	}
	for _, tc := range cases {
		w := do(t, r, http.MethodGet, "/transactions"+tc.query, nil)
		require.Equal(t, http.StatusOK, w.Code, tc.query)
		var got []ledger.Detail
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Len(t, got, tc.want, tc.query)
	}

	w := do(t, r, http.MethodGet, "/transactions?category_id=x", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func seedStats(t *testing.T, r http.Handler) {
	t.Helper()
	bodies := []gin.H{
		{"category_id": 1, "total_amount": 100, "used_date": "2025-01-01", "name": "a", "splits": []any{split(1, 60), split(2, 40)}},
		{"category_id": 2, "total_amount": 50, "used_date": "2025-01-31", "name": "b", "splits": []any{split(1, 50)}},
		{"category_id": 2, "total_amount": 999, "used_date": "2025-02-01", "name": "outside", "splits": []any{split(2, 999)}},
	}
	for _, b := range bodies {
		require.Equal(t, http.StatusCreated, do(t, r, http.MethodPost, "/transactions", b).Code)
	}
}

func TestSummary(t *testing.T) {
	r, _ := setupRouter(t)
	seedStats(t, r)

	w := do(t, r, http.MethodGet, "/stats/summary?from=2025-01-01&to=2025-01-31", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got SummaryResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, ledger.NewDate(2025, 1, 1), got.FromDate)
	assert.Equal(t, ledger.NewDate(2025, 1, 31), got.ToDate)
	assert.Equal(t, int64(150), got.TotalAmount)
	assert.Equal(t, []ledger.UserTotal{{UserID: 1, TotalAmount: 110}, {UserID: 2, TotalAmount: 40}}, got.ByUser)
	assert.Equal(t, []ledger.CategoryTotal{
		{CategoryID: 1, CategoryName: "Category 1", TotalAmount: 100},
		{CategoryID: 2, CategoryName: "Category 2", TotalAmount: 50},
	}, got.ByCategory)

	again := do(t, r, http.MethodGet, "/stats/summary?from=2025-01-01&to=2025-01-31", nil)
	assert.Equal(t, w.Body.String(), again.Body.String())
}

func TestUserTotals(t *testing.T) {
	r, _ := setupRouter(t)
	seedStats(t, r)

	w := do(t, r, http.MethodGet, "/stats/users?from=2025-01-01&to=2025-02-28", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got UserTotalsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []ledger.UserTotal{{UserID: 2, TotalAmount: 1039}, {UserID: 1, TotalAmount: 110}}, got.Users)
}

func TestUserCategories(t *testing.T) {
	r, _ := setupRouter(t)
	seedStats(t, r)

	w := do(t, r, http.MethodGet, "/stats/users/1/categories?from=2025-01-01&to=2025-01-31", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var got UserCategoryBreakdownResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, int64(1), got.UserID)
	assert.Equal(t, []ledger.CategoryTotal{
		{CategoryID: 1, CategoryName: "Category 1", TotalAmount: 60},
		{CategoryID: 2, CategoryName: "Category 2", TotalAmount: 50},
	}, got.Categories)
}

func TestStats_WindowValidation(t *testing.T) {
	r, _ := setupRouter(t)

	for _, path := range []string{
		"/stats/summary",
		"/stats/summary?from=2025-01-01",
		"/stats/users?from=2025-02-01&to=2025-01-01",
		"/stats/users?from=yesterday&to=2025-01-01",
		"/stats/users/x/categories?from=2025-01-01&to=2025-01-31",
	} {
		w := do(t, r, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code, path)
		assert.Equal(t, CodeValidation, decodeError(t, w).Error, path)
	}
}

func TestHealthAndRequestID(t *testing.T) {
	r, _ := setupRouter(t)

	w := do(t, r, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}
