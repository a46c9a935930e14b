package api

import (
	"context"  // Context for cache operations
	"net/http" // HTTP status codes
	"strconv"  // Cache key formatting
	"time"     // Cache TTL

	"sharewallet/internal/ledger" // Ledger core
	"sharewallet/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// SummaryResponse is the whole-window breakdown
type SummaryResponse struct {
	FromDate    ledger.Date            `json:"from_date"`    // Window start
	ToDate      ledger.Date            `json:"to_date"`      // Window end
	TotalAmount int64                  `json:"total_amount"` // Sum of transaction totals
	ByUser      []ledger.UserTotal     `json:"by_user"`      // Split totals per user
	ByCategory  []ledger.CategoryTotal `json:"by_category"`  // Transaction totals per category
}

// UserTotalsResponse lists every user's total, largest first
type UserTotalsResponse struct {
	FromDate ledger.Date        `json:"from_date"` // Window start
	ToDate   ledger.Date        `json:"to_date"`   // Window end
	Users    []ledger.UserTotal `json:"users"`     // Split totals per user
}

// UserCategoryBreakdownResponse is one user's spending per category
type UserCategoryBreakdownResponse struct {
	UserID     int64                  `json:"user_id"`    // Target user
	FromDate   ledger.Date            `json:"from_date"`  // Window start
	ToDate     ledger.Date            `json:"to_date"`    // Window end
	Categories []ledger.CategoryTotal `json:"categories"` // User's split totals per category
}

// SummaryHandler returns the total, per-user and per-category breakdowns
func SummaryHandler(l *ledger.Ledger, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, err := requiredWindow(c) // from and to are mandatory
		if err != nil {
			respondError(c, err)
			return
		}
		cached(c, rdb, ttl, []string{"summary", w.From.String(), w.To.String()}, func(ctx context.Context) (any, error) {
			s, err := l.Summary(ctx, w)
			if err != nil {
				return nil, err
			}
			return SummaryResponse{
				FromDate:    w.From,        // Window start
				ToDate:      w.To,          // Window end
				TotalAmount: s.TotalAmount, // Grand total
				ByUser:      s.ByUser,      // Per user
				ByCategory:  s.ByCategory,  // Per category
			}, nil
		}, &SummaryResponse{})
	}
}

// UserTotalsHandler returns per-user totals sorted by amount descending
func UserTotalsHandler(l *ledger.Ledger, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		w, err := requiredWindow(c) // from and to are mandatory
		if err != nil {
			respondError(c, err)
			return
		}
		cached(c, rdb, ttl, []string{"users", w.From.String(), w.To.String()}, func(ctx context.Context) (any, error) {
			users, err := l.UserTotals(ctx, w)
			if err != nil {
				return nil, err
			}
			return UserTotalsResponse{FromDate: w.From, ToDate: w.To, Users: users}, nil
		}, &UserTotalsResponse{})
	}
}

// UserCategoriesHandler returns one user's per-category breakdown
func UserCategoriesHandler(l *ledger.Ledger, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := pathInt(c, "id") // Target user
		if err != nil {
			respondError(c, err)
			return
		}
		w, err := requiredWindow(c) // from and to are mandatory
		if err != nil {
			respondError(c, err)
			return
		}
		key := []string{"user", strconv.FormatInt(userID, 10), "categories", w.From.String(), w.To.String()}
		cached(c, rdb, ttl, key, func(ctx context.Context) (any, error) {
			categories, err := l.UserCategories(ctx, w, userID)
			if err != nil {
				return nil, err
			}
			return UserCategoryBreakdownResponse{
				UserID:     userID,     // Target user
				FromDate:   w.From,     // Window start
				ToDate:     w.To,       // Window end
				Categories: categories, // Per category
			}, nil
		}, &UserCategoryBreakdownResponse{})
	}
}

// cached serves a stats response from Redis when present, otherwise computes
// it with compute, caches it for ttl and serves it. dest receives cache hits.
func cached(c *gin.Context, rdb *redis.Client, ttl time.Duration, parts []string, compute func(context.Context) (any, error), dest any) {
	ctx := c.Request.Context() // Request scoped context
	key, err := utils.StatsKey(ctx, rdb, parts...)
	if err != nil {
		// Redis unavailable, serve without caching
		logrus.WithFields(logrus.Fields{"error": err.Error()}).Warn("Stats cache unavailable")
		key = ""
	}
	if key != "" && rdb != nil {
		// Try to get cached response
		found, err := utils.GetCache(ctx, rdb, key, dest)
		if err == nil && found {
			statsCacheLookups.WithLabelValues("hit").Inc()
			c.JSON(http.StatusOK, dest) // Return cached response
			return
		}
		statsCacheLookups.WithLabelValues("miss").Inc()
	}
	resp, err := compute(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	if key != "" {
		_ = utils.SetCache(ctx, rdb, key, resp, ttl) // Cache the response for ttl
	}
	c.JSON(http.StatusOK, resp) // Return computed response
}
