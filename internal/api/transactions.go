package api

import (
	"errors"   // Error kind matching
	"fmt"      // Error wrapping
	"net/http" // HTTP status codes

	"sharewallet/internal/events"     // Ledger events
	"sharewallet/internal/ledger"     // Ledger core
	"sharewallet/internal/middleware" // Request ids
	"sharewallet/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// CreateTransactionHandler records a transaction with its splits
func CreateTransactionHandler(l *ledger.Ledger, pub events.Publisher, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context() // Request scoped context
		var req ledger.CreateRequest
		// Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// A repeated participant is reported as such whatever else is wrong
			if dup := ledger.CheckParticipants(req.Splits); errors.Is(dup, ledger.ErrDuplicateParticipant) {
				err = dup
			} else {
				err = fmt.Errorf("%w: %v", ledger.ErrInvalidRequest, err)
			}
			_, code := classify(err)
			transactionsRejected.WithLabelValues(code).Inc()
			respondError(c, err)
			return
		}
		detail, err := l.Create(ctx, req) // Validate, persist and assemble
		if err != nil {
			_, code := classify(err)
			if code != CodeInternal {
				transactionsRejected.WithLabelValues(code).Inc()
				// Log the rejection with context
				logrus.WithFields(logrus.Fields{
					"request_id":   middleware.GetRequestID(c), // Request id
					"code":         code,                       // Rejection code
					"total_amount": req.TotalAmount,            // Stated total
					"splits":       len(req.Splits),            // Number of splits
					"error":        err.Error(),                // Error message
				}).Warn("Transaction rejected")
			}
			respondError(c, err)
			return
		}
		transactionsCreated.Inc()

		// Invalidate cached stats
		if _, err := utils.BumpStatsGeneration(ctx, rdb); err != nil {
			logrus.WithFields(logrus.Fields{
				"transaction_id": detail.ID,   // Transaction id
				"error":          err.Error(), // Error message
			}).Warn("Failed to invalidate stats cache")
		}
		// Announce the new transaction
		if err := pub.PublishTransactionCreated(ctx, events.NewTransactionCreated(detail)); err != nil {
			logrus.WithFields(logrus.Fields{
				"transaction_id": detail.ID,   // Transaction id
				"error":          err.Error(), // Error message
			}).Warn("Failed to publish transaction event")
		}

		// Log successful creation
		logrus.WithFields(logrus.Fields{
			"request_id":     middleware.GetRequestID(c), // Request id
			"transaction_id": detail.ID,                  // Transaction id
			"category_id":    detail.CategoryID,          // Category reference
			"total_amount":   detail.TotalAmount,         // Total amount
			"used_date":      detail.UsedDate.String(),   // Day the money was spent
			"splits":         len(detail.Splits),         // Number of splits
		}).Info("Transaction created")
		c.JSON(http.StatusCreated, detail) // Return the assembled view
	}
}

// ListTransactionsHandler returns every transaction matching the query predicates
func ListTransactionsHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		f, err := listFilter(c) // from, to, category_id, user_id, keyword
		if err != nil {
			respondError(c, err)
			return
		}
		details, err := l.List(c.Request.Context(), f)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, details) // Return matching transactions
	}
}

// GetTransactionHandler returns one transaction by id
func GetTransactionHandler(l *ledger.Ledger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := pathInt(c, "id") // Transaction id
		if err != nil {
			respondError(c, err)
			return
		}
		detail, err := l.Get(c.Request.Context(), id)
		if err != nil {
			respondError(c, err) // 404 when missing
			return
		}
		c.JSON(http.StatusOK, detail) // Return the transaction
	}
}
