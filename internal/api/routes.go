package api

import (
	"net/http" // HTTP status codes
	"time"     // Cache TTL

	"sharewallet/internal/events" // Ledger events
	"sharewallet/internal/ledger" // Ledger core

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics endpoint
	"github.com/redis/go-redis/v9"                            // Redis client
)

// Dependencies are the collaborators the handlers are built from
type Dependencies struct {
	Ledger    *ledger.Ledger   // Ledger core
	Publisher events.Publisher // Event publisher, nil disables events
	Redis     *redis.Client    // Stats cache, nil disables caching
	StatsTTL  time.Duration    // Lifetime of cached stats responses
}

// RegisterRoutes mounts every endpoint on r
func RegisterRoutes(r *gin.Engine, deps Dependencies) {
	pub := deps.Publisher
	if pub == nil {
		pub = events.NopPublisher{} // Events disabled
	}

	r.GET("/health", HealthHandler)                  // Liveness endpoint
	r.GET("/metrics", gin.WrapH(promhttp.Handler())) // Prometheus endpoint

	// Transaction routes
	tx := r.Group("/transactions")
	tx.POST("", CreateTransactionHandler(deps.Ledger, pub, deps.Redis)) // Create transaction endpoint
	tx.GET("", ListTransactionsHandler(deps.Ledger))                    // List transactions endpoint
	tx.GET("/:id", GetTransactionHandler(deps.Ledger))                  // Transaction detail endpoint

	// Stats routes
	stats := r.Group("/stats")
	stats.GET("/summary", SummaryHandler(deps.Ledger, deps.Redis, deps.StatsTTL))                     // Summary endpoint
	stats.GET("/users", UserTotalsHandler(deps.Ledger, deps.Redis, deps.StatsTTL))                    // User totals endpoint
	stats.GET("/users/:id/categories", UserCategoriesHandler(deps.Ledger, deps.Redis, deps.StatsTTL)) // User categories endpoint
}

// HealthHandler reports that the process is serving
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
