package config

import (
	"fmt"     // DSN formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For parsing category lists
	"time"    // For cache TTLs

	"github.com/joho/godotenv" // For loading .env files
)

// Supported DB_DRIVER values
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Supported CATEGORY_SOURCE values
const (
	CategoriesStub = "stub"
	CategoriesDB   = "db"
)

// Config holds the application configuration
type Config struct {
	AppPort        string           // Application port
	DBDriver       string           // mysql, postgres, sqlite or memory
	DBUser         string           // Database user
	DBPassword     string           // Database password
	DBHost         string           // Database host
	DBPort         string           // Database port
	DBName         string           // Database name
	SQLitePath     string           // SQLite database file
	RedisAddr      string           // Redis server address, empty disables caching
	RedisPass      string           // Redis password
	RedisDB        int              // Redis database number
	StatsCacheTTL  time.Duration    // Lifetime of cached stats responses
	AMQPURL        string           // RabbitMQ URL, empty disables events
	AMQPExchange   string           // Exchange for ledger events
	CategorySource string           // stub or db
	SeedCategories map[int64]string // Categories upserted by the migrate command
	LogLevel       string           // Logrus level name
	IsProd         bool             // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:        getEnv("APP_PORT", "8080"),                         // Application port
		DBDriver:       strings.ToLower(getEnv("DB_DRIVER", DriverSQLite)), // Database driver
		DBUser:         os.Getenv("DB_USER"),                               // Database user
		DBPassword:     os.Getenv("DB_PASSWORD"),                           // Database password
		DBHost:         getEnv("DB_HOST", "127.0.0.1"),                     // Database host
		DBPort:         os.Getenv("DB_PORT"),                               // Database port
		DBName:         getEnv("DB_NAME", "sharewallet"),                   // Database name
		SQLitePath:     getEnv("SQLITE_PATH", "./data/sharewallet.db"),     // SQLite database file
		RedisAddr:      os.Getenv("REDIS_ADDR"),                            // Redis server address
		RedisPass:      os.Getenv("REDIS_PASS"),                            // Redis password
		RedisDB:        redisDB,                                            // Redis database number
		StatsCacheTTL:  getDuration("STATS_CACHE_TTL", 60*time.Second),     // Stats cache lifetime
		AMQPURL:        os.Getenv("AMQP_URL"),                              // RabbitMQ URL
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "sharewallet.events"),      // Event exchange
		CategorySource: getEnv("CATEGORY_SOURCE", CategoriesStub),          // Category names source
		SeedCategories: parseCategories(os.Getenv("SEED_CATEGORIES")),      // Categories to seed
		LogLevel:       getEnv("LOG_LEVEL", "info"),                        // Log level
		IsProd:         os.Getenv("IS_PROD") == "true",                     // Is production environment
	}
}

// MySQLDSN builds the MySQL Data Source Name
func (c *Config) MySQLDSN() string {
	port := c.DBPort
	if port == "" {
		port = "3306" // MySQL default
	}
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + port + ")/" + c.DBName + "?parseTime=true&loc=UTC"
}

// PostgresDSN builds the PostgreSQL Data Source Name
func (c *Config) PostgresDSN() string {
	port := c.DBPort
	if port == "" {
		port = "5432" // PostgreSQL default
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, port)
}

// getEnv returns the value of key or fallback when unset
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getDuration parses key as a Go duration, falling back on absence or error
func getDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

// parseCategories reads "1=Groceries,2=Rent"; malformed entries are skipped
func parseCategories(raw string) map[int64]string {
	out := make(map[int64]string)
	for _, entry := range strings.Split(raw, ",") {
		id, name, ok := strings.Cut(strings.TrimSpace(entry), "=")
		if !ok {
			continue // Not an id=name pair
		}
		n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		name = strings.TrimSpace(name)
		if err != nil || n <= 0 || name == "" {
			continue // Invalid id or empty name
		}
		out[n] = name
	}
	return out
}
