package cmd

import (
	"fmt"
	"time"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// RedisAddr enables the cross-instance order lock when set.
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	OrderLockTTL  time.Duration

	PendingOrdersSchedule   string
	PendingOrdersBatchSize  int
	PendingOrdersRetryDelay time.Duration
	PendingOrdersMaxRetry   time.Duration

	// RoundDownAccount is used when no round_down_account setting is stored.
	RoundDownAccount      string
	InvoiceRederivePolicy string
	ShipmentGrouping      string

	LogLevel string
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
