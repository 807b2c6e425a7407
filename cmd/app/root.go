package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"fulfillment/cmd"
	"fulfillment/internal/adapters/out/redis/orderlock"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "fulfillment",
	Short: "Sales order fulfillment and reconciliation service",
	Long: `Turns confirmed sales orders into shipments and invoices, keeps stock
reservations and round-off lines consistent, and serves the HTTP API.`,
	SilenceUsage: true,
	PersistentPreRun: func(*cobra.Command, []string) {
		if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
			log.Fatalf("Error loading .env file: %v", err)
		}
	},
}

func getConfigs() cmd.Config {
	return cmd.Config{
		HTTPPort:                envOr("HTTP_PORT", "8080"),
		DBHost:                  os.Getenv("DB_HOST"),
		DBPort:                  envOr("DB_PORT", "5432"),
		DBUser:                  os.Getenv("DB_USER"),
		DBPassword:              os.Getenv("DB_PASSWORD"),
		DBName:                  os.Getenv("DB_NAME"),
		DBSslMode:               envOr("DB_SSLMODE", "disable"),
		RedisAddr:               os.Getenv("REDIS_ADDR"),
		RedisPassword:           os.Getenv("REDIS_PASSWORD"),
		RedisDB:                 envInt("REDIS_DB", 0),
		OrderLockTTL:            envDuration("ORDER_LOCK_TTL", orderlock.DefaultTTL),
		PendingOrdersSchedule:   os.Getenv("PENDING_ORDERS_SCHEDULE"),
		PendingOrdersBatchSize:  envInt("PENDING_ORDERS_BATCH_SIZE", 0),
		PendingOrdersRetryDelay: envDuration("PENDING_ORDERS_RETRY_DELAY", jobs.DefaultInitialRetryDelay),
		PendingOrdersMaxRetry:   envDuration("PENDING_ORDERS_MAX_RETRY_DELAY", jobs.DefaultMaxRetryDelay),
		RoundDownAccount:        os.Getenv("ROUND_DOWN_ACCOUNT"),
		InvoiceRederivePolicy:   os.Getenv("INVOICE_REDERIVE_POLICY"),
		ShipmentGrouping:        os.Getenv("SHIPMENT_GROUPING"),
		LogLevel:                envOr("LOG_LEVEL", "info"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s must be an integer: %v", key, err)
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("%s must be a duration: %v", key, err)
	}
	return d
}

func newLogger(level string) *slog.Logger {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		l = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: l}))
}

func openDatabase(configs cmd.Config) *gorm.DB {
	db, err := gorm.Open(postgres.Open(configs.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return db
}

func openOrderLocker(ctx context.Context, configs cmd.Config) ports.OrderLocker {
	if configs.RedisAddr == "" {
		return nil
	}
	client, err := orderlock.Connect(ctx, configs.RedisAddr, configs.RedisPassword, configs.RedisDB)
	if err != nil {
		log.Fatalf("%v", err)
	}
	return orderlock.NewRedisOrderLocker(client, configs.OrderLockTTL)
}

// newApp wires the application for commands that need the full stack.
func newApp(ctx context.Context) (*cmd.CompositionRoot, cmd.Config, *slog.Logger) {
	configs := getConfigs()
	logger := newLogger(configs.LogLevel)

	app, err := cmd.NewCompositionRoot(configs, openDatabase(configs), openOrderLocker(ctx, configs), logger)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	return app, configs, logger
}
