package cmd_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"fulfillment/cmd"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompositionRoot(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("should wire every HTTP use case", func(t *testing.T) {
		app, err := cmd.NewCompositionRoot(cmd.Config{ShipmentGrouping: cmd.GroupingPerLine}, nil, nil, logger)
		require.NoError(t, err)

		handlers := app.CreateHTTPHandlers()

		assert.NotNil(t, handlers.CreateOrder)
		assert.NotNil(t, handlers.ProcessOrder)
		assert.NotNil(t, handlers.GetRecentOrders)
		assert.NotNil(t, handlers.GetShipmentGroups)
		assert.Same(t, app.ProcessOrderCommandHandler(), handlers.ProcessOrder)
	})

	t.Run("should wire the pending orders job", func(t *testing.T) {
		app, err := cmd.NewCompositionRoot(cmd.Config{PendingOrdersRetryDelay: time.Minute}, nil, nil, logger)
		require.NoError(t, err)

		assert.NotNil(t, app.CreatePendingOrdersJob())
	})

	t.Run("should reject an unknown rederive policy", func(t *testing.T) {
		_, err := cmd.NewCompositionRoot(cmd.Config{InvoiceRederivePolicy: "sometimes"}, nil, nil, logger)

		require.Error(t, err)
	})

	t.Run("should reject an unknown shipment grouping", func(t *testing.T) {
		_, err := cmd.NewCompositionRoot(cmd.Config{ShipmentGrouping: "per_moon"}, nil, nil, logger)

		require.Error(t, err)
	})
}

func TestConfig_DSN(t *testing.T) {
	c := cmd.Config{
		DBHost: "db", DBPort: "5432", DBUser: "app", DBPassword: "secret",
		DBName: "fulfillment", DBSslMode: "disable",
	}

	assert.Equal(t, "host=db port=5432 user=app password=secret dbname=fulfillment sslmode=disable", c.DSN())
}
