package main

import (
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/gommon/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var stockProductName string

var stockCmd = &cobra.Command{
	Use:   "stock",
	Short: "Inspect and adjust stock levels",
}

var stockSetCmd = &cobra.Command{
	Use:   "set product-id warehouse on-hand",
	Short: "Record the on-hand quantity of a product in a warehouse",
	Args:  cobra.ExactArgs(3),
	RunE: func(c *cobra.Command, args []string) error {
		productID, err := kernel.UUIDFromString(args[0])
		if err != nil {
			return err
		}
		onHand, err := decimal.NewFromString(args[2])
		if err != nil {
			return fmt.Errorf("on-hand: %w", err)
		}
		if onHand.IsNegative() {
			return fmt.Errorf("on-hand must not be negative")
		}

		app, _, _ := newApp(c.Context())
		if err = app.StockService().SetOnHand(c.Context(), productID, stockProductName, args[1], onHand); err != nil {
			return err
		}
		log.Infof("Stock of %s in %s set to %s", productID, args[1], onHand)
		return nil
	},
}

var stockShowCmd = &cobra.Command{
	Use:   "show product-id warehouse",
	Short: "Print the on-hand and reserved quantities of a product",
	Args:  cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		productID, err := kernel.UUIDFromString(args[0])
		if err != nil {
			return err
		}

		app, _, _ := newApp(c.Context())
		level, err := app.StockService().Level(c.Context(), productID, args[1])
		if err != nil {
			return err
		}
		fmt.Fprintf(c.OutOrStdout(), "on_hand=%s reserved=%s\n", level.OnHand, level.Reserved)
		return nil
	},
}

func init() {
	stockSetCmd.Flags().StringVar(&stockProductName, "name", "", "product name reported in stock shortages")
	stockCmd.AddCommand(stockSetCmd, stockShowCmd)
	rootCmd.AddCommand(stockCmd)
}
