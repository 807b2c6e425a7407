package main

import (
	"fmt"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var processPending bool

var processCmd = &cobra.Command{
	Use:   "process [order-id...]",
	Short: "Run the order processor for the given orders or for the pending ones",
	RunE: func(c *cobra.Command, args []string) error {
		if processPending == (len(args) > 0) {
			return fmt.Errorf("pass order ids or --pending")
		}

		app, _, _ := newApp(c.Context())

		if processPending {
			processed, err := app.CreatePendingOrdersJob().RunOnce(c.Context())
			if err != nil {
				return err
			}
			log.Infof("Processed %d pending orders", processed)
			return nil
		}

		ids, err := parseUUIDs(args)
		if err != nil {
			return err
		}
		processor := app.ProcessOrderCommandHandler()
		for _, id := range ids {
			cmd, err := commands.NewProcessOrderCommand(id)
			if err != nil {
				return err
			}
			if err = processor.Handle(c.Context(), cmd); err != nil {
				return fmt.Errorf("order %s: %w", id, err)
			}
			log.Infof("Order %s processed", id)
		}
		return nil
	},
}

var (
	roundOffEditable bool
	roundOffLimit    int
)

var roundOffCmd = &cobra.Command{
	Use:   "round-off [order-id...]",
	Short: "Rebuild the round-off line of orders in one transaction",
	Long: `Rebuild the round-off line of the given orders, or with --editable of every
Draft and Quotation order up to --limit. Either all orders are
reconciled or none is.`,
	RunE: func(c *cobra.Command, args []string) error {
		if roundOffEditable == (len(args) > 0) {
			return fmt.Errorf("pass order ids or --editable")
		}

		app, _, _ := newApp(c.Context())

		var ids []kernel.UUID
		var err error
		if roundOffEditable {
			ids, err = app.FindOrderIDs(c.Context(),
				[]order.Status{order.Draft, order.Quotation}, roundOffLimit)
		} else {
			ids, err = parseUUIDs(args)
		}
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			log.Info("No order to reconcile")
			return nil
		}

		cmd, err := commands.NewReconcileRoundOffCommand(ids)
		if err != nil {
			return err
		}
		handler := app.CreateReconcileRoundOffCommandHandler()
		if err = handler.Handle(c.Context(), cmd); err != nil {
			return err
		}
		log.Infof("Round-off reconciled for %d orders", len(ids))
		return nil
	},
}

func init() {
	processCmd.Flags().BoolVar(&processPending, "pending", false, "process one batch of pending orders")
	roundOffCmd.Flags().BoolVar(&roundOffEditable, "editable", false, "reconcile every order that still allows it")
	roundOffCmd.Flags().IntVar(&roundOffLimit, "limit", 500, "maximum number of orders with --editable")
	rootCmd.AddCommand(processCmd, roundOffCmd)
}

func parseUUIDs(args []string) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, 0, len(args))
	for _, arg := range args {
		id, err := kernel.UUIDFromString(arg)
		if err != nil {
			return nil, fmt.Errorf("%q: %w", arg, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
