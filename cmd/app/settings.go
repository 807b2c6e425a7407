package main

import (
	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var settingScope string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage stored settings",
}

var configSetCmd = &cobra.Command{
	Use:   "set key value",
	Short: "Store a setting; an empty value removes it",
	Example: `  fulfillment config set round_down_account 7000
  fulfillment config set round_down_account 7010 --scope EUR`,
	Args: cobra.ExactArgs(2),
	RunE: func(c *cobra.Command, args []string) error {
		app, _, _ := newApp(c.Context())
		if err := app.ConfigurationProvider().Set(c.Context(), args[0], settingScope, args[1]); err != nil {
			return err
		}
		log.Infof("Setting %s saved", args[0])
		return nil
	},
}

func init() {
	configSetCmd.Flags().StringVar(&settingScope, "scope", "", "currency the setting applies to; global when empty")
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}
