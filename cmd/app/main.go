package main

import (
	"github.com/labstack/gommon/log"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("fulfillment: %v", err)
	}
}
