// Package main provides the entry point for the promokit CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "promokit",
	Short: "Promo kit generator",
	Long:  "Promokit turns a creative brief into a promotional asset kit (titles, description, tags, thumbnail concepts, script scenes) steered by a weighted scoring distribution.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
