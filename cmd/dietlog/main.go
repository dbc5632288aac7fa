package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var Version = "dev"

var configPath string

func main() {
	// Missing .env is fine; environment overrides still apply.
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:     "dietlog",
		Short:   "dietlog - weight and meal logging with trend metrics",
		Version: Version,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(userCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
