package main

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/config"
)

var Version = "dev"

var dbURL string

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	config.LoadEnv()

	rootCmd := &cobra.Command{
		Use:           "campusctl",
		Short:         "Operator tasks for the campus payment service",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", os.Getenv("DB_CONNECTION_STRING"), "PostgreSQL connection string")

	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(seedCmd())
	rootCmd.AddCommand(adminCmd())

	return rootCmd
}

func openDB() (*sql.DB, error) {
	if dbURL == "" {
		return nil, errors.New("no database configured: set DB_CONNECTION_STRING or pass --db")
	}
	return sql.Open("postgres", dbURL)
}
