package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/fixture"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/adapters/repository"
	"github.com/AchilleasB/smart-campus-pay/campus-service/internal/core/domain"
)

func seedCmd() *cobra.Command {
	var (
		dataset string
		file    string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace a transaction dataset in PostgreSQL",
		Long: `Replace the rows of one transaction dataset.

Without --file the bundled fixture is loaded.

Examples:
  campusctl seed --dataset student
  campusctl seed --dataset vendor --file ./canteen.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ds := domain.Dataset(dataset)
			if !ds.Valid() {
				return fmt.Errorf("unknown dataset %q (want student or vendor)", dataset)
			}

			txs, err := readTransactions(ds, file)
			if err != nil {
				return err
			}

			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			repo := repository.NewSQLRepository(db)
			if err := repo.SeedTransactions(cmd.Context(), ds, txs); err != nil {
				return fmt.Errorf("seed %s: %w", ds, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d %s transactions\n", len(txs), ds)
			return nil
		},
	}

	cmd.Flags().StringVarP(&dataset, "dataset", "d", string(domain.DatasetStudent), "dataset to replace (student, vendor)")
	cmd.Flags().StringVarP(&file, "file", "f", "", "JSON file of transactions (defaults to the bundled fixture)")

	return cmd
}

func readTransactions(ds domain.Dataset, path string) ([]domain.Transaction, error) {
	if path == "" {
		return fixture.Load(ds)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	txs, err := fixture.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return txs, nil
}
