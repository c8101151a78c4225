package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cvmaker-backend/internal/bootstrap"
	"cvmaker-backend/internal/shared/config"
)

var seedQuestionsCmd = &cobra.Command{
	Use:   "seed-questions",
	Short: "Upsert the built-in interview question sets",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg := config.Load()
		cfg.SeedQuestions = false

		app, err := bootstrap.Build(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer app.Close()
		if app.DB == nil {
			return errors.New("seed-questions needs a reachable DATABASE_URL")
		}

		n, err := app.Interview.Seed(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d question sets\n", n)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedQuestionsCmd)
}
