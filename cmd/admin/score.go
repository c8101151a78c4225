package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cvmaker-backend/internal/ats"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score an extracted resume JSON file and print the ATS result",
	RunE:  runScore,
}

var (
	scoreFile     string
	scoreJobTitle string
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreFile, "file", "f", "", "Path to the resume JSON file")
	scoreCmd.Flags().StringVar(&scoreJobTitle, "job-title", "", "Target job title")
	_ = scoreCmd.MarkFlagRequired("file")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	data, err := os.ReadFile(scoreFile)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}
	resume, err := ats.DecodeResume(data)
	if err != nil {
		return fmt.Errorf("decode resume: %w", err)
	}
	out, err := json.MarshalIndent(ats.Calculate(resume, scoreJobTitle), "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
