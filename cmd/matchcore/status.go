package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var statusRunID string

var statusCmd = &cobra.Command{
	Use:   "status <phase>",
	Short: "Print the current status of a phase",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		phase, err := parsePhase(args[0])
		if err != nil {
			return err
		}
		runID, err := uuid.Parse(statusRunID)
		if err != nil {
			return fmt.Errorf("--run-id: %w", err)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		status, err := a.orch.Status(cmd.Context(), runID, phase)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %s (progress %.0f%%)\n", phase, status.State, status.Progress*100)
		if status.Error != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  error: %s: %s\n", status.Error.Kind, status.Error.Error())
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().StringVar(&statusRunID, "run-id", "", "run to inspect (required)")
	statusCmd.MarkFlagRequired("run-id")
}
