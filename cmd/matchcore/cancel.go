package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var cancelRunID string

var cancelCmd = &cobra.Command{
	Use:   "cancel <phase>",
	Short: "Cooperatively cancel a running phase",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		phase, err := parsePhase(args[0])
		if err != nil {
			return err
		}
		runID, err := uuid.Parse(cancelRunID)
		if err != nil {
			return fmt.Errorf("--run-id: %w", err)
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		a.orch.Cancel(runID, phase)
		fmt.Fprintf(cmd.OutOrStdout(), "cancel requested for %s on run %s\n", phase, runID)
		return nil
	},
}

func init() {
	cancelCmd.Flags().StringVar(&cancelRunID, "run-id", "", "run to cancel (required)")
	cancelCmd.MarkFlagRequired("run-id")
}
