package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var runFlags overrideFlags
var runRunID string

var runCmd = &cobra.Command{
	Use:   "run <phase>",
	Short: "Start a phase for a run (phase1, phase2, or phase3)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		phase, err := parsePhase(args[0])
		if err != nil {
			return err
		}
		runID, err := uuid.Parse(runRunID)
		if err != nil {
			return fmt.Errorf("--run-id: %w", err)
		}
		overrides, err := runFlags.build()
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		taskID, err := a.orch.Start(cmd.Context(), runID, phase, overrides)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "queued %s for run %s (task %s)\n", phase, runID, taskID)
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runRunID, "run-id", "", "run to operate on (required)")
	runCmd.MarkFlagRequired("run-id")
	registerOverrideFlags(runCmd, &runFlags)
}
