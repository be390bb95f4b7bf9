package main

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var rerunFlags overrideFlags
var rerunRunID string

var rerunCmd = &cobra.Command{
	Use:   "rerun <phase>",
	Short: "Re-run a phase that already completed, invalidating downstream output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		phase, err := parsePhase(args[0])
		if err != nil {
			return err
		}
		runID, err := uuid.Parse(rerunRunID)
		if err != nil {
			return fmt.Errorf("--run-id: %w", err)
		}
		overrides, err := rerunFlags.build()
		if err != nil {
			return err
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		taskID, err := a.orch.Rerun(cmd.Context(), runID, phase, overrides)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "re-queued %s for run %s (task %s); downstream phases reset to idle\n", phase, runID, taskID)
		return nil
	},
}

func init() {
	rerunCmd.Flags().StringVar(&rerunRunID, "run-id", "", "run to operate on (required)")
	rerunCmd.MarkFlagRequired("run-id")
	registerOverrideFlags(rerunCmd, &rerunFlags)
}
