package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "matchcore",
	Short: "Run and inspect matchmaking pipeline phases",
}

func init() {
	rootCmd.AddCommand(runCmd, statusCmd, rerunCmd, cancelCmd)
}
