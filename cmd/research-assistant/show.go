// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/research-assistant/internal/research"
)

var showCmd = &cobra.Command{
	Use:   "show <report-file>",
	Short: "Print a report saved with ask --output",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := research.ReadReport(args[0])
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return research.WriteJSON(report, cmd.OutOrStdout())
		}
		research.WriteText(report, cmd.OutOrStdout())
		return nil
	},
}

func init() {
	showCmd.Flags().Bool("json", false, "print the report as JSON instead of text")
	rootCmd.AddCommand(showCmd)
}
