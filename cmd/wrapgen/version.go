package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		v := buildVersion(version, commit, date, builtBy, treeState)
		fmt.Fprintln(cmd.OutOrStdout(), v.String())
	},
}
