/*
Copyright © 2025 TheMachine <592858548@qq.com>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"poi2geo/internal/version"
)

// aboutCmd represents the about command
var aboutCmd = &cobra.Command{
	Use:   "about",
	Short: "Display information about",
	Long:  "Display build information about the POI2GEO tool",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.GetAbout())
	},
}

func init() {
	rootCmd.AddCommand(aboutCmd)
}
