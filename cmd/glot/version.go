package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"glot/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the glot version",
	RunE:  runVersion,
}

func runVersion(cmd *cobra.Command, args []string) error {
	fmt.Printf("glot %s\n", version.Version)
	if version.GitCommit != "" {
		fmt.Printf("commit: %s\n", version.GitCommit)
	}
	if version.BuildDate != "" {
		fmt.Printf("built:  %s\n", version.BuildDate)
	}
	return nil
}
