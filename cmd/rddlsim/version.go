package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd() *cobra.Command {
	var listScenarios bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("rddlsim %s\n", bold(Version))
			if Commit != "unknown" {
				fmt.Printf("commit: %s\n", Commit)
			}
			if BuildTime != "unknown" {
				fmt.Printf("built:  %s\n", BuildTime)
			}
			if listScenarios {
				fmt.Println()
				fmt.Println(cyan("Scenarios:"))
				for _, name := range sortedNames() {
					fmt.Printf("  %s\n", name)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&listScenarios, "scenarios", false, "also list available scenario names")
	return cmd
}
