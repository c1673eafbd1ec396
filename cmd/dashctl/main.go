package main

import (
	"fmt"
	"os"

	"github.com/dayboard/dayboard/cmd/dashctl/commands"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "dashctl",
		Short: "Admin tool for the Dayboard engine",
		Long:  "CLI tool for inspecting and maintaining the persisted dashboard state",
	}

	rootCmd.AddCommand(commands.NewStatsCmd())
	rootCmd.AddCommand(commands.NewTasksCmd())
	rootCmd.AddCommand(commands.NewResetCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
