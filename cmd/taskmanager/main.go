package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "taskmanager",
	Short:         "Task manager with due-date priorities and statistics",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "TOML config file (default taskmanager.toml when present)")

	rootCmd.AddCommand(serveCmd, seedCmd, statsCmd, priorityCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fatal("%v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
