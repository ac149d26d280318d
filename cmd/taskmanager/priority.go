package main

import (
	"fmt"
	"taskmanager/internal/priority"

	"github.com/spf13/cobra"
)

var priorityCmd = &cobra.Command{
	Use:     "priority <due-date>",
	Short:   "Show the priority a due date would get today",
	Example: "  taskmanager priority 2025-03-01",
	Args:    cobra.ExactArgs(1),
	RunE:    showPriority,
}

func showPriority(cmd *cobra.Command, args []string) error {
	_, _, clk, err := loadConfig()
	if err != nil {
		return err
	}

	p, err := priority.NewClassifier(clk).CalculatePriority(args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s (color %s, weight %d)\n", p, priority.Color(p), priority.Weight(p))
	return nil
}
