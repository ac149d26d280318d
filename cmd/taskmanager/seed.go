package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create the default categories",
	Long:  `Create the Work, Personal and Urgent categories unless categories already exist.`,
	RunE:  seed,
}

func seed(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd.Context())
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	categories, err := a.service.SeedDefaultCategories(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, c := range categories {
		fmt.Fprintf(out, "%d\t%s\t%s\n", c.ID, c.Name, c.Color)
	}
	return nil
}
