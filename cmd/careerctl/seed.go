package main

import (
	"fmt"

	"github.com/sahilchouksey/career-compass-api/database"
	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed assessments, careers, courses and universities",
	Long: "Seed the reference data the career-fit analysis needs. Tables that already hold rows are skipped. " +
		"An admin user is created when ADMIN_EMAIL and ADMIN_PASSWORD are set.",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		if err := database.RunSeeds(rt.Store.DB(), rt.Log); err != nil {
			return fmt.Errorf("seeding failed: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "seeding completed")
		return nil
	},
}
