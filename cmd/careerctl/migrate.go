package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		// NewRuntime migrates on connect
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		fmt.Fprintf(cmd.OutOrStdout(), "migrations applied (%s)\n", rt.Store.Driver())
		return nil
	},
}
