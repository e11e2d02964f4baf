package main

import (
	"context"
	"os"

	"github.com/sahilchouksey/career-compass-api/app"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "careerctl",
	Short:         "Career Compass maintenance tool",
	Long:          "careerctl manages the Career Compass database and produces career-fit analyses and reports for single users.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("sqlite", "", "Use the SQLite database at this path instead of DB_DRIVER settings")

	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(scoreCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(maintainCmd)
}

// openRuntime loads configuration, applying --sqlite, and connects every service
func openRuntime(cmd *cobra.Command) (*app.Runtime, error) {
	if p, _ := cmd.Flags().GetString("sqlite"); p != "" {
		_ = os.Setenv("DB_DRIVER", "sqlite")
		_ = os.Setenv("SQLITE_PATH", p)
	}

	env, log, err := app.LoadConfig()
	if err != nil {
		return nil, err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return app.NewRuntime(ctx, env, log)
}
