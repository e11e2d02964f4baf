package main

import (
	"fmt"
	"time"

	"github.com/sahilchouksey/career-compass-api/services/cron"
	"github.com/spf13/cobra"
)

var maintainCmd = &cobra.Command{
	Use:   "maintain",
	Short: "Run the scheduled maintenance jobs once",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		manager := cron.NewCronManager(rt.Store.DB(), rt.Deps.Assessments, rt.Deps.CareerFit,
			cron.Options{AbandonAfter: time.Duration(rt.Env.ATTEMPT_ABANDON_AFTER_HOURS) * time.Hour}, rt.Log)

		abandoned, msg, err := manager.AbandonStaleAttempts(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d (%s)\n", cron.JobAbandonStaleAttempts, abandoned, msg)

		cleaned, msg, err := manager.CleanupExpiredData(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d (%s)\n", cron.JobCleanupExpiredData, cleaned, msg)
		return nil
	},
}
