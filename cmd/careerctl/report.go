package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sahilchouksey/career-compass-api/model"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Render the PDF career report of a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetUint("user")
		out, _ := cmd.Flags().GetString("out")
		publish, _ := cmd.Flags().GetBool("publish")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		var user model.User
		if err := rt.Store.DB().WithContext(cmd.Context()).First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d not found", userID)
			}
			return err
		}

		if publish {
			published, err := rt.Deps.Reports.Publish(cmd.Context(), &user, 0)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "uploaded %s (%d pages)\n%s\n", published.Key, published.Pages, published.URL)
			return nil
		}

		doc, err := rt.Deps.Reports.Build(cmd.Context(), &user)
		if err != nil {
			return err
		}
		if out == "" {
			out = doc.FileName
		}
		if err := os.WriteFile(out, doc.Content, 0o644); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d pages)\n", out, doc.Pages)
		return nil
	},
}

func init() {
	reportCmd.Flags().Uint("user", 0, "User ID to report on")
	reportCmd.Flags().String("out", "", "Output file (default career-fit-<user>-<date>.pdf)")
	reportCmd.Flags().Bool("publish", false, "Upload to report storage and print a download link")
	_ = reportCmd.MarkFlagRequired("user")
}
