package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sahilchouksey/career-compass-api/services"
	"github.com/spf13/cobra"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Print the career ranking of a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetUint("user")
		top, _ := cmd.Flags().GetInt("top")
		asCSV, _ := cmd.Flags().GetBool("csv")

		rt, err := openRuntime(cmd)
		if err != nil {
			return err
		}
		defer rt.Close()

		analysis, err := rt.Deps.CareerFit.Analyze(cmd.Context(), userID, services.AnalyzeOptions{TopN: top})
		var incomplete *services.IncompleteAssessmentsError
		if errors.As(err, &incomplete) {
			return fmt.Errorf("user %d has not completed: %v", userID, incomplete.Missing)
		}
		if err != nil {
			return err
		}

		if asCSV {
			return services.ExportCSV(cmd.OutOrStdout(), analysis)
		}
		return printRanking(cmd.OutOrStdout(), analysis)
	},
}

func init() {
	scoreCmd.Flags().Uint("user", 0, "User ID to score")
	scoreCmd.Flags().Int("top", 0, "Number of careers to show (default FIT_TOP_N)")
	scoreCmd.Flags().Bool("csv", false, "Write the full CSV export instead of a table")
	_ = scoreCmd.MarkFlagRequired("user")
}

func printRanking(w io.Writer, analysis *services.CareerFitReport) error {
	fmt.Fprintf(w, "Holland code: %s   careers compared: %d\n\n", analysis.HollandCode, analysis.TotalCareers)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tCAREER\tCODE\tINTERESTS\tSKILLS\tPERSONALITY\tCOMPOSITE\tFIT")
	for _, m := range analysis.Matches {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%.1f\t%.1f\t%.1f\t%.1f\t%s\n",
			m.Rank, m.Title, m.HollandCode, m.InterestFit, m.SkillsFit, m.PersonalityFit, m.Composite, m.Label)
	}
	return tw.Flush()
}
