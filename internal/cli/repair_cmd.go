package cli

import (
	"errors"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/spf13/cobra"
)

func newRepairDelaysCmd(app *App) *cobra.Command {
	var companyID string
	var all bool
	var req timesheet.RecomputeDelaysRequest

	cmd := &cobra.Command{
		Use:   "repair-delays",
		Short: "Recompute stored delay minutes and write back the ones that changed",
		RunE: func(cmd *cobra.Command, args []string) error {
			if all == (companyID != "") {
				return errors.New("exactly one of --company or --all is required")
			}

			if all {
				if req.DryRun || req.StartDate != "" || req.EndDate != "" {
					return errors.New("--all cannot be combined with --from, --to or --dry-run")
				}
				summaries, err := app.Timesheets.RepairAllCompanies(cmd.Context())
				if err != nil {
					return err
				}
				return writeJSON(cmd.OutOrStdout(), summaries)
			}

			summary, err := app.Timesheets.RepairCompanyDelays(cmd.Context(), companyID, req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), summary)
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "Company ID")
	cmd.Flags().BoolVar(&all, "all", false, "Repair every company with schedule entries")
	cmd.Flags().StringVar(&req.StartDate, "from", "", "First day, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.EndDate, "to", "", "Last day, YYYY-MM-DD")
	cmd.Flags().BoolVar(&req.DryRun, "dry-run", false, "Count changes without writing them")
	return cmd
}
