package cli

import (
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	var companyID string
	var req timesheet.PayrollReportRequest

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the payroll report as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Timesheets.GeneratePayrollReportForCompany(cmd.Context(), companyID, req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "Company ID")
	cmd.Flags().StringVar(&req.StartDate, "from", "", "First day, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.EndDate, "to", "", "Last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.LocationID, "location", "", "Restrict to one location ID")
	cmd.Flags().StringVar(&req.Granularity, "granularity", "period", "period, day, week or record")
	_ = cmd.MarkFlagRequired("company")
	return cmd
}
