package cli

import (
	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/spf13/cobra"
)

func newUnpaidCmd(app *App) *cobra.Command {
	var companyID string
	var req timesheet.UnpaidAbsenceRequest

	cmd := &cobra.Command{
		Use:   "unpaid",
		Short: "Explain an employee's unpaid-absence minutes",
		RunE: func(cmd *cobra.Command, args []string) error {
			resp, err := app.Timesheets.ExplainUnpaidAbsenceForCompany(cmd.Context(), companyID, req)
			if err != nil {
				return err
			}
			return writeJSON(cmd.OutOrStdout(), resp)
		},
	}

	cmd.Flags().StringVar(&companyID, "company", "", "Company ID")
	cmd.Flags().StringVar(&req.Employee, "employee", "", "Employee name")
	cmd.Flags().StringVar(&req.StartDate, "from", "", "First day, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.EndDate, "to", "", "Last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&req.LocationID, "location", "", "Restrict to one location ID")
	_ = cmd.MarkFlagRequired("company")
	_ = cmd.MarkFlagRequired("employee")
	return cmd
}
