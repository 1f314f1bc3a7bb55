package cli

import (
	"encoding/json"
	"io"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/spf13/cobra"
)

// App holds the services CLI commands call.
type App struct {
	Timesheets timesheet.CompanyOperations
}

// NewRootCmd creates the top-level "timesheetctl" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "timesheetctl",
		Short:         "Payroll reports and delay maintenance for roster data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newReportCmd(app),
		newUnpaidCmd(app),
		newRepairDelaysCmd(app),
	)

	return root
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
