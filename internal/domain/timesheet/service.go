package timesheet

import "context"

// TimesheetService is the company-scoped application surface. The company is
// taken from the access token claims on ctx.
type TimesheetService interface {
	GeneratePayrollReport(ctx context.Context, req PayrollReportRequest) (PayrollReportResponse, error)
	ExplainUnpaidAbsence(ctx context.Context, req UnpaidAbsenceRequest) (UnpaidAbsenceResponse, error)
	RecomputeDelays(ctx context.Context, req RecomputeDelaysRequest) (RepairSummary, error)
	GetDelayRounding(ctx context.Context) (DelayRoundingResponse, error)
	UpdateDelayRounding(ctx context.Context, req UpdateDelayRoundingRequest) (DelayRoundingResponse, error)
}

// CompanyOperations run for an explicit company, for callers without a user
// token (cron jobs, the CLI).
type CompanyOperations interface {
	GeneratePayrollReportForCompany(ctx context.Context, companyID string, req PayrollReportRequest) (PayrollReportResponse, error)
	ExplainUnpaidAbsenceForCompany(ctx context.Context, companyID string, req UnpaidAbsenceRequest) (UnpaidAbsenceResponse, error)
	RepairCompanyDelays(ctx context.Context, companyID string, req RecomputeDelaysRequest) (RepairSummary, error)
	// RepairAllCompanies repairs every company that owns schedule entries.
	RepairAllCompanies(ctx context.Context) ([]RepairSummary, error)
}
