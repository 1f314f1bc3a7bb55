package timesheet

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/pkg/validator"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type fakeScheduleRepo struct {
	mu        sync.Mutex
	entries   []timesheet.RawScheduleEntry
	updates   map[string]int
	failWrite map[string]error
	listErr   error
}

func newFakeScheduleRepo(entries ...timesheet.RawScheduleEntry) *fakeScheduleRepo {
	return &fakeScheduleRepo{
		entries:   entries,
		updates:   make(map[string]int),
		failWrite: make(map[string]error),
	}
}

func (f *fakeScheduleRepo) List(ctx context.Context, companyID string, dateRange *timesheet.DateRange) ([]timesheet.RawScheduleEntry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []timesheet.RawScheduleEntry
	for _, e := range f.entries {
		if e.CompanyID != companyID {
			continue
		}
		if dateRange != nil && e.Date != nil {
			d, _ := time.Parse("2006-01-02", *e.Date)
			if d.Before(dateRange.Start) || d.After(dateRange.End) {
				continue
			}
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeScheduleRepo) UpdateDelayMinutes(ctx context.Context, companyID string, shape timesheet.SourceShape, entryID string, minutes int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.failWrite[entryID]; err != nil {
		return err
	}
	f.updates[entryID] = minutes
	return nil
}

func (f *fakeScheduleRepo) ListCompanyIDs(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var ids []string
	for _, e := range f.entries {
		if !seen[e.CompanyID] {
			seen[e.CompanyID] = true
			ids = append(ids, e.CompanyID)
		}
	}
	return ids, nil
}

type fakeLocationRepo struct {
	names map[string]string
}

func (f *fakeLocationRepo) GetNames(ctx context.Context, companyID string) (map[string]string, error) {
	return f.names, nil
}

type fakeRoundingRepo struct {
	settings map[string]timesheet.DelayRoundingSettings
}

func newFakeRoundingRepo() *fakeRoundingRepo {
	return &fakeRoundingRepo{settings: make(map[string]timesheet.DelayRoundingSettings)}
}

func (f *fakeRoundingRepo) Get(ctx context.Context, companyID string) (timesheet.DelayRoundingSettings, error) {
	s, ok := f.settings[companyID]
	if !ok {
		return timesheet.DelayRoundingSettings{}, timesheet.ErrSettingsNotFound
	}
	return s, nil
}

func (f *fakeRoundingRepo) Upsert(ctx context.Context, settings timesheet.DelayRoundingSettings) (timesheet.DelayRoundingSettings, error) {
	f.settings[settings.CompanyID] = settings
	return settings, nil
}

func strPtr(s string) *string { return &s }

func intPtr(i int) *int { return &i }

func roster(companyID, id, name, date, clockIn string, delay *int) timesheet.RawScheduleEntry {
	return timesheet.RawScheduleEntry{
		ID:           id,
		CompanyID:    companyID,
		Shape:        timesheet.ShapeRoster,
		EmployeeName: strPtr(name),
		LocationID:   "loc-1",
		Date:         strPtr(date),
		StartTime:    strPtr("09:00"),
		EndTime:      strPtr("17:00"),
		ActualStart:  strPtr(date + "T" + clockIn + ":00Z"),
		DelayMinutes: delay,
	}
}

func companyContext(t *testing.T, companyID string) context.Context {
	t.Helper()
	tokenAuth := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := tokenAuth.Encode(map[string]interface{}{
		"user_id":    "user-1",
		"company_id": companyID,
		"role":       "owner",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

func newTestService(repo *fakeScheduleRepo, rounding *fakeRoundingRepo) *TimesheetServiceImpl {
	svc := NewTimesheetService(
		repo,
		&fakeLocationRepo{names: map[string]string{"loc-1": "Milano Centro"}},
		rounding,
		Options{DefaultRounding: timesheet.DefaultDelayRounding(), Locale: language.Italian},
	).(*TimesheetServiceImpl)
	svc.now = func() time.Time { return time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC) }
	return svc
}

func TestGeneratePayrollReport(t *testing.T) {
	repo := newFakeScheduleRepo(
		roster("company-1", "r1", "Maria Rossi", "2025-03-03", "09:06", nil),
		roster("company-1", "r2", "Luca", "2025-03-04", "09:00", nil),
		roster("company-2", "r3", "Other", "2025-03-04", "09:00", nil),
	)
	svc := newTestService(repo, newFakeRoundingRepo())

	resp, err := svc.GeneratePayrollReport(companyContext(t, "company-1"), timesheet.PayrollReportRequest{})

	require.NoError(t, err)
	assert.Equal(t, timesheet.GranularityPeriod, resp.Granularity)
	assert.Equal(t, "2025-03-10T12:00:00Z", resp.GeneratedAt)
	assert.Equal(t, timesheet.DefaultDelayRounding(), resp.Rounding)
	require.Len(t, resp.Scopes, 1)

	report := resp.Scopes[0].Report
	require.Len(t, report.Employees, 2)
	assert.Equal(t, "Luca", report.Employees[0].EmployeeDisplayName)
	assert.Equal(t, "Maria Rossi", report.Employees[1].EmployeeDisplayName)
	assert.Equal(t, 465, report.Employees[1].CategoryBuckets[timesheet.CategoryNormalShift])
	assert.Equal(t, 15, report.Employees[1].CategoryBuckets[timesheet.CategoryUnpaidAbsence])
	assert.Equal(t, "Milano Centro", report.Employees[1].LocationNamesDisplay)
}

func TestGeneratePayrollReport_UsesCompanyRounding(t *testing.T) {
	repo := newFakeScheduleRepo(roster("company-1", "r1", "Maria", "2025-03-03", "09:06", nil))
	rounding := newFakeRoundingRepo()
	rounding.settings["company-1"] = timesheet.DelayRoundingSettings{
		CompanyID: "company-1",
		Rounding:  timesheet.DelayRounding{RoundToMinutes: 5, Direction: timesheet.RoundFloor},
	}
	svc := newTestService(repo, rounding)

	resp, err := svc.GeneratePayrollReport(companyContext(t, "company-1"), timesheet.PayrollReportRequest{Granularity: "day"})

	require.NoError(t, err)
	require.Len(t, resp.Scopes, 1)
	assert.Equal(t, "2025-03-03", resp.Scopes[0].Key)
	assert.Equal(t, 5, resp.Scopes[0].Report.Totals.TotalDelayMinutes)
}

func TestGeneratePayrollReport_MissingCompanyClaim(t *testing.T) {
	svc := newTestService(newFakeScheduleRepo(), newFakeRoundingRepo())

	_, err := svc.GeneratePayrollReport(context.Background(), timesheet.PayrollReportRequest{})

	assert.ErrorIs(t, err, timesheet.ErrCompanyIDMissing)
}

func TestGeneratePayrollReport_InvalidRequest(t *testing.T) {
	svc := newTestService(newFakeScheduleRepo(), newFakeRoundingRepo())

	_, err := svc.GeneratePayrollReport(companyContext(t, "company-1"), timesheet.PayrollReportRequest{
		StartDate:   "2025-03-10",
		EndDate:     "2025-03-01",
		Granularity: "month",
	})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	fields := validationErrs.ToMap()
	assert.Contains(t, fields, "granularity")
	assert.Contains(t, fields, "end_date")
}

func TestGeneratePayrollReport_RepositoryError(t *testing.T) {
	repo := newFakeScheduleRepo()
	repo.listErr = errors.New("connection refused")
	svc := newTestService(repo, newFakeRoundingRepo())

	_, err := svc.GeneratePayrollReport(companyContext(t, "company-1"), timesheet.PayrollReportRequest{})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
}

func TestExplainUnpaidAbsence(t *testing.T) {
	repo := newFakeScheduleRepo(
		roster("company-1", "r1", "Maria Rossi", "2025-03-03", "09:20", nil),
		roster("company-1", "r2", "Maria Rossi", "2025-03-05", "09:00", nil),
	)
	svc := newTestService(repo, newFakeRoundingRepo())

	resp, err := svc.ExplainUnpaidAbsence(companyContext(t, "company-1"), timesheet.UnpaidAbsenceRequest{Employee: "MARIA ROSSI"})

	require.NoError(t, err)
	assert.Equal(t, "maria rossi", resp.Detail.EmployeeKey)
	require.Len(t, resp.Detail.Entries, 1)
	assert.Equal(t, timesheet.ReasonLateArrival, resp.Detail.Entries[0].Reason)
	assert.Equal(t, 30, resp.Detail.TotalMinutes)
}

func TestExplainUnpaidAbsence_EmployeeRequired(t *testing.T) {
	svc := newTestService(newFakeScheduleRepo(), newFakeRoundingRepo())

	_, err := svc.ExplainUnpaidAbsence(companyContext(t, "company-1"), timesheet.UnpaidAbsenceRequest{Employee: "   "})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "employee")
}

func TestDelayRoundingSettings(t *testing.T) {
	rounding := newFakeRoundingRepo()
	svc := newTestService(newFakeScheduleRepo(), rounding)
	ctx := companyContext(t, "company-1")

	got, err := svc.GetDelayRounding(ctx)
	require.NoError(t, err)
	assert.True(t, got.IsDefault)
	assert.Equal(t, 15, got.RoundToMinutes)
	assert.Equal(t, "ceiling", got.Direction)

	updated, err := svc.UpdateDelayRounding(ctx, timesheet.UpdateDelayRoundingRequest{RoundToMinutes: 10, Direction: "floor"})
	require.NoError(t, err)
	assert.False(t, updated.IsDefault)
	assert.Equal(t, 10, updated.RoundToMinutes)
	require.NotNil(t, updated.UpdatedAt)

	got, err = svc.GetDelayRounding(ctx)
	require.NoError(t, err)
	assert.Equal(t, "company-1", got.CompanyID)
	assert.Equal(t, "floor", got.Direction)
}

func TestUpdateDelayRounding_Invalid(t *testing.T) {
	svc := newTestService(newFakeScheduleRepo(), newFakeRoundingRepo())

	_, err := svc.UpdateDelayRounding(companyContext(t, "company-1"), timesheet.UpdateDelayRoundingRequest{RoundToMinutes: 0, Direction: "nearest"})

	var validationErrs validator.ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Contains(t, validationErrs.ToMap(), "round_to_minutes")
	assert.Contains(t, validationErrs.ToMap(), "direction")
}
