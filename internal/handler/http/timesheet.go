package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/timesheet"
	"github.com/cmlabs-hris/timesheet-backend-go/internal/handler/http/response"
)

type TimesheetHandler interface {
	// Payroll Report
	GetPayrollReport(w http.ResponseWriter, r *http.Request)

	// Unpaid Absence Drill-down
	GetUnpaidAbsence(w http.ResponseWriter, r *http.Request)

	// Delay Repair
	RecomputeDelays(w http.ResponseWriter, r *http.Request)

	// Rounding Settings
	GetDelayRounding(w http.ResponseWriter, r *http.Request)
	UpdateDelayRounding(w http.ResponseWriter, r *http.Request)
}

type timesheetHandlerImpl struct {
	timesheetService timesheet.TimesheetService
}

func NewTimesheetHandler(timesheetService timesheet.TimesheetService) TimesheetHandler {
	return &timesheetHandlerImpl{
		timesheetService: timesheetService,
	}
}

// GetPayrollReport handles GET /timesheets/payroll-report
func (h *timesheetHandlerImpl) GetPayrollReport(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := timesheet.PayrollReportRequest{
		StartDate:   query.Get("start_date"),
		EndDate:     query.Get("end_date"),
		LocationID:  query.Get("location_id"),
		Granularity: query.Get("granularity"),
	}

	result, err := h.timesheetService.GeneratePayrollReport(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// GetUnpaidAbsence handles GET /timesheets/unpaid-absence
func (h *timesheetHandlerImpl) GetUnpaidAbsence(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := timesheet.UnpaidAbsenceRequest{
		Employee:   query.Get("employee"),
		StartDate:  query.Get("start_date"),
		EndDate:    query.Get("end_date"),
		LocationID: query.Get("location_id"),
	}

	result, err := h.timesheetService.ExplainUnpaidAbsence(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// RecomputeDelays handles POST /timesheets/delays/recompute
func (h *timesheetHandlerImpl) RecomputeDelays(w http.ResponseWriter, r *http.Request) {
	// An empty body, sized or chunked, means a full non-dry run.
	var req timesheet.RecomputeDelaysRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.RecomputeDelays(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Delays recomputed"
	if result.DryRun {
		message = "Dry run completed, nothing written"
	}
	response.SuccessWithMessage(w, message, result)
}

// GetDelayRounding handles GET /timesheets/settings/delay-rounding
func (h *timesheetHandlerImpl) GetDelayRounding(w http.ResponseWriter, r *http.Request) {
	result, err := h.timesheetService.GetDelayRounding(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateDelayRounding handles PUT /timesheets/settings/delay-rounding
func (h *timesheetHandlerImpl) UpdateDelayRounding(w http.ResponseWriter, r *http.Request) {
	var req timesheet.UpdateDelayRoundingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.timesheetService.UpdateDelayRounding(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Delay rounding updated", result)
}
