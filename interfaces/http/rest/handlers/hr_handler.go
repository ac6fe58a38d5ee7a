package handlers

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"logpulse/domain/hr"
	"logpulse/pkg/api"
)

// HRService is the application service behind the HR endpoints.
type HRService interface {
	CreateDepartment(ctx context.Context, name string) (*hr.Department, error)
	ListDepartments(ctx context.Context) ([]*hr.Department, error)
	CreateEmployee(ctx context.Context, name string, departmentID int, title string) (*hr.Employee, error)
	GetEmployee(ctx context.Context, id int) (*hr.Employee, error)
	ListEmployees(ctx context.Context) ([]*hr.Employee, error)
	CheckIn(ctx context.Context, employeeID int, status string) (*hr.AttendanceRecord, error)
	RunPayroll(ctx context.Context, month string) (*hr.PayrollRun, error)
	RequestLeave(ctx context.Context, employeeID int, leaveType string, days int, reason string) (*hr.LeaveRequest, error)
	DecideLeave(ctx context.Context, leaveID int, approved bool, approver string) (*hr.LeaveRequest, error)
	CreateReview(ctx context.Context, employeeID int, period string, score int, summary string) (*hr.PerformanceReview, error)
	DecideReview(ctx context.Context, reviewID int, finalRating, reviewer string) (*hr.PerformanceReview, error)
	TransferEmployee(ctx context.Context, employeeID, departmentID int, reason string) (*hr.Employee, error)
	PromoteEmployee(ctx context.Context, employeeID int, newTitle, effectiveDate, reason string) (*hr.Employee, error)
}

// HRHandler handles HR-related HTTP requests
type HRHandler struct {
	service HRService
	logger  *zap.Logger
}

// NewHRHandler creates a new HR handler
func NewHRHandler(service HRService, logger *zap.Logger) *HRHandler {
	return &HRHandler{
		service: service,
		logger:  logger,
	}
}

// CreateDepartment handles POST /departments
func (h *HRHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var req api.CreateDepartmentRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	dept, err := h.service.CreateDepartment(r.Context(), *req.Name)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, dept)
}

// ListDepartments handles GET /departments
func (h *HRHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListDepartments(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, api.ListResponse{Items: items})
}

// CreateEmployee handles POST /employees
func (h *HRHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req api.CreateEmployeeRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	emp, err := h.service.CreateEmployee(r.Context(), *req.Name, *req.DepartmentID, *req.Title)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, emp)
}

// ListEmployees handles GET /employees
func (h *HRHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListEmployees(r.Context())
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, api.ListResponse{Items: items})
}

// GetEmployee handles GET /employees/{employeeID}
func (h *HRHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "employeeID", "employee")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	emp, err := h.service.GetEmployee(r.Context(), id)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, emp)
}

// CheckIn handles POST /employees/{employeeID}/attendance
func (h *HRHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "employeeID", "employee")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	var req api.AttendanceRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	if _, err := h.service.CheckIn(r.Context(), id, *req.Status); err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, api.StatusResponse{Status: "ok"})
}

// RunPayroll handles POST /payroll/run
func (h *HRHandler) RunPayroll(w http.ResponseWriter, r *http.Request) {
	var req api.PayrollRunRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	run, err := h.service.RunPayroll(r.Context(), *req.Month)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, api.PayrollRunResponse{Status: "ok", Month: run.Month, Employees: run.Employees})
}

// RequestLeave handles POST /leave/requests
func (h *HRHandler) RequestLeave(w http.ResponseWriter, r *http.Request) {
	var req api.LeaveRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	leave, err := h.service.RequestLeave(r.Context(), *req.EmployeeID, *req.LeaveType, *req.Days, req.Reason)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, leave)
}

// DecideLeave handles POST /leave/requests/{leaveID}/decision
func (h *HRHandler) DecideLeave(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "leaveID", "leave request")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	var req api.LeaveDecisionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	leave, err := h.service.DecideLeave(r.Context(), id, *req.Approved, *req.Approver)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, leave)
}

// CreateReview handles POST /performance/reviews
func (h *HRHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req api.ReviewRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	review, err := h.service.CreateReview(r.Context(), *req.EmployeeID, *req.Period, *req.Score, req.Summary)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

// DecideReview handles POST /performance/reviews/{reviewID}/decision
func (h *HRHandler) DecideReview(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "reviewID", "review")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	var req api.ReviewDecisionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	review, err := h.service.DecideReview(r.Context(), id, *req.FinalRating, *req.Reviewer)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

// TransferEmployee handles POST /employees/{employeeID}/transfer
func (h *HRHandler) TransferEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "employeeID", "employee")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	var req api.TransferRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	emp, err := h.service.TransferEmployee(r.Context(), id, *req.DepartmentID, req.Reason)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, emp)
}

// PromoteEmployee handles POST /employees/{employeeID}/promotion
func (h *HRHandler) PromoteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "employeeID", "employee")
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	var req api.PromotionRequest
	if err := decodeAndValidate(r, &req); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	emp, err := h.service.PromoteEmployee(r.Context(), id, *req.NewTitle, *req.EffectiveDate, req.Reason)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, emp)
}
