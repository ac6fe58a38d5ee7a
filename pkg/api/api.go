// Package api defines the contracts for API requests and responses.
// It decouples the API structure from the internal domain models.
package api

// Request fields are pointers so that validation only checks presence.
// Value rules (blank names, ranges, enums) belong to the service layer.

// CreateDepartmentRequest is the expected body for a POST /departments request.
type CreateDepartmentRequest struct {
	Name *string `json:"name" validate:"required"`
}

// CreateEmployeeRequest is the expected body for a POST /employees request.
type CreateEmployeeRequest struct {
	Name         *string `json:"name" validate:"required"`
	DepartmentID *int    `json:"department_id" validate:"required"`
	Title        *string `json:"title" validate:"required"`
}

// AttendanceRequest is the expected body for a POST /employees/{id}/attendance request.
type AttendanceRequest struct {
	Status *string `json:"status" validate:"required"`
}

// PayrollRunRequest is the expected body for a POST /payroll/run request.
type PayrollRunRequest struct {
	Month *string `json:"month" validate:"required"`
}

// LeaveRequest is the expected body for a POST /leave/requests request.
type LeaveRequest struct {
	EmployeeID *int    `json:"employee_id" validate:"required"`
	LeaveType  *string `json:"leave_type" validate:"required"`
	Days       *int    `json:"days" validate:"required"`
	Reason     string  `json:"reason"`
}

// LeaveDecisionRequest is the expected body for a POST /leave/requests/{id}/decision request.
type LeaveDecisionRequest struct {
	Approved *bool   `json:"approved" validate:"required"`
	Approver *string `json:"approver" validate:"required"`
}

// ReviewRequest is the expected body for a POST /performance/reviews request.
type ReviewRequest struct {
	EmployeeID *int    `json:"employee_id" validate:"required"`
	Period     *string `json:"period" validate:"required"`
	Score      *int    `json:"score" validate:"required"`
	Summary    string  `json:"summary"`
}

// ReviewDecisionRequest is the expected body for a POST /performance/reviews/{id}/decision request.
type ReviewDecisionRequest struct {
	FinalRating *string `json:"final_rating" validate:"required"`
	Reviewer    *string `json:"reviewer" validate:"required"`
}

// TransferRequest is the expected body for a POST /employees/{id}/transfer request.
type TransferRequest struct {
	DepartmentID *int   `json:"department_id" validate:"required"`
	Reason       string `json:"reason"`
}

// PromotionRequest is the expected body for a POST /employees/{id}/promotion request.
type PromotionRequest struct {
	NewTitle      *string `json:"new_title" validate:"required"`
	EffectiveDate *string `json:"effective_date" validate:"required"`
	Reason        string  `json:"reason"`
}

// ListResponse wraps collection endpoints.
type ListResponse struct {
	Items interface{} `json:"items"`
}

// StatusResponse is the body of acknowledgement-only endpoints.
type StatusResponse struct {
	Status string `json:"status"`
}

// HealthResponse is the body of GET /.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
}

// PayrollRunResponse is the body of POST /payroll/run.
type PayrollRunResponse struct {
	Status    string `json:"status"`
	Month     string `json:"month"`
	Employees int    `json:"employees"`
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
