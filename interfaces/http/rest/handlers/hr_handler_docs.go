package handlers

// OpenAPI annotations for HRHandler endpoints. docs/swagger is generated from these.

// CreateDepartment
// @Summary Create a department
// @Tags departments
// @Accept json
// @Produce json
// @Param request body api.CreateDepartmentRequest true "Department"
// @Success 200 {object} hr.Department
// @Failure 400 {object} api.ErrorResponse "Blank name"
// @Failure 422 {object} api.ErrorResponse "Malformed body"
// @Router /departments [post]

// ListDepartments
// @Summary List departments
// @Tags departments
// @Produce json
// @Success 200 {object} api.ListResponse
// @Router /departments [get]

// CreateEmployee
// @Summary Create an employee
// @Tags employees
// @Accept json
// @Produce json
// @Param request body api.CreateEmployeeRequest true "Employee"
// @Success 200 {object} hr.Employee
// @Failure 404 {object} api.ErrorResponse "Department not found"
// @Failure 422 {object} api.ErrorResponse "Malformed body"
// @Router /employees [post]

// GetEmployee
// @Summary Get an employee
// @Tags employees
// @Produce json
// @Param employeeID path int true "Employee ID"
// @Success 200 {object} hr.Employee
// @Failure 404 {object} api.ErrorResponse "Employee not found"
// @Router /employees/{employeeID} [get]

// CheckIn
// @Summary Record attendance
// @Tags attendance
// @Accept json
// @Produce json
// @Param employeeID path int true "Employee ID"
// @Param request body api.AttendanceRequest true "in or out"
// @Success 200 {object} api.StatusResponse
// @Failure 400 {object} api.ErrorResponse "Invalid attendance status"
// @Failure 404 {object} api.ErrorResponse "Employee not found"
// @Router /employees/{employeeID}/attendance [post]

// RunPayroll
// @Summary Run payroll for a month
// @Tags payroll
// @Accept json
// @Produce json
// @Param request body api.PayrollRunRequest true "Month as YYYY-MM"
// @Success 200 {object} api.PayrollRunResponse
// @Failure 400 {object} api.ErrorResponse "Invalid month format"
// @Router /payroll/run [post]

// RequestLeave
// @Summary Request leave
// @Tags leave
// @Accept json
// @Produce json
// @Param request body api.LeaveRequest true "Leave request"
// @Success 200 {object} hr.LeaveRequest
// @Router /leave/requests [post]

// DecideLeave
// @Summary Approve or reject a leave request
// @Tags leave
// @Accept json
// @Produce json
// @Param leaveID path int true "Leave request ID"
// @Param request body api.LeaveDecisionRequest true "Decision"
// @Success 200 {object} hr.LeaveRequest
// @Failure 409 {object} api.ErrorResponse "Already decided"
// @Router /leave/requests/{leaveID}/decision [post]

// CreateReview
// @Summary Submit a performance review
// @Tags performance
// @Accept json
// @Produce json
// @Param request body api.ReviewRequest true "Review"
// @Success 200 {object} hr.PerformanceReview
// @Router /performance/reviews [post]

// DecideReview
// @Summary Finalize a performance review
// @Tags performance
// @Accept json
// @Produce json
// @Param reviewID path int true "Review ID"
// @Param request body api.ReviewDecisionRequest true "Final rating"
// @Success 200 {object} hr.PerformanceReview
// @Failure 409 {object} api.ErrorResponse "Already finalized"
// @Router /performance/reviews/{reviewID}/decision [post]

// TransferEmployee
// @Summary Transfer an employee to another department
// @Tags employees
// @Accept json
// @Produce json
// @Param employeeID path int true "Employee ID"
// @Param request body api.TransferRequest true "Target department"
// @Success 200 {object} hr.Employee
// @Router /employees/{employeeID}/transfer [post]

// PromoteEmployee
// @Summary Promote an employee
// @Tags employees
// @Accept json
// @Produce json
// @Param employeeID path int true "Employee ID"
// @Param request body api.PromotionRequest true "New title"
// @Success 200 {object} hr.Employee
// @Router /employees/{employeeID}/promotion [post]
