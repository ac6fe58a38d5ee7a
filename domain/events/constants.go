package events

// Event sources - These define where events originate from
const (
	// SourceHR is the HR API service source
	SourceHR = "logpulse.hr"
)

// Event types - These define the types of events in the system
const (
	TypeDepartmentCreated = "department.created"

	// Employee lifecycle events
	TypeEmployeeCreated     = "employee.created"
	TypeEmployeeTransferred = "employee.transferred"
	TypeEmployeePromoted    = "employee.promoted"

	TypeAttendanceRecorded = "attendance.recorded"
	TypePayrollCompleted   = "payroll.completed"

	TypeLeaveRequested = "leave.requested"
	TypeLeaveDecided   = "leave.decided"

	TypeReviewSubmitted = "review.submitted"
	TypeReviewFinalized = "review.finalized"
)

// Event detail keys - Common keys used in event details
const (
	DetailDepartmentID = "departmentId"
	DetailEmployeeID   = "employeeId"
	DetailStatus       = "status"
	DetailMonth        = "month"
	DetailEmployees    = "employees"
	DetailLeaveID      = "leaveId"
	DetailReviewID     = "reviewId"
	DetailTitle        = "title"
	DetailOutcome      = "outcome"
)
