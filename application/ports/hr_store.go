package ports

import (
	"context"

	"logpulse/domain/events"
	"logpulse/domain/hr"
)

// HRStore defines the interface for HR record persistence.
// Lookups of unknown ids return a NOT_FOUND AppError.
type HRStore interface {
	// Departments
	CreateDepartment(ctx context.Context, name string) (*hr.Department, error)
	GetDepartment(ctx context.Context, id int) (*hr.Department, error)
	ListDepartments(ctx context.Context) ([]*hr.Department, error)

	// Employees
	CreateEmployee(ctx context.Context, name string, departmentID int, title string) (*hr.Employee, error)
	GetEmployee(ctx context.Context, id int) (*hr.Employee, error)
	ListEmployees(ctx context.Context) ([]*hr.Employee, error)
	UpdateEmployee(ctx context.Context, employee *hr.Employee) error
	CountEmployees(ctx context.Context) (int, error)

	// Attendance
	AppendAttendance(ctx context.Context, record hr.AttendanceRecord) error
	ListAttendance(ctx context.Context, employeeID int) ([]hr.AttendanceRecord, error)

	// Leave requests
	CreateLeave(ctx context.Context, leave *hr.LeaveRequest) (*hr.LeaveRequest, error)
	GetLeave(ctx context.Context, id int) (*hr.LeaveRequest, error)
	UpdateLeave(ctx context.Context, leave *hr.LeaveRequest) error

	// Performance reviews
	CreateReview(ctx context.Context, review *hr.PerformanceReview) (*hr.PerformanceReview, error)
	GetReview(ctx context.Context, id int) (*hr.PerformanceReview, error)
	UpdateReview(ctx context.Context, review *hr.PerformanceReview) error
}

// EventPublisher delivers domain events to an external sink.
type EventPublisher interface {
	Publish(ctx context.Context, event events.DomainEvent) error
}
