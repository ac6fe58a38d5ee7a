// Package hr holds the entities served by the LogPulse HR API.
package hr

import (
	"strings"
	"time"
)

// Attendance statuses.
const (
	AttendanceIn  = "in"
	AttendanceOut = "out"
)

// Leave request states.
const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

// Performance review states.
const (
	ReviewSubmitted = "submitted"
	ReviewFinalized = "finalized"
)

// Department groups employees.
type Department struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Employee belongs to exactly one department.
type Employee struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	DepartmentID int    `json:"department_id"`
	Title        string `json:"title"`
}

// AttendanceRecord is a single check-in or check-out.
type AttendanceRecord struct {
	EmployeeID int       `json:"employee_id"`
	Status     string    `json:"status"`
	Timestamp  time.Time `json:"ts"`
}

// PayrollRun is the result of running payroll for a month.
type PayrollRun struct {
	Month     string `json:"month"`
	Employees int    `json:"employees"`
}

// LeaveRequest tracks a leave application through its decision.
type LeaveRequest struct {
	ID         int    `json:"id"`
	EmployeeID int    `json:"employee_id"`
	LeaveType  string `json:"leave_type"`
	Days       int    `json:"days"`
	Reason     string `json:"reason,omitempty"`
	Status     string `json:"status"`
	Approver   string `json:"approver,omitempty"`
}

// Decided reports whether the request has left the pending state.
func (l *LeaveRequest) Decided() bool {
	return l.Status != LeavePending
}

// PerformanceReview is a periodic review with an optional final rating.
type PerformanceReview struct {
	ID          int    `json:"id"`
	EmployeeID  int    `json:"employee_id"`
	Period      string `json:"period"`
	Score       int    `json:"score"`
	Summary     string `json:"summary,omitempty"`
	Status      string `json:"status"`
	FinalRating string `json:"final_rating,omitempty"`
	Reviewer    string `json:"reviewer,omitempty"`
}

// NormalizeAttendanceStatus lower-cases status and reports whether it is "in" or "out".
func NormalizeAttendanceStatus(status string) (string, bool) {
	s := strings.ToLower(status)
	return s, s == AttendanceIn || s == AttendanceOut
}

// ValidMonth accepts YYYY-MM shaped values: exactly seven characters with '-' at index 4.
func ValidMonth(month string) bool {
	return len(month) == 7 && month[4] == '-'
}

// ValidDate accepts calendar dates in YYYY-MM-DD form.
func ValidDate(date string) bool {
	_, err := time.Parse("2006-01-02", date)
	return err == nil
}
