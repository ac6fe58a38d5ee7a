package services

import (
	"context"
	"math/rand/v2"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"logpulse/application/ports"
	"logpulse/domain/events"
	"logpulse/domain/hr"
	"logpulse/infrastructure/observability"
	appErrors "logpulse/pkg/errors"
)

var (
	leaveTypes   = map[string]bool{"annual": true, "sick": true, "personal": true}
	finalRatings = map[string]bool{"A": true, "B": true, "C": true, "D": true}
)

const (
	maxLeaveDays = 30
	minScore     = 1
	maxScore     = 5
)

// HRService implements the HR operations behind the REST API.
// Every operation runs in its own span, records its business counter, and
// publishes a domain event; a failed publish is logged and never fails the call.
type HRService struct {
	store       ports.HRStore
	events      ports.EventPublisher
	instruments *observability.Instruments
	tracer      trace.Tracer
	logger      *zap.Logger

	// payroll runs pause for a random duration in [payrollMin, payrollMax]
	payrollMin time.Duration
	payrollMax time.Duration

	// serialises decide-once transitions on leave requests and reviews
	decisionMu sync.Mutex
	// serialises read-modify-write of employee records
	employeeMu sync.Mutex
}

// NewHRService creates a new HR service
func NewHRService(
	store ports.HRStore,
	publisher ports.EventPublisher,
	instruments *observability.Instruments,
	tracer trace.Tracer,
	logger *zap.Logger,
) *HRService {
	return &HRService{
		store:       store,
		events:      publisher,
		instruments: instruments,
		tracer:      tracer,
		logger:      logger,
		payrollMin:  50 * time.Millisecond,
		payrollMax:  200 * time.Millisecond,
	}
}

// SetPayrollDelay overrides the simulated payroll processing time.
func (s *HRService) SetPayrollDelay(lo, hi time.Duration) {
	s.payrollMin, s.payrollMax = lo, hi
}

// CreateDepartment creates a department with a non-blank name.
func (s *HRService) CreateDepartment(ctx context.Context, name string) (*hr.Department, error) {
	ctx, span := s.tracer.Start(ctx, "HRService.CreateDepartment")
	defer span.End()

	name = strings.TrimSpace(name)
	if name == "" {
		s.logger.Warn("invalid department name", zap.Any("ctx", ctx))
		return nil, recordError(span, appErrors.NewValidation("invalid department name"))
	}

	dept, err := s.store.CreateDepartment(ctx, name)
	if err != nil {
		return nil, recordError(span, appErrors.Wrap(err, "create department"))
	}
	span.SetAttributes(attribute.Int("department.id", dept.ID))

	s.logger.Info("department created",
		zap.Any("ctx", ctx),
		zap.Int("department_id", dept.ID),
		zap.String("name", dept.Name),
	)
	s.publish(ctx, events.New(events.TypeDepartmentCreated, dept.ID, map[string]interface{}{
		"name": dept.Name,
	}))
	return dept, nil
}

// ListDepartments returns every department ordered by id.
func (s *HRService) ListDepartments(ctx context.Context) ([]*hr.Department, error) {
	ctx, span := s.tracer.Start(ctx, "HRService.ListDepartments")
	defer span.End()

	items, err := s.store.ListDepartments(ctx)
	if err != nil {
		return nil, recordError(span, err)
	}
	span.SetAttributes(attribute.Int("departments.count", len(items)))
	return items, nil
}

// CreateEmployee adds an employee to an existing department.
func (s *HRService) CreateEmployee(ctx context.Context, name string, departmentID int, title string) (*hr.Employee, error) {
	ctx, span := s.tracer.Start(ctx, "HRService.CreateEmployee",
		trace.WithAttributes(attribute.Int("department.id", departmentID)),
	)
	defer span.End()

	emp, err := s.store.CreateEmployee(ctx, name, departmentID, title)
	if err != nil {
		s.logger.Warn("employee not created", zap.Any("ctx", ctx), zap.Int("department_id", departmentID), zap.Error(err))
		return nil, recordError(span, err)
	}
	span.SetAttributes(attribute.Int("employee.id", emp.ID))

	s.instruments.EmployeesCreated.Add(ctx, 1, metric.WithAttributes(
		attribute.String("department_id", strconv.Itoa(departmentID)),
	))
	s.logger.Info("employee created",
		zap.Any("ctx", ctx),
		zap.Int("employee_id", emp.ID),
		zap.Int("department_id", departmentID),
	)
	s.publish(ctx, events.New(events.TypeEmployeeCreated, emp.ID, map[string]interface{}{
		events.DetailDepartmentID: departmentID,
		events.DetailTitle:        emp.Title,
	}))
	return emp, nil
}

// GetEmployee retrieves an employee by ID
func (s *HRService) GetEmployee(ctx context.Context, id int) (*hr.Employee, error) {
	ctx, span := s.tracer.Start(ctx, "HRService.GetEmployee",
		trace.WithAttributes(attribute.Int("employee.id", id)),
	)
	defer span.End()

	emp, err := s.store.GetEmployee(ctx, id)
	if err != nil {
		return nil, recordError(span, err)
	}
	return emp, nil
}

// ListEmployees returns every employee ordered by id.
func (s *HRService) ListEmployees(ctx context.Context) ([]*hr.Employee, error) {
	ctx, span := s.tracer.Start(ctx, "HRService.ListEmployees")
	defer span.End()

	items, err := s.store.ListEmployees(ctx)
	if err != nil {
		return nil, recordError(span, err)
	}
	span.SetAttributes(attribute.Int("employees.count", len(items)))
	return items, nil
}

// CheckIn records attendance. The employee is resolved before the status is checked.
func (s *HRService) CheckIn(ctx context.Context, employeeID int, status string) (*hr.AttendanceRecord, error) {
	ctx, span := s.tracer.Start(ctx, "HRService.CheckIn",
		trace.WithAttributes(attribute.Int("employee.id", employeeID)),
	)
	defer span.End()

	if _, err := s.store.GetEmployee(ctx, employeeID); err != nil {
		return nil, recordError(span, err)
	}

	normalized, ok := hr.NormalizeAttendanceStatus(status)
	if !ok {
		s.logger.Warn("invalid attendance status", zap.Any("ctx", ctx), zap.String("status", status))
		return nil, recordError(span, appErrors.NewValidation("invalid attendance status"))
	}

	record := hr.AttendanceRecord{EmployeeID: employeeID, Status: normalized, Timestamp: time.Now().UTC()}
	if err := s.store.AppendAttendance(ctx, record); err != nil {
		return nil, recordError(span, err)
	}
	span.SetAttributes(attribute.String("attendance.status", normalized))

	s.instruments.AttendanceCheckins.Add(ctx, 1, metric.WithAttributes(attribute.String("status", normalized)))
	s.logger.Info("attendance recorded",
		zap.Any("ctx", ctx),
		zap.String("status", normalized),
		zap.Int("employee_id", employeeID),
	)
	s.publish(ctx, events.New(events.TypeAttendanceRecorded, employeeID, map[string]interface{}{
		events.DetailStatus: normalized,
	}))
	return &record, nil
}

// RunPayroll simulates a payroll run for month (YYYY-MM).
func (s *HRService) RunPayroll(ctx context.Context, month string) (*hr.PayrollRun, error) {
	ctx, span := s.tracer.Start(ctx, "HRService.RunPayroll",
		trace.WithAttributes(attribute.String("payroll.month", month)),
	)
	defer span.End()

	if !hr.ValidMonth(month) {
		s.logger.Warn("invalid month format", zap.Any("ctx", ctx), zap.String("month", month))
		return nil, recordError(span, appErrors.NewValidation("invalid month format"))
	}

	if err := sleepContext(ctx, s.payrollDelay()); err != nil {
		return nil, recordError(span, appErrors.Wrap(err, "payroll interrupted"))
	}

	count, err := s.store.CountEmployees(ctx)
	if err != nil {
		return nil, recordError(span, err)
	}
	span.SetAttributes(attribute.Int("payroll.employees", count))

	s.instruments.PayrollRuns.Add(ctx, 1, metric.WithAttributes(attribute.String("month", month)))
	s.logger.Info("payroll run",
		zap.Any("ctx", ctx),
		zap.String("month", month),
		zap.Int("employees", count),
	)
	s.publish(ctx, events.New(events.TypePayrollCompleted, 0, map[string]interface{}{
		events.DetailMonth:     month,
		events.DetailEmployees: count,
	}))
	return &hr.PayrollRun{Month: month, Employees: count}, nil
}

func (s *HRService) payrollDelay() time.Duration {
	if s.payrollMax <= s.payrollMin {
		return s.payrollMin
	}
	return s.payrollMin + rand.N(s.payrollMax-s.payrollMin)
}

// RequestLeave files a pending leave request for an existing employee.
func (s *HRService) RequestLeave(ctx context.Context, employeeID int, leaveType string, days int, reason string) (*hr.LeaveRequest, error) {
	ctx, span := s.tracer.Start(ctx, "HRService.RequestLeave",
		trace.WithAttributes(
			attribute.Int("employee.id", employeeID),
			attribute.String("leave.type", leaveType),
		),
	)
	defer span.End()

	if !leaveTypes[leaveType] {
		return nil, recordError(span, appErrors.NewValidation("invalid leave type"))
	}
	if days < 1 || days > maxLeaveDays {
		return nil, recordError(span, appErrors.NewValidation("invalid leave days"))
	}
	if _, err := s.store.GetEmployee(ctx, employeeID); err != nil {
		return nil, recordError(span, err)
	}

	leave, err := s.store.CreateLeave(ctx, &hr.LeaveRequest{
		EmployeeID: employeeID,
		LeaveType:  leaveType,
		Days:       days,
		Reason:     reason,
		Status:     hr.LeavePending,
	})
	if err != nil {
		return nil, recordError(span, err)
	}
	span.SetAttributes(attribute.Int("leave.id", leave.ID))

	s.instruments.LeaveRequests.Add(ctx, 1, metric.WithAttributes(attribute.String("leave_type", leaveType)))
	s.logger.Info("leave requested",
		zap.Any("ctx", ctx),
		zap.Int("leave_id", leave.ID),
		zap.Int("employee_id", employeeID),
		zap.String("leave_type", leaveType),
		zap.Int("days", days),
	)
	s.publish(ctx, events.New(events.TypeLeaveRequested, leave.ID, map[string]interface{}{
		events.DetailEmployeeID: employeeID,
		"leaveType":             leaveType,
		"days":                  days,
	}))
	return leave, nil
}

// DecideLeave approves or rejects a pending leave request exactly once.
func (s *HRService) DecideLeave(ctx context.Context, leaveID int, approved bool, approver string) (*hr.LeaveRequest, error) {
	ctx, span := s.tracer.Start(ctx, "HRService.DecideLeave",
		trace.WithAttributes(attribute.Int("leave.id", leaveID)),
	)
	defer span.End()

	if strings.TrimSpace(approver) == "" {
		return nil, recordError(span, appErrors.NewValidation("invalid approver"))
	}

	s.decisionMu.Lock()
	defer s.decisionMu.Unlock()

	leave, err := s.store.GetLeave(ctx, leaveID)
	if err != nil {
		return nil, recordError(span, err)
	}
	if leave.Decided() {
		return nil, recordError(span, appErrors.NewConflict("leave request already decided"))
	}

	leave.Status = hr.LeaveRejected
	if approved {
		leave.Status = hr.LeaveApproved
	}
	leave.Approver = approver
	if err := s.store.UpdateLeave(ctx, leave); err != nil {
		return nil, recordError(span, err)
	}
	span.SetAttributes(attribute.String("leave.outcome", leave.Status))

	s.instruments.LeaveDecisions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", leave.Status)))
	s.logger.Info("leave decided",
		zap.Any("ctx", ctx),
		zap.Int("leave_id", leaveID),
		zap.String("outcome", leave.Status),
		zap.String("approver", approver),
	)
	s.publish(ctx, events.New(events.TypeLeaveDecided, leaveID, map[string]interface{}{
		events.DetailEmployeeID: leave.EmployeeID,
		events.DetailOutcome:    leave.Status,
	}))
	return leave, nil
}

// CreateReview submits a performance review for period (YYYY-MM).
func (s *HRService) CreateReview(ctx context.Context, employeeID int, period string, score int, summary string) (*hr.PerformanceReview, error) {
	ctx, span := s.tracer.Start(ctx, "HRService.CreateReview",
		trace.WithAttributes(
			attribute.Int("employee.id", employeeID),
			attribute.String("review.period", period),
		),
	)
	defer span.End()

	if !hr.ValidMonth(period) {
		return nil, recordError(span, appErrors.NewValidation("invalid review period"))
	}
	if score < minScore || score > maxScore {
		return nil, recordError(span, appErrors.NewValidation("invalid review score"))
	}
	if _, err := s.store.GetEmployee(ctx, employeeID); err != nil {
		return nil, recordError(span, err)
	}

	review, err := s.store.CreateReview(ctx, &hr.PerformanceReview{
		EmployeeID: employeeID,
		Period:     period,
		Score:      score,
		Summary:    summary,
		Status:     hr.ReviewSubmitted,
	})
	if err != nil {
		return nil, recordError(span, err)
	}
	span.SetAttributes(attribute.Int("review.id", review.ID))

	s.instruments.PerformanceReviews.Add(ctx, 1)
	s.logger.Info("performance review submitted",
		zap.Any("ctx", ctx),
		zap.Int("review_id", review.ID),
		zap.Int("employee_id", employeeID),
		zap.Int("score", score),
	)
	s.publish(ctx, events.New(events.TypeReviewSubmitted, review.ID, map[string]interface{}{
		events.DetailEmployeeID: employeeID,
		"period":                period,
		"score":                 score,
	}))
	return review, nil
}

// DecideReview finalizes a submitted review exactly once.
func (s *HRService) DecideReview(ctx context.Context, reviewID int, finalRating, reviewer string) (*hr.PerformanceReview, error) {
	ctx, span := s.tracer.Start(ctx, "HRService.DecideReview",
		trace.WithAttributes(attribute.Int("review.id", reviewID)),
	)
	defer span.End()

	if !finalRatings[finalRating] {
		return nil, recordError(span, appErrors.NewValidation("invalid final rating"))
	}
	if strings.TrimSpace(reviewer) == "" {
		return nil, recordError(span, appErrors.NewValidation("invalid reviewer"))
	}

	s.decisionMu.Lock()
	defer s.decisionMu.Unlock()

	review, err := s.store.GetReview(ctx, reviewID)
	if err != nil {
		return nil, recordError(span, err)
	}
	if review.Status == hr.ReviewFinalized {
		return nil, recordError(span, appErrors.NewConflict("review already finalized"))
	}

	review.Status = hr.ReviewFinalized
	review.FinalRating = finalRating
	review.Reviewer = reviewer
	if err := s.store.UpdateReview(ctx, review); err != nil {
		return nil, recordError(span, err)
	}

	s.instruments.ReviewDecisions.Add(ctx, 1, metric.WithAttributes(attribute.String("final_rating", finalRating)))
	s.logger.Info("performance review finalized",
		zap.Any("ctx", ctx),
		zap.Int("review_id", reviewID),
		zap.String("final_rating", finalRating),
	)
	s.publish(ctx, events.New(events.TypeReviewFinalized, reviewID, map[string]interface{}{
		events.DetailEmployeeID: review.EmployeeID,
		"finalRating":           finalRating,
	}))
	return review, nil
}

// TransferEmployee moves an employee to another existing department.
func (s *HRService) TransferEmployee(ctx context.Context, employeeID, departmentID int, reason string) (*hr.Employee, error) {
	ctx, span := s.tracer.Start(ctx, "HRService.TransferEmployee",
		trace.WithAttributes(
			attribute.Int("employee.id", employeeID),
			attribute.Int("department.id", departmentID),
		),
	)
	defer span.End()

	s.employeeMu.Lock()
	defer s.employeeMu.Unlock()

	emp, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, recordError(span, err)
	}
	if _, err := s.store.GetDepartment(ctx, departmentID); err != nil {
		return nil, recordError(span, err)
	}
	if emp.DepartmentID == departmentID {
		return nil, recordError(span, appErrors.NewValidation("employee already in department"))
	}

	from := emp.DepartmentID
	emp.DepartmentID = departmentID
	if err := s.store.UpdateEmployee(ctx, emp); err != nil {
		return nil, recordError(span, err)
	}

	s.instruments.DepartmentTransfers.Add(ctx, 1)
	s.logger.Info("employee transferred",
		zap.Any("ctx", ctx),
		zap.Int("employee_id", employeeID),
		zap.Int("from_department_id", from),
		zap.Int("to_department_id", departmentID),
		zap.String("reason", reason),
	)
	s.publish(ctx, events.New(events.TypeEmployeeTransferred, employeeID, map[string]interface{}{
		"fromDepartmentId":        from,
		events.DetailDepartmentID: departmentID,
	}))
	return emp, nil
}

// PromoteEmployee changes an employee's title as of effectiveDate (YYYY-MM-DD).
func (s *HRService) PromoteEmployee(ctx context.Context, employeeID int, newTitle, effectiveDate, reason string) (*hr.Employee, error) {
	ctx, span := s.tracer.Start(ctx, "HRService.PromoteEmployee",
		trace.WithAttributes(attribute.Int("employee.id", employeeID)),
	)
	defer span.End()

	newTitle = strings.TrimSpace(newTitle)
	if newTitle == "" {
		return nil, recordError(span, appErrors.NewValidation("invalid title"))
	}
	if !hr.ValidDate(effectiveDate) {
		return nil, recordError(span, appErrors.NewValidation("invalid effective date"))
	}

	s.employeeMu.Lock()
	defer s.employeeMu.Unlock()

	emp, err := s.store.GetEmployee(ctx, employeeID)
	if err != nil {
		return nil, recordError(span, err)
	}

	previous := emp.Title
	emp.Title = newTitle
	if err := s.store.UpdateEmployee(ctx, emp); err != nil {
		return nil, recordError(span, err)
	}

	s.instruments.Promotions.Add(ctx, 1)
	s.logger.Info("employee promoted",
		zap.Any("ctx", ctx),
		zap.Int("employee_id", employeeID),
		zap.String("previous_title", previous),
		zap.String("new_title", newTitle),
		zap.String("effective_date", effectiveDate),
		zap.String("reason", reason),
	)
	s.publish(ctx, events.New(events.TypeEmployeePromoted, employeeID, map[string]interface{}{
		events.DetailTitle: newTitle,
		"previousTitle":    previous,
		"effectiveDate":    effectiveDate,
	}))
	return emp, nil
}

func (s *HRService) publish(ctx context.Context, event events.DomainEvent) {
	if err := s.events.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish domain event",
			zap.Any("ctx", ctx),
			zap.String("eventType", event.GetEventType()),
			zap.Error(err),
		)
	}
}

// recordError attaches err to span. Only internal errors fail the span.
func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	if appErrors.HTTPStatus(err) >= 500 {
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.String("error.type", string(appErrors.TypeOf(err))))
	}
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
