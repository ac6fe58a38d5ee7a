package simulator

import (
	"context"
	"errors"
	"fmt"
)

// Action names, also used as the sim.action attribute and metric label.
const (
	ActionCreateDepartment   = "create_department"
	ActionCreateEmployee     = "create_employee"
	ActionAttendance         = "attendance"
	ActionPayroll            = "payroll"
	ActionLeaveRequest       = "leave_request"
	ActionLeaveDecision      = "leave_decision"
	ActionReviewCreate       = "review_create"
	ActionReviewDecision     = "review_decision"
	ActionDepartmentTransfer = "department_transfer"
	ActionPromotion          = "promotion"
)

var actionNames = []string{
	ActionCreateDepartment,
	ActionCreateEmployee,
	ActionAttendance,
	ActionPayroll,
	ActionLeaveRequest,
	ActionLeaveDecision,
	ActionReviewCreate,
	ActionReviewDecision,
	ActionDepartmentTransfer,
	ActionPromotion,
}

// ActionNames returns the actions the simulator can perform.
func ActionNames() []string {
	out := make([]string, len(actionNames))
	copy(out, actionNames)
	return out
}

// errSkipped marks an action whose preconditions were not met.
var errSkipped = errors.New("action skipped")

type actionFunc func(ctx context.Context) error

// state holds the ids learned from successful creates.
type state struct {
	departments  []int
	employees    []int
	lastLeaveID  int
	lastReviewID int
}

type idResponse struct {
	ID int `json:"id"`
}

var (
	departmentNames = []string{"HR", "Finance", "Engineering", "Sales"}
	employeeNames   = []string{"Alice", "Bob", "Cindy", "David"}
	employeeTitles  = []string{"Analyst", "Engineer", "Manager"}
	payrollMonths   = []string{"2025-12", "2026-01"}
	leaveTypes      = []string{"annual", "sick", "personal"}
	leaveReasons    = []string{"family", "travel", "medical", "rest"}
	approvers       = []string{"hr_lead", "manager_1"}
	reviewSummaries = []string{"solid", "excellent", "needs improvement"}
	finalRatings    = []string{"A", "B", "C"}
	transferReasons = []string{"reorg", "project shift", "promotion"}
	promotedTitles  = []string{"Senior Engineer", "Lead", "Manager"}
	effectiveDates  = []string{"2026-02-01", "2026-03-01"}
	promotionReason = []string{"performance", "leadership", "tenure"}
)

func (s *Simulator) actionTable() map[string]actionFunc {
	return map[string]actionFunc{
		ActionCreateDepartment:   s.createDepartment,
		ActionCreateEmployee:     s.createEmployee,
		ActionAttendance:         s.attendance,
		ActionPayroll:            s.payroll,
		ActionLeaveRequest:       s.leaveRequest,
		ActionLeaveDecision:      s.leaveDecision,
		ActionReviewCreate:       s.reviewCreate,
		ActionReviewDecision:     s.reviewDecision,
		ActionDepartmentTransfer: s.departmentTransfer,
		ActionPromotion:          s.promotion,
	}
}

func (s *Simulator) pick(options []string) string {
	return options[s.rng.IntN(len(options))]
}

func (s *Simulator) pickID(ids []int) int {
	return ids[s.rng.IntN(len(ids))]
}

func (s *Simulator) createDepartment(ctx context.Context) error {
	var created idResponse
	payload := map[string]interface{}{"name": s.pick(departmentNames)}
	if err := s.client.post(ctx, "/departments", payload, &created); err != nil {
		return err
	}
	if created.ID > 0 {
		s.state.departments = append(s.state.departments, created.ID)
	}
	return nil
}

func (s *Simulator) createEmployee(ctx context.Context) error {
	if len(s.state.departments) == 0 {
		return errSkipped
	}
	var created idResponse
	payload := map[string]interface{}{
		"name":          s.pick(employeeNames),
		"department_id": s.pickID(s.state.departments),
		"title":         s.pick(employeeTitles),
	}
	if err := s.client.post(ctx, "/employees", payload, &created); err != nil {
		return err
	}
	if created.ID > 0 {
		s.state.employees = append(s.state.employees, created.ID)
	}
	return nil
}

func (s *Simulator) attendance(ctx context.Context) error {
	if len(s.state.employees) == 0 {
		return errSkipped
	}
	status := "in"
	if s.rng.IntN(2) == 1 {
		status = "out"
	}
	path := fmt.Sprintf("/employees/%d/attendance", s.pickID(s.state.employees))
	return s.client.post(ctx, path, map[string]interface{}{"status": status}, nil)
}

func (s *Simulator) payroll(ctx context.Context) error {
	return s.client.post(ctx, "/payroll/run", map[string]interface{}{"month": s.pick(payrollMonths)}, nil)
}

func (s *Simulator) leaveRequest(ctx context.Context) error {
	if len(s.state.employees) == 0 {
		return errSkipped
	}
	var created idResponse
	payload := map[string]interface{}{
		"employee_id": s.pickID(s.state.employees),
		"leave_type":  s.pick(leaveTypes),
		"days":        1 + s.rng.IntN(5),
		"reason":      s.pick(leaveReasons),
	}
	if err := s.client.post(ctx, "/leave/requests", payload, &created); err != nil {
		return err
	}
	if created.ID > 0 {
		s.state.lastLeaveID = created.ID
	}
	return nil
}

func (s *Simulator) leaveDecision(ctx context.Context) error {
	if s.state.lastLeaveID == 0 {
		return errSkipped
	}
	payload := map[string]interface{}{
		"approved": s.rng.IntN(2) == 1,
		"approver": s.pick(approvers),
	}
	path := fmt.Sprintf("/leave/requests/%d/decision", s.state.lastLeaveID)
	return s.client.post(ctx, path, payload, nil)
}

func (s *Simulator) reviewCreate(ctx context.Context) error {
	if len(s.state.employees) == 0 {
		return errSkipped
	}
	var created idResponse
	payload := map[string]interface{}{
		"employee_id": s.pickID(s.state.employees),
		"period":      s.pick(payrollMonths),
		"score":       1 + s.rng.IntN(5),
		"summary":     s.pick(reviewSummaries),
	}
	if err := s.client.post(ctx, "/performance/reviews", payload, &created); err != nil {
		return err
	}
	if created.ID > 0 {
		s.state.lastReviewID = created.ID
	}
	return nil
}

func (s *Simulator) reviewDecision(ctx context.Context) error {
	if s.state.lastReviewID == 0 {
		return errSkipped
	}
	payload := map[string]interface{}{
		"final_rating": s.pick(finalRatings),
		"reviewer":     s.pick(approvers),
	}
	path := fmt.Sprintf("/performance/reviews/%d/decision", s.state.lastReviewID)
	return s.client.post(ctx, path, payload, nil)
}

func (s *Simulator) departmentTransfer(ctx context.Context) error {
	if len(s.state.employees) == 0 || len(s.state.departments) == 0 {
		return errSkipped
	}
	payload := map[string]interface{}{
		"department_id": s.pickID(s.state.departments),
		"reason":        s.pick(transferReasons),
	}
	path := fmt.Sprintf("/employees/%d/transfer", s.pickID(s.state.employees))
	return s.client.post(ctx, path, payload, nil)
}

func (s *Simulator) promotion(ctx context.Context) error {
	if len(s.state.employees) == 0 {
		return errSkipped
	}
	payload := map[string]interface{}{
		"new_title":      s.pick(promotedTitles),
		"effective_date": s.pick(effectiveDates),
		"reason":         s.pick(promotionReason),
	}
	path := fmt.Sprintf("/employees/%d/promotion", s.pickID(s.state.employees))
	return s.client.post(ctx, path, payload, nil)
}
