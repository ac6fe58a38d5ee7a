package memory

import (
	"context"
	"sort"
	"sync"

	"logpulse/application/ports"
	"logpulse/domain/hr"
	appErrors "logpulse/pkg/errors"
)

const (
	firstDepartmentID = 1
	firstEmployeeID   = 1000
)

// HRStore provides an in-memory implementation of ports.HRStore.
// Records are copied on the way in and out so callers never share state with the store.
type HRStore struct {
	mu          sync.RWMutex
	departments map[int]*hr.Department
	employees   map[int]*hr.Employee
	attendance  map[int][]hr.AttendanceRecord
	leaves      map[int]*hr.LeaveRequest
	reviews     map[int]*hr.PerformanceReview

	nextDepartmentID int
	nextEmployeeID   int
	nextLeaveID      int
	nextReviewID     int
}

var _ ports.HRStore = (*HRStore)(nil)

// NewHRStore creates an empty store.
func NewHRStore() *HRStore {
	return &HRStore{
		departments:      make(map[int]*hr.Department),
		employees:        make(map[int]*hr.Employee),
		attendance:       make(map[int][]hr.AttendanceRecord),
		leaves:           make(map[int]*hr.LeaveRequest),
		reviews:          make(map[int]*hr.PerformanceReview),
		nextDepartmentID: firstDepartmentID,
		nextEmployeeID:   firstEmployeeID,
		nextLeaveID:      1,
		nextReviewID:     1,
	}
}

// CreateDepartment stores a department under the next department id.
func (s *HRStore) CreateDepartment(ctx context.Context, name string) (*hr.Department, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := &hr.Department{ID: s.nextDepartmentID, Name: name}
	s.nextDepartmentID++
	s.departments[d.ID] = d

	out := *d
	return &out, nil
}

// GetDepartment retrieves a department by ID
func (s *HRStore) GetDepartment(ctx context.Context, id int) (*hr.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.departments[id]
	if !ok {
		return nil, appErrors.NewNotFound("department not found")
	}
	out := *d
	return &out, nil
}

// ListDepartments returns all departments ordered by id.
func (s *HRStore) ListDepartments(ctx context.Context) ([]*hr.Department, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*hr.Department, 0, len(s.departments))
	for _, d := range s.departments {
		c := *d
		items = append(items, &c)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// CreateEmployee stores an employee under the next employee id.
// The department must already exist.
func (s *HRStore) CreateEmployee(ctx context.Context, name string, departmentID int, title string) (*hr.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.departments[departmentID]; !ok {
		return nil, appErrors.NewNotFound("department not found")
	}

	e := &hr.Employee{ID: s.nextEmployeeID, Name: name, DepartmentID: departmentID, Title: title}
	s.nextEmployeeID++
	s.employees[e.ID] = e

	out := *e
	return &out, nil
}

// GetEmployee retrieves an employee by ID
func (s *HRStore) GetEmployee(ctx context.Context, id int) (*hr.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return nil, appErrors.NewNotFound("employee not found")
	}
	out := *e
	return &out, nil
}

// ListEmployees returns all employees ordered by id.
func (s *HRStore) ListEmployees(ctx context.Context) ([]*hr.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]*hr.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		c := *e
		items = append(items, &c)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

// UpdateEmployee replaces an existing employee.
func (s *HRStore) UpdateEmployee(ctx context.Context, employee *hr.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[employee.ID]; !ok {
		return appErrors.NewNotFound("employee not found")
	}
	if _, ok := s.departments[employee.DepartmentID]; !ok {
		return appErrors.NewNotFound("department not found")
	}
	c := *employee
	s.employees[employee.ID] = &c
	return nil
}

// CountEmployees returns the number of stored employees.
func (s *HRStore) CountEmployees(ctx context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.employees), nil
}

// AppendAttendance records a check-in or check-out for an existing employee.
func (s *HRStore) AppendAttendance(ctx context.Context, record hr.AttendanceRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[record.EmployeeID]; !ok {
		return appErrors.NewNotFound("employee not found")
	}
	s.attendance[record.EmployeeID] = append(s.attendance[record.EmployeeID], record)
	return nil
}

// ListAttendance returns an employee's records in insertion order.
func (s *HRStore) ListAttendance(ctx context.Context, employeeID int) ([]hr.AttendanceRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.employees[employeeID]; !ok {
		return nil, appErrors.NewNotFound("employee not found")
	}
	records := s.attendance[employeeID]
	out := make([]hr.AttendanceRecord, len(records))
	copy(out, records)
	return out, nil
}

// CreateLeave assigns the next leave id and stores the request.
func (s *HRStore) CreateLeave(ctx context.Context, leave *hr.LeaveRequest) (*hr.LeaveRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *leave
	c.ID = s.nextLeaveID
	s.nextLeaveID++
	s.leaves[c.ID] = &c

	out := c
	return &out, nil
}

// GetLeave retrieves a leave request by ID
func (s *HRStore) GetLeave(ctx context.Context, id int) (*hr.LeaveRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.leaves[id]
	if !ok {
		return nil, appErrors.NewNotFound("leave request not found")
	}
	out := *l
	return &out, nil
}

// UpdateLeave replaces an existing leave request.
func (s *HRStore) UpdateLeave(ctx context.Context, leave *hr.LeaveRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.leaves[leave.ID]; !ok {
		return appErrors.NewNotFound("leave request not found")
	}
	c := *leave
	s.leaves[leave.ID] = &c
	return nil
}

// CreateReview assigns the next review id and stores the review.
func (s *HRStore) CreateReview(ctx context.Context, review *hr.PerformanceReview) (*hr.PerformanceReview, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := *review
	c.ID = s.nextReviewID
	s.nextReviewID++
	s.reviews[c.ID] = &c

	out := c
	return &out, nil
}

// GetReview retrieves a performance review by ID
func (s *HRStore) GetReview(ctx context.Context, id int) (*hr.PerformanceReview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.reviews[id]
	if !ok {
		return nil, appErrors.NewNotFound("review not found")
	}
	out := *r
	return &out, nil
}

// UpdateReview replaces an existing review.
func (s *HRStore) UpdateReview(ctx context.Context, review *hr.PerformanceReview) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reviews[review.ID]; !ok {
		return appErrors.NewNotFound("review not found")
	}
	c := *review
	s.reviews[review.ID] = &c
	return nil
}
