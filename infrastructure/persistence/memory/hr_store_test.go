package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"logpulse/domain/hr"
	appErrors "logpulse/pkg/errors"
)

func TestHRStore_Departments(t *testing.T) {
	ctx := context.Background()
	s := NewHRStore()

	d1, err := s.CreateDepartment(ctx, "Engineering")
	require.NoError(t, err)
	d2, err := s.CreateDepartment(ctx, "Finance")
	require.NoError(t, err)

	assert.Equal(t, 1, d1.ID)
	assert.Equal(t, 2, d2.ID)

	list, err := s.ListDepartments(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Engineering", list[0].Name)
	assert.Equal(t, "Finance", list[1].Name)

	_, err = s.GetDepartment(ctx, 99)
	assert.True(t, appErrors.IsNotFound(err))
}

func TestHRStore_Employees(t *testing.T) {
	ctx := context.Background()
	s := NewHRStore()
	d, _ := s.CreateDepartment(ctx, "Sales")

	t.Run("ids start at 1000", func(t *testing.T) {
		e, err := s.CreateEmployee(ctx, "Ada", d.ID, "Engineer")
		require.NoError(t, err)
		assert.Equal(t, 1000, e.ID)

		e2, err := s.CreateEmployee(ctx, "Grace", d.ID, "Manager")
		require.NoError(t, err)
		assert.Equal(t, 1001, e2.ID)
	})

	t.Run("unknown department", func(t *testing.T) {
		_, err := s.CreateEmployee(ctx, "Bob", 42, "Clerk")
		require.Error(t, err)
		assert.True(t, appErrors.IsNotFound(err))
		assert.Equal(t, "department not found", appErrors.Message(err))
	})

	t.Run("returned values are copies", func(t *testing.T) {
		e, err := s.GetEmployee(ctx, 1000)
		require.NoError(t, err)
		e.Title = "CTO"

		again, _ := s.GetEmployee(ctx, 1000)
		assert.Equal(t, "Engineer", again.Title)
	})

	t.Run("update", func(t *testing.T) {
		e, _ := s.GetEmployee(ctx, 1000)
		e.Title = "Staff Engineer"
		require.NoError(t, s.UpdateEmployee(ctx, e))

		again, _ := s.GetEmployee(ctx, 1000)
		assert.Equal(t, "Staff Engineer", again.Title)

		err := s.UpdateEmployee(ctx, &hr.Employee{ID: 5, DepartmentID: d.ID})
		assert.True(t, appErrors.IsNotFound(err))
	})

	n, err := s.CountEmployees(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestHRStore_Attendance(t *testing.T) {
	ctx := context.Background()
	s := NewHRStore()
	d, _ := s.CreateDepartment(ctx, "HR")
	e, _ := s.CreateEmployee(ctx, "Ada", d.ID, "Engineer")

	now := time.Now()
	require.NoError(t, s.AppendAttendance(ctx, hr.AttendanceRecord{EmployeeID: e.ID, Status: hr.AttendanceIn, Timestamp: now}))
	require.NoError(t, s.AppendAttendance(ctx, hr.AttendanceRecord{EmployeeID: e.ID, Status: hr.AttendanceOut, Timestamp: now}))

	records, err := s.ListAttendance(ctx, e.ID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, hr.AttendanceIn, records[0].Status)
	assert.Equal(t, hr.AttendanceOut, records[1].Status)

	err = s.AppendAttendance(ctx, hr.AttendanceRecord{EmployeeID: 1, Status: hr.AttendanceIn})
	assert.True(t, appErrors.IsNotFound(err))
}

func TestHRStore_LeaveAndReviews(t *testing.T) {
	ctx := context.Background()
	s := NewHRStore()

	l, err := s.CreateLeave(ctx, &hr.LeaveRequest{EmployeeID: 1000, LeaveType: "sick", Days: 2, Status: hr.LeavePending})
	require.NoError(t, err)
	assert.Equal(t, 1, l.ID)

	l.Status = hr.LeaveApproved
	require.NoError(t, s.UpdateLeave(ctx, l))
	got, err := s.GetLeave(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, hr.LeaveApproved, got.Status)

	r, err := s.CreateReview(ctx, &hr.PerformanceReview{EmployeeID: 1000, Period: "2026-01", Score: 4, Status: hr.ReviewSubmitted})
	require.NoError(t, err)
	assert.Equal(t, 1, r.ID)

	_, err = s.GetReview(ctx, 2)
	assert.True(t, appErrors.IsNotFound(err))
	assert.True(t, appErrors.IsNotFound(s.UpdateReview(ctx, &hr.PerformanceReview{ID: 9})))
}

func TestHRStore_ConcurrentCreates(t *testing.T) {
	ctx := context.Background()
	s := NewHRStore()
	d, _ := s.CreateDepartment(ctx, "Engineering")

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = s.CreateEmployee(ctx, "worker", d.ID, "Engineer")
		}()
	}
	wg.Wait()

	list, err := s.ListEmployees(ctx)
	require.NoError(t, err)
	require.Len(t, list, 50)
	assert.Equal(t, 1000, list[0].ID)
	assert.Equal(t, 1049, list[49].ID)
}
