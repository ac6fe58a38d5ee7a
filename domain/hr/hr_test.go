package hr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAttendanceStatus(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"in", "in", true},
		{"OUT", "out", true},
		{"In", "in", true},
		{" in ", " in ", false},
		{"maybe", "maybe", false},
		{"", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeAttendanceStatus(tt.in)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}

func TestValidMonth(t *testing.T) {
	assert.True(t, ValidMonth("2026-01"))
	assert.True(t, ValidMonth("2025-12"))
	assert.False(t, ValidMonth("2026-1"))
	assert.False(t, ValidMonth("202601"))
	assert.False(t, ValidMonth("2026/01"))
	assert.False(t, ValidMonth("2026-011"))
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2026-03-01"))
	assert.False(t, ValidDate("2026-13-01"))
	assert.False(t, ValidDate("01/03/2026"))
}

func TestLeaveRequestDecided(t *testing.T) {
	l := &LeaveRequest{Status: LeavePending}
	assert.False(t, l.Decided())
	l.Status = LeaveApproved
	assert.True(t, l.Decided())
}
