package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type leavePayload struct {
	EmployeeID int    `json:"employee_id" validate:"gt=0"`
	LeaveType  string `json:"leave_type,omitempty" validate:"required,oneof=annual sick personal"`
	Days       int    `json:"days" validate:"min=1,max=30"`
}

type untaggedPayload struct {
	FinalRating string `validate:"required"`
}

type pointerPayload struct {
	Month *string `json:"month" validate:"required"`
}

func TestValidateStruct(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		assert.NoError(t, ValidateStruct(leavePayload{EmployeeID: 1000, LeaveType: "sick", Days: 2}))
	})

	t.Run("collects every field error", func(t *testing.T) {
		err := ValidateStruct(leavePayload{LeaveType: "holiday", Days: 40})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "employee_id must be greater than 0")
		assert.Contains(t, err.Error(), "leave_type must be one of: annual sick personal")
		assert.Contains(t, err.Error(), "days must be at most 30")
	})

	t.Run("required field uses json name", func(t *testing.T) {
		err := ValidateStruct(leavePayload{EmployeeID: 1, Days: 1})
		assert.EqualError(t, err, "leave_type is required")
	})

	t.Run("field without json tag", func(t *testing.T) {
		err := ValidateStruct(untaggedPayload{})
		assert.EqualError(t, err, "finalrating is required")
	})

	t.Run("required pointer checks presence only", func(t *testing.T) {
		empty := ""
		assert.NoError(t, ValidateStruct(pointerPayload{Month: &empty}))
		assert.EqualError(t, ValidateStruct(pointerPayload{}), "month is required")
	})
}
