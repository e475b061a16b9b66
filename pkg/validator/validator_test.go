package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=8"`
	Status   string `validate:"omitempty,oneof=booked completed cancelled"`
	Day      int    `validate:"omitempty,gte=1,lte=7"`
}

func TestValidate_PassesValidStruct(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&sampleRequest{
		Email:    "user@example.com",
		Password: "longenough",
		Status:   "booked",
		Day:      3,
	})

	assert.NoError(t, err)
}

func TestFormatValidationErrors_MapsTags(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&sampleRequest{
		Email:    "not-an-email",
		Password: "short",
		Status:   "postponed",
		Day:      9,
	})
	require.Error(t, err)

	formatted := cv.FormatValidationErrors(err)

	assert.Equal(t, "Email must be a valid email address", formatted["Email"])
	assert.Equal(t, "Password must be at least 8 characters", formatted["Password"])
	assert.Equal(t, "Status must be one of: booked completed cancelled", formatted["Status"])
	assert.Equal(t, "Day must be less than or equal to 7", formatted["Day"])
}

func TestFormatValidationErrors_Required(t *testing.T) {
	cv := NewValidator()

	err := cv.Validate(&sampleRequest{})
	require.Error(t, err)

	formatted := cv.FormatValidationErrors(err)
	assert.Equal(t, "Email is required", formatted["Email"])
	assert.Equal(t, "Password is required", formatted["Password"])
}
