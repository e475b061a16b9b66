package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs
//
// The profile owner is never part of a request payload; it is always derived
// from the authenticated session.

type CreatePatientProfileRequest struct {
	DateOfBirth string `json:"date_of_birth" validate:"required"` // Format: YYYY-MM-DD
	BloodType   string `json:"blood_type" validate:"omitempty,max=5"`
	Allergies   string `json:"allergies" validate:"omitempty"`
}

type UpdatePatientProfileRequest struct {
	BloodType *string `json:"blood_type" validate:"omitempty,max=5"`
	Allergies *string `json:"allergies" validate:"omitempty"`
}

// Response DTOs

type PatientProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	FullName    string    `json:"full_name,omitempty"`
	Email       string    `json:"email,omitempty"`
	DateOfBirth string    `json:"date_of_birth"`
	BloodType   string    `json:"blood_type,omitempty"`
	Allergies   string    `json:"allergies,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type PatientProfileListResponse struct {
	Profiles []PatientProfileResponse `json:"profiles"`
	Total    int                      `json:"total"`
}
