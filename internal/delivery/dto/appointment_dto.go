package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs
//
// Ownership fields are server-assigned: a patient caller can never set
// patient_id and a doctor caller can never set doctor_id. Status is only
// settable through the dedicated status path.

type CreateAppointmentRequest struct {
	DoctorID        *uuid.UUID `json:"doctor_id" validate:"omitempty"`  // required for patient callers
	PatientID       *uuid.UUID `json:"patient_id" validate:"omitempty"` // required for doctor callers
	DateTime        string     `json:"date_time" validate:"required"`   // Format: RFC 3339
	DurationMinutes int        `json:"duration_minutes" validate:"omitempty,gte=5,lte=480"`
	Notes           string     `json:"notes" validate:"omitempty"`
}

type UpdateAppointmentRequest struct {
	DateTime        string  `json:"date_time" validate:"omitempty"`
	DurationMinutes *int    `json:"duration_minutes" validate:"omitempty,gte=5,lte=480"`
	Notes           *string `json:"notes" validate:"omitempty"`
}

type UpdateAppointmentStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=booked completed cancelled"`
}

// ProfileRequiredDetail names the profile-creation endpoints so a caller
// without a role profile can self-remediate.
type ProfileRequiredDetail struct {
	Detail            string `json:"detail"`
	PatientProfileURL string `json:"patient_profile_url"`
	DoctorProfileURL  string `json:"doctor_profile_url"`
}

// Response DTOs

type AppointmentResponse struct {
	ID              uuid.UUID               `json:"id"`
	DoctorID        *uuid.UUID              `json:"doctor_id,omitempty"`
	Doctor          *DoctorResponse         `json:"doctor,omitempty"`
	PatientID       uuid.UUID               `json:"patient_id"`
	Patient         *PatientProfileResponse `json:"patient,omitempty"`
	DateTime        time.Time               `json:"date_time"`
	DurationMinutes int                     `json:"duration_minutes"`
	Notes           string                  `json:"notes,omitempty"`
	Status          string                  `json:"status"`
	CreatedAt       time.Time               `json:"created_at"`
	UpdatedAt       time.Time               `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
