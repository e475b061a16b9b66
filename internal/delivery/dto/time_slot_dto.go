package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs
//
// The owning doctor is never part of a request payload; it is always derived
// from the authenticated session.

type CreateTimeSlotRequest struct {
	Date      string `json:"date" validate:"required"`       // Format: YYYY-MM-DD
	StartTime string `json:"start_time" validate:"required"` // Format: HH:MM
	EndTime   string `json:"end_time" validate:"required"`   // Format: HH:MM
}

type UpdateTimeSlotRequest struct {
	Date      string `json:"date" validate:"omitempty"`
	StartTime string `json:"start_time" validate:"omitempty"`
	EndTime   string `json:"end_time" validate:"omitempty"`
	IsBooked  *bool  `json:"is_booked" validate:"omitempty"`
}

// Response DTOs

type TimeSlotResponse struct {
	ID        uuid.UUID `json:"id"`
	DoctorID  uuid.UUID `json:"doctor_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	IsBooked  *bool     `json:"is_booked"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TimeSlotListResponse struct {
	TimeSlots []TimeSlotResponse `json:"time_slots"`
	Total     int                `json:"total"`
}
