package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Specialization  string `json:"specialization" validate:"required,max=100"`
	ConsultationFee string `json:"consultation_fee" validate:"omitempty"`
	Biography       string `json:"biography" validate:"omitempty"`
}

type UpdateDoctorRequest struct {
	Name            string  `json:"name" validate:"omitempty,min=2,max=100"`
	Specialization  string  `json:"specialization" validate:"omitempty,max=100"`
	ConsultationFee string  `json:"consultation_fee" validate:"omitempty"`
	Biography       *string `json:"biography" validate:"omitempty"`
	IsActive        *bool   `json:"is_active" validate:"omitempty"`
}

// Response DTOs

type DoctorResponse struct {
	ID              uuid.UUID  `json:"id"`
	UserID          *uuid.UUID `json:"user_id,omitempty"`
	Name            string     `json:"name"`
	Specialization  string     `json:"specialization"`
	IsActive        *bool      `json:"is_active"`
	ConsultationFee string     `json:"consultation_fee"`
	Biography       string     `json:"biography,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
