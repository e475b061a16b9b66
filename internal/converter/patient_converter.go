package converter

import (
	"doctor-booking-api/internal/delivery/dto"
	"doctor-booking-api/internal/domain/entity"

	"github.com/google/uuid"
)

// PatientProfileToResponse converts a PatientProfile entity to a response
// DTO. User fields are included when the relationship is loaded.
func PatientProfileToResponse(profile *entity.PatientProfile) *dto.PatientProfileResponse {
	if profile == nil {
		return nil
	}

	response := &dto.PatientProfileResponse{
		ID:          profile.ID,
		UserID:      profile.UserID,
		DateOfBirth: profile.DateOfBirth.Format("2006-01-02"),
		BloodType:   profile.BloodType,
		Allergies:   profile.Allergies,
		CreatedAt:   profile.CreatedAt,
		UpdatedAt:   profile.UpdatedAt,
	}

	if profile.User.ID != uuid.Nil {
		response.FullName = profile.User.FullName
		response.Email = profile.User.Email
	}

	return response
}
