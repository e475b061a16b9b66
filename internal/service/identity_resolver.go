package service

import (
	"doctor-booking-api/internal/domain/entity"
	"doctor-booking-api/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// IdentityResolver resolves an authenticated user into a role-tagged identity
// for the current request: patient profile, doctor record, or neither.
type IdentityResolver interface {
	Resolve(db *gorm.DB, userID uuid.UUID) (*entity.Identity, error)
}

type identityResolver struct {
	patientProfileRepo repository.PatientProfileRepository
	doctorRepo         repository.DoctorRepository
}

func NewIdentityResolver(
	patientProfileRepo repository.PatientProfileRepository,
	doctorRepo repository.DoctorRepository,
) IdentityResolver {
	return &identityResolver{
		patientProfileRepo: patientProfileRepo,
		doctorRepo:         doctorRepo,
	}
}

// Resolve looks up the caller's role records. The patient profile takes
// precedence when a user somehow holds both.
func (r *identityResolver) Resolve(db *gorm.DB, userID uuid.UUID) (*entity.Identity, error) {
	profile, err := r.patientProfileRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		return &entity.Identity{
			UserID:  userID,
			Kind:    entity.IdentityPatient,
			Patient: profile,
		}, nil
	}

	doctor, err := r.doctorRepo.FindByUserID(db, userID)
	if err != nil {
		return nil, err
	}
	if doctor != nil {
		return &entity.Identity{
			UserID: userID,
			Kind:   entity.IdentityDoctor,
			Doctor: doctor,
		}, nil
	}

	return &entity.Identity{
		UserID: userID,
		Kind:   entity.IdentityNeither,
	}, nil
}
