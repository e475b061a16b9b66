package usecase

import (
	"context"
	"errors"

	"doctor-booking-api/internal/converter"
	"doctor-booking-api/internal/delivery/dto"
	"doctor-booking-api/internal/domain/entity"
	"doctor-booking-api/internal/domain/repository"
	"doctor-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAvailabilityNotFound = errors.New("availability not found")
	ErrInvalidTimeRange     = errors.New("start_time must be before end_time")
)

type AvailabilityUsecase interface {
	ListByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, id int) error
}

type availabilityUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	availabilityRepo repository.AvailabilityRepository
	doctorRepo       repository.DoctorRepository
	identityResolver service.IdentityResolver
}

func NewAvailabilityUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	availabilityRepo repository.AvailabilityRepository,
	doctorRepo repository.DoctorRepository,
	identityResolver service.IdentityResolver,
) AvailabilityUsecase {
	return &availabilityUsecase{
		db:               db,
		log:              log,
		availabilityRepo: availabilityRepo,
		doctorRepo:       doctorRepo,
		identityResolver: identityResolver,
	}
}

// ListByDoctor returns a doctor's weekly recurring schedule. Public.
func (u *availabilityUsecase) ListByDoctor(ctx context.Context, doctorID uuid.UUID) (*dto.AvailabilityListResponse, error) {
	db := u.db.WithContext(ctx)

	doctor, err := u.doctorRepo.FindByID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	availabilities, err := u.availabilityRepo.FindByDoctorID(db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to list availabilities: %+v", err)
		return nil, err
	}

	return &dto.AvailabilityListResponse{
		Availabilities: converter.AvailabilitiesToResponses(availabilities),
		Total:          len(availabilities),
	}, nil
}

func (u *availabilityUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateAvailabilityRequest) (*dto.AvailabilityResponse, error) {
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	db := u.db.WithContext(ctx)

	identity, err := u.identityResolver.Resolve(db, userID)
	if err != nil {
		u.log.Warnf("Failed to resolve identity: %+v", err)
		return nil, err
	}
	if !identity.IsDoctor() {
		return nil, ErrPermissionDenied
	}

	availability := &entity.Availability{
		DoctorID:  identity.Doctor.ID,
		DayOfWeek: req.DayOfWeek,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := u.availabilityRepo.Create(db, availability); err != nil {
		u.log.Warnf("Failed to create availability: %+v", err)
		return nil, err
	}

	return converter.AvailabilityToResponse(availability), nil
}

func (u *availabilityUsecase) Delete(ctx context.Context, userID uuid.UUID, id int) error {
	db := u.db.WithContext(ctx)

	identity, err := u.identityResolver.Resolve(db, userID)
	if err != nil {
		u.log.Warnf("Failed to resolve identity: %+v", err)
		return err
	}
	if !identity.IsDoctor() {
		return ErrAvailabilityNotFound
	}

	availability, err := u.availabilityRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find availability: %+v", err)
		return err
	}
	if availability == nil || availability.DoctorID != identity.Doctor.ID {
		return ErrAvailabilityNotFound
	}

	if _, err := u.availabilityRepo.Delete(db, id); err != nil {
		u.log.Warnf("Failed to delete availability: %+v", err)
		return err
	}

	return nil
}

// validateTimeRange checks HH:MM strings order lexicographically, which matches
// chronological order for zero-padded 24h times.
func validateTimeRange(start, end string) error {
	if start >= end {
		return ErrInvalidTimeRange
	}
	return nil
}
