package usecase

import (
	"context"
	"errors"
	"time"

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
	ErrProfileNotFound      = errors.New("patient profile not found")
	ErrProfileAlreadyExists = errors.New("patient profile already exists for this user")
)

type PatientProfileUsecase interface {
	List(ctx context.Context, userID uuid.UUID) (*dto.PatientProfileListResponse, error)
	GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*dto.PatientProfileResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreatePatientProfileRequest) (*dto.PatientProfileResponse, error)
	Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error)
}

type patientProfileUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	profileRepo  repository.PatientProfileRepository
	auditService service.AuditService
}

func NewPatientProfileUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	profileRepo repository.PatientProfileRepository,
	auditService service.AuditService,
) PatientProfileUsecase {
	return &patientProfileUsecase{
		db:           db,
		log:          log,
		profileRepo:  profileRepo,
		auditService: auditService,
	}
}

// List returns at most the caller's own profile. Callers without one get an
// empty list.
func (u *patientProfileUsecase) List(ctx context.Context, userID uuid.UUID) (*dto.PatientProfileListResponse, error) {
	profile, err := u.profileRepo.FindByUserID(u.db.WithContext(ctx), userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}

	response := &dto.PatientProfileListResponse{Profiles: []dto.PatientProfileResponse{}, Total: 0}
	if profile != nil {
		response.Profiles = append(response.Profiles, *converter.PatientProfileToResponse(profile))
		response.Total = 1
	}

	return response, nil
}

func (u *patientProfileUsecase) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*dto.PatientProfileResponse, error) {
	profile, err := u.findOwned(u.db.WithContext(ctx), userID, id)
	if err != nil {
		return nil, err
	}

	return converter.PatientProfileToResponse(profile), nil
}

// Create attaches a patient profile to the calling user. A user holds at most
// one profile; the owner is never taken from the payload.
func (u *patientProfileUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreatePatientProfileRequest) (*dto.PatientProfileResponse, error) {
	dob, err := time.Parse("2006-01-02", req.DateOfBirth)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	existing, err := u.profileRepo.FindByUserID(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if existing != nil {
		return nil, ErrProfileAlreadyExists
	}

	profile := &entity.PatientProfile{
		UserID:      userID,
		DateOfBirth: dob,
		BloodType:   req.BloodType,
		Allergies:   req.Allergies,
	}

	if err := u.profileRepo.Create(tx, profile); err != nil {
		if isDuplicateKeyError(err, "user_id") {
			return nil, ErrProfileAlreadyExists
		}
		u.log.Warnf("Failed to create patient profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionProfileCreate, "patient_profile", profile.ID.String(), profile); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientProfileToResponse(profile), nil
}

func (u *patientProfileUsecase) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.UpdatePatientProfileRequest) (*dto.PatientProfileResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	profile, err := u.findOwned(tx, userID, id)
	if err != nil {
		return nil, err
	}

	oldValue := *profile

	if req.BloodType != nil {
		profile.BloodType = *req.BloodType
	}
	if req.Allergies != nil {
		profile.Allergies = *req.Allergies
	}

	if err := u.profileRepo.Update(tx, profile); err != nil {
		u.log.Warnf("Failed to update patient profile: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionProfileUpdate, "patient_profile", profile.ID.String(), oldValue, profile); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.PatientProfileToResponse(profile), nil
}

// findOwned loads a profile and checks the caller owns it. Foreign profiles
// read as not found.
func (u *patientProfileUsecase) findOwned(db *gorm.DB, userID uuid.UUID, id uuid.UUID) (*entity.PatientProfile, error) {
	profile, err := u.profileRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient profile: %+v", err)
		return nil, err
	}
	if profile == nil || profile.UserID != userID {
		return nil, ErrProfileNotFound
	}

	return profile, nil
}
