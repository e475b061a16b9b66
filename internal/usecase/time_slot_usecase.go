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
	ErrTimeSlotNotFound  = errors.New("time slot not found")
	ErrDuplicateTimeSlot = errors.New("time slot already exists for this doctor, date and start time")
	ErrInvalidDate       = errors.New("invalid date format, use YYYY-MM-DD")
)

type TimeSlotUsecase interface {
	List(ctx context.Context, userID uuid.UUID) (*dto.TimeSlotListResponse, error)
	GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*dto.TimeSlotResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTimeSlotRequest) (*dto.TimeSlotResponse, error)
	Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.UpdateTimeSlotRequest) (*dto.TimeSlotResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type timeSlotUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	timeSlotRepo     repository.TimeSlotRepository
	identityResolver service.IdentityResolver
	auditService     service.AuditService
}

func NewTimeSlotUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	timeSlotRepo repository.TimeSlotRepository,
	identityResolver service.IdentityResolver,
	auditService service.AuditService,
) TimeSlotUsecase {
	return &timeSlotUsecase{
		db:               db,
		log:              log,
		timeSlotRepo:     timeSlotRepo,
		identityResolver: identityResolver,
		auditService:     auditService,
	}
}

// List returns the caller's own slots. Non-doctor callers get an empty list.
func (u *timeSlotUsecase) List(ctx context.Context, userID uuid.UUID) (*dto.TimeSlotListResponse, error) {
	db := u.db.WithContext(ctx)

	identity, err := u.identityResolver.Resolve(db, userID)
	if err != nil {
		u.log.Warnf("Failed to resolve identity: %+v", err)
		return nil, err
	}
	if !identity.IsDoctor() {
		return &dto.TimeSlotListResponse{TimeSlots: []dto.TimeSlotResponse{}, Total: 0}, nil
	}

	slots, err := u.timeSlotRepo.FindByDoctorID(db, identity.Doctor.ID)
	if err != nil {
		u.log.Warnf("Failed to list time slots: %+v", err)
		return nil, err
	}

	return &dto.TimeSlotListResponse{
		TimeSlots: converter.TimeSlotsToResponses(slots),
		Total:     len(slots),
	}, nil
}

func (u *timeSlotUsecase) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*dto.TimeSlotResponse, error) {
	db := u.db.WithContext(ctx)

	identity, err := u.identityResolver.Resolve(db, userID)
	if err != nil {
		u.log.Warnf("Failed to resolve identity: %+v", err)
		return nil, err
	}

	slot, err := u.findOwned(db, identity, id)
	if err != nil {
		return nil, err
	}

	return converter.TimeSlotToResponse(slot), nil
}

func (u *timeSlotUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTimeSlotRequest) (*dto.TimeSlotResponse, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if err := validateTimeRange(req.StartTime, req.EndTime); err != nil {
		return nil, err
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	identity, err := u.identityResolver.Resolve(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to resolve identity: %+v", err)
		return nil, err
	}
	if !identity.IsDoctor() {
		return nil, ErrPermissionDenied
	}

	slot := &entity.TimeSlot{
		DoctorID:  identity.Doctor.ID,
		Date:      date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}

	if err := u.timeSlotRepo.Create(tx, slot); err != nil {
		if isDuplicateKeyError(err, "time_slots") {
			return nil, ErrDuplicateTimeSlot
		}
		u.log.Warnf("Failed to create time slot: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionTimeSlotCreate, "time_slot", slot.ID.String(), slot); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TimeSlotToResponse(slot), nil
}

func (u *timeSlotUsecase) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.UpdateTimeSlotRequest) (*dto.TimeSlotResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	identity, err := u.identityResolver.Resolve(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to resolve identity: %+v", err)
		return nil, err
	}

	slot, err := u.findOwned(tx, identity, id)
	if err != nil {
		return nil, err
	}

	oldValue := *slot

	if req.Date != "" {
		date, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, ErrInvalidDate
		}
		slot.Date = date
	}
	if req.StartTime != "" {
		slot.StartTime = req.StartTime
	}
	if req.EndTime != "" {
		slot.EndTime = req.EndTime
	}
	if err := validateTimeRange(slot.StartTime, slot.EndTime); err != nil {
		return nil, err
	}
	if req.IsBooked != nil {
		slot.IsBooked = req.IsBooked
	}

	if err := u.timeSlotRepo.Update(tx, slot); err != nil {
		if isDuplicateKeyError(err, "time_slots") {
			return nil, ErrDuplicateTimeSlot
		}
		u.log.Warnf("Failed to update time slot: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionTimeSlotUpdate, "time_slot", slot.ID.String(), oldValue, slot); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.TimeSlotToResponse(slot), nil
}

func (u *timeSlotUsecase) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	identity, err := u.identityResolver.Resolve(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to resolve identity: %+v", err)
		return err
	}

	slot, err := u.findOwned(tx, identity, id)
	if err != nil {
		return err
	}

	if _, err := u.timeSlotRepo.Delete(tx, slot.ID); err != nil {
		u.log.Warnf("Failed to delete time slot: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionTimeSlotDelete, "time_slot", slot.ID.String(), slot); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// findOwned loads a slot and checks it belongs to the calling doctor.
// Foreign slots read as not found.
func (u *timeSlotUsecase) findOwned(db *gorm.DB, identity *entity.Identity, id uuid.UUID) (*entity.TimeSlot, error) {
	if !identity.IsDoctor() {
		return nil, ErrTimeSlotNotFound
	}

	slot, err := u.timeSlotRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find time slot: %+v", err)
		return nil, err
	}
	if slot == nil || slot.DoctorID != identity.Doctor.ID {
		return nil, ErrTimeSlotNotFound
	}

	return slot, nil
}
