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
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrProfileRequired     = errors.New("profile required")
	ErrPermissionDenied    = errors.New("permission denied")
	ErrDoctorNotFound      = errors.New("doctor not found")
	ErrPatientNotFound     = errors.New("patient not found")
	ErrDoctorRequired      = errors.New("doctor_id is required")
	ErrPatientRequired     = errors.New("patient_id is required")
	ErrInvalidDateTime     = errors.New("invalid date_time format, use RFC 3339")
	ErrInvalidStatus       = errors.New("invalid appointment status")
)

type AppointmentUsecase interface {
	List(ctx context.Context, userID *uuid.UUID) (*dto.AppointmentListResponse, error)
	GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*dto.AppointmentResponse, error)
	Create(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	UpdateStatus(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type appointmentUsecase struct {
	db               *gorm.DB
	log              *logrus.Logger
	appointmentRepo  repository.AppointmentRepository
	doctorRepo       repository.DoctorRepository
	patientRepo      repository.PatientProfileRepository
	identityResolver service.IdentityResolver
	auditService     service.AuditService
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientProfileRepository,
	identityResolver service.IdentityResolver,
	auditService service.AuditService,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:               db,
		log:              log,
		appointmentRepo:  appointmentRepo,
		doctorRepo:       doctorRepo,
		patientRepo:      patientRepo,
		identityResolver: identityResolver,
		auditService:     auditService,
	}
}

// List returns the caller's own appointments. Anonymous callers and callers
// without a role profile get an empty list, never an error.
func (u *appointmentUsecase) List(ctx context.Context, userID *uuid.UUID) (*dto.AppointmentListResponse, error) {
	empty := &dto.AppointmentListResponse{Appointments: []dto.AppointmentResponse{}, Total: 0}

	if userID == nil {
		return empty, nil
	}

	db := u.db.WithContext(ctx)
	identity, err := u.identityResolver.Resolve(db, *userID)
	if err != nil {
		u.log.Warnf("Failed to resolve identity: %+v", err)
		return nil, err
	}

	var appointments []entity.Appointment
	switch {
	case identity.IsPatient():
		appointments, err = u.appointmentRepo.FindByPatientID(db, identity.Patient.ID)
	case identity.IsDoctor():
		appointments, err = u.appointmentRepo.FindByDoctorID(db, identity.Doctor.ID)
	default:
		return empty, nil
	}
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, userID uuid.UUID, id uuid.UUID) (*dto.AppointmentResponse, error) {
	db := u.db.WithContext(ctx)

	identity, err := u.identityResolver.Resolve(db, userID)
	if err != nil {
		u.log.Warnf("Failed to resolve identity: %+v", err)
		return nil, err
	}

	appointment, err := u.findVisible(db, identity, id)
	if err != nil {
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	dateTime, err := time.Parse(time.RFC3339, req.DateTime)
	if err != nil {
		return nil, ErrInvalidDateTime
	}

	duration := req.DurationMinutes
	if duration == 0 {
		duration = entity.DefaultAppointmentDuration
	}

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	identity, err := u.identityResolver.Resolve(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to resolve identity: %+v", err)
		return nil, err
	}

	appointment := &entity.Appointment{
		DateTime:        dateTime,
		DurationMinutes: duration,
		Notes:           req.Notes,
		Status:          entity.AppointmentStatusBooked,
	}

	// Ownership is always taken from the caller's identity, never the payload.
	switch {
	case identity.IsPatient():
		appointment.PatientID = identity.Patient.ID
		if req.DoctorID == nil {
			return nil, ErrDoctorRequired
		}
		doctor, err := u.doctorRepo.FindByID(tx, *req.DoctorID)
		if err != nil {
			u.log.Warnf("Failed to find doctor: %+v", err)
			return nil, err
		}
		if doctor == nil || doctor.IsActive == nil || !*doctor.IsActive {
			return nil, ErrDoctorNotFound
		}
		appointment.DoctorID = &doctor.ID
	case identity.IsDoctor():
		appointment.DoctorID = &identity.Doctor.ID
		if req.PatientID == nil {
			return nil, ErrPatientRequired
		}
		patient, err := u.patientRepo.FindByID(tx, *req.PatientID)
		if err != nil {
			u.log.Warnf("Failed to find patient: %+v", err)
			return nil, err
		}
		if patient == nil {
			return nil, ErrPatientNotFound
		}
		appointment.PatientID = patient.ID
	default:
		return nil, ErrProfileRequired
	}

	if err := u.appointmentRepo.Create(tx, appointment); err != nil {
		if isForeignKeyError(err, "doctor") {
			return nil, ErrDoctorNotFound
		}
		if isForeignKeyError(err, "patient") {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogCreate(ctx, tx, &userID, entity.AuditActionAppointmentCreate, "appointment", appointment.ID.String(), appointment); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Update(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	identity, err := u.identityResolver.Resolve(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to resolve identity: %+v", err)
		return nil, err
	}

	appointment, err := u.findVisible(tx, identity, id)
	if err != nil {
		return nil, err
	}

	oldValue := *appointment

	if req.DateTime != "" {
		dateTime, err := time.Parse(time.RFC3339, req.DateTime)
		if err != nil {
			return nil, ErrInvalidDateTime
		}
		appointment.DateTime = dateTime
	}
	if req.DurationMinutes != nil {
		appointment.DurationMinutes = *req.DurationMinutes
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	if err := u.appointmentRepo.Update(tx, appointment); err != nil {
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentUpdate, "appointment", appointment.ID.String(), oldValue, appointment); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) UpdateStatus(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.UpdateAppointmentStatusRequest) (*dto.AppointmentResponse, error) {
	if !entity.ValidStatus(req.Status) {
		return nil, ErrInvalidStatus
	}
	status := entity.AppointmentStatus(req.Status)

	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	identity, err := u.identityResolver.Resolve(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to resolve identity: %+v", err)
		return nil, err
	}

	appointment, err := u.findVisible(tx, identity, id)
	if err != nil {
		return nil, err
	}

	// Patients may only cancel; doctors may complete or cancel. Nobody can
	// revert an appointment to booked.
	switch {
	case identity.IsPatient() && status != entity.AppointmentStatusCancelled:
		return nil, ErrPermissionDenied
	case identity.IsDoctor() && status == entity.AppointmentStatusBooked:
		return nil, ErrPermissionDenied
	}

	oldStatus := appointment.Status
	appointment.Status = status

	if _, err := u.appointmentRepo.UpdateStatus(tx, appointment.ID, status); err != nil {
		u.log.Warnf("Failed to update appointment status: %+v", err)
		return nil, err
	}

	if err := u.auditService.LogUpdate(ctx, tx, &userID, entity.AuditActionAppointmentStatus, "appointment", appointment.ID.String(),
		string(oldStatus), string(status)); err != nil {
		return nil, err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) Delete(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	tx := u.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	identity, err := u.identityResolver.Resolve(tx, userID)
	if err != nil {
		u.log.Warnf("Failed to resolve identity: %+v", err)
		return err
	}

	appointment, err := u.findVisible(tx, identity, id)
	if err != nil {
		return err
	}

	if _, err := u.appointmentRepo.Delete(tx, appointment.ID); err != nil {
		u.log.Warnf("Failed to delete appointment: %+v", err)
		return err
	}

	if err := u.auditService.LogDelete(ctx, tx, &userID, entity.AuditActionAppointmentDelete, "appointment", appointment.ID.String(), appointment); err != nil {
		return err
	}

	if err := tx.Commit().Error; err != nil {
		u.log.Warnf("Failed commit transaction: %+v", err)
		return err
	}

	return nil
}

// findVisible loads an appointment and enforces caller visibility. Records
// outside the caller's scope read as not found so IDs are not leaked.
func (u *appointmentUsecase) findVisible(db *gorm.DB, identity *entity.Identity, id uuid.UUID) (*entity.Appointment, error) {
	appointment, err := u.appointmentRepo.FindByID(db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	switch {
	case identity.IsPatient() && appointment.PatientID == identity.Patient.ID:
		return appointment, nil
	case identity.IsDoctor() && appointment.DoctorID != nil && *appointment.DoctorID == identity.Doctor.ID:
		return appointment, nil
	}

	return nil, ErrAppointmentNotFound
}
