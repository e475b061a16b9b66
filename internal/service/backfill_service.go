package service

import (
	"context"

	"doctor-booking-api/internal/domain/entity"
	"doctor-booking-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// BackfillService assigns the sentinel doctor to legacy appointments that
// have no doctor reference. Re-running it is a no-op once no doctor-less
// rows remain, so it is safe to call on every startup.
type BackfillService struct {
	db              *gorm.DB
	log             *logrus.Logger
	doctorRepo      repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	auditService    AuditService
}

func NewBackfillService(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	appointmentRepo repository.AppointmentRepository,
	auditService AuditService,
) *BackfillService {
	return &BackfillService{
		db:              db,
		log:             log,
		doctorRepo:      doctorRepo,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
	}
}

// Run backfills the sentinel doctor onto doctor-less appointments and
// returns the number of rows updated.
func (s *BackfillService) Run(ctx context.Context) (int64, error) {
	tx := s.db.WithContext(ctx).Begin()
	defer tx.Rollback()

	count, err := s.appointmentRepo.CountWithoutDoctor(tx)
	if err != nil {
		s.log.Warnf("Failed to count doctor-less appointments: %+v", err)
		return 0, err
	}
	if count == 0 {
		return 0, nil
	}

	doctor, err := s.doctorRepo.FindByName(tx, entity.SentinelDoctorName)
	if err != nil {
		s.log.Warnf("Failed to look up sentinel doctor: %+v", err)
		return 0, err
	}
	if doctor == nil {
		active := true
		doctor = &entity.Doctor{
			Name:           entity.SentinelDoctorName,
			Specialization: "General Medicine",
			IsActive:       &active,
			Biography:      "Automatically created system doctor",
		}
		if err := s.doctorRepo.Create(tx, doctor); err != nil {
			s.log.Warnf("Failed to create sentinel doctor: %+v", err)
			return 0, err
		}
	}

	updated, err := s.appointmentRepo.AssignDoctorWhereMissing(tx, doctor.ID)
	if err != nil {
		s.log.Warnf("Failed to backfill appointments: %+v", err)
		return 0, err
	}

	if err := s.auditService.LogUpdate(ctx, tx, nil, entity.AuditActionDoctorBackfill, "appointment", "*", nil, map[string]interface{}{
		"doctor_id": doctor.ID.String(),
		"updated":   updated,
	}); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
	}

	if err := tx.Commit().Error; err != nil {
		s.log.Warnf("Failed commit transaction: %+v", err)
		return 0, err
	}

	s.log.Infof("Backfilled %d appointments with sentinel doctor %s", updated, doctor.ID)
	return updated, nil
}
