package service

import (
	"testing"

	"doctor-booking-api/internal/domain/entity"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return db, mock
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

type doctorStore struct {
	doctors []*entity.Doctor
}

func (s *doctorStore) Create(db *gorm.DB, doctor *entity.Doctor) error {
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	s.doctors = append(s.doctors, doctor)
	return nil
}

func (s *doctorStore) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	for _, d := range s.doctors {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (s *doctorStore) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	for _, d := range s.doctors {
		if d.UserID != nil && *d.UserID == userID {
			return d, nil
		}
	}
	return nil, nil
}

func (s *doctorStore) FindByName(db *gorm.DB, name string) (*entity.Doctor, error) {
	for _, d := range s.doctors {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, nil
}

func (s *doctorStore) FindAllActive(db *gorm.DB) ([]entity.Doctor, error) {
	return nil, nil
}

func (s *doctorStore) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return nil
}

func (s *doctorStore) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}

type profileStore struct {
	profiles []*entity.PatientProfile
}

func (s *profileStore) Create(db *gorm.DB, profile *entity.PatientProfile) error {
	s.profiles = append(s.profiles, profile)
	return nil
}

func (s *profileStore) FindByID(db *gorm.DB, id uuid.UUID) (*entity.PatientProfile, error) {
	for _, p := range s.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (s *profileStore) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	for _, p := range s.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (s *profileStore) Update(db *gorm.DB, profile *entity.PatientProfile) error {
	return nil
}

type appointmentStore struct {
	appointments []*entity.Appointment
	assignCalls  int
}

func (s *appointmentStore) Create(db *gorm.DB, appointment *entity.Appointment) error {
	s.appointments = append(s.appointments, appointment)
	return nil
}

func (s *appointmentStore) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	return nil, nil
}

func (s *appointmentStore) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	return nil, nil
}

func (s *appointmentStore) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	return nil, nil
}

func (s *appointmentStore) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return nil
}

func (s *appointmentStore) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	return 0, nil
}

func (s *appointmentStore) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	return 0, nil
}

func (s *appointmentStore) CountWithoutDoctor(db *gorm.DB) (int64, error) {
	var n int64
	for _, a := range s.appointments {
		if a.DoctorID == nil {
			n++
		}
	}
	return n, nil
}

func (s *appointmentStore) AssignDoctorWhereMissing(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	s.assignCalls++
	var n int64
	for _, a := range s.appointments {
		if a.DoctorID == nil {
			id := doctorID
			a.DoctorID = &id
			n++
		}
	}
	return n, nil
}

type auditStore struct {
	entries []*entity.AuditLog
}

func (s *auditStore) Create(db *gorm.DB, log *entity.AuditLog) error {
	s.entries = append(s.entries, log)
	return nil
}

func (s *auditStore) FindAll(db *gorm.DB, limit, offset int) ([]entity.AuditLog, int64, error) {
	return nil, 0, nil
}
