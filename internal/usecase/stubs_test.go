package usecase

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

// newTestDB returns a gorm handle backed by sqlmock. Transactions must be
// declared with ExpectBegin/ExpectCommit on the returned mock.
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

func boolPtr(b bool) *bool { return &b }

// doctorRepoStub is an in-memory DoctorRepository.
type doctorRepoStub struct {
	doctors   []*entity.Doctor
	createErr error
}

func (s *doctorRepoStub) Create(db *gorm.DB, doctor *entity.Doctor) error {
	if s.createErr != nil {
		return s.createErr
	}
	if doctor.ID == uuid.Nil {
		doctor.ID = uuid.New()
	}
	s.doctors = append(s.doctors, doctor)
	return nil
}

func (s *doctorRepoStub) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Doctor, error) {
	for _, d := range s.doctors {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, nil
}

func (s *doctorRepoStub) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.Doctor, error) {
	for _, d := range s.doctors {
		if d.UserID != nil && *d.UserID == userID {
			return d, nil
		}
	}
	return nil, nil
}

func (s *doctorRepoStub) FindByName(db *gorm.DB, name string) (*entity.Doctor, error) {
	for _, d := range s.doctors {
		if d.Name == name {
			return d, nil
		}
	}
	return nil, nil
}

func (s *doctorRepoStub) FindAllActive(db *gorm.DB) ([]entity.Doctor, error) {
	var out []entity.Doctor
	for _, d := range s.doctors {
		if d.IsActive != nil && *d.IsActive {
			out = append(out, *d)
		}
	}
	return out, nil
}

func (s *doctorRepoStub) Update(db *gorm.DB, doctor *entity.Doctor) error {
	return nil
}

func (s *doctorRepoStub) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	return 1, nil
}

// patientProfileRepoStub is an in-memory PatientProfileRepository.
type patientProfileRepoStub struct {
	profiles  []*entity.PatientProfile
	createErr error
}

func (s *patientProfileRepoStub) Create(db *gorm.DB, profile *entity.PatientProfile) error {
	if s.createErr != nil {
		return s.createErr
	}
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	s.profiles = append(s.profiles, profile)
	return nil
}

func (s *patientProfileRepoStub) FindByID(db *gorm.DB, id uuid.UUID) (*entity.PatientProfile, error) {
	for _, p := range s.profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (s *patientProfileRepoStub) FindByUserID(db *gorm.DB, userID uuid.UUID) (*entity.PatientProfile, error) {
	for _, p := range s.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (s *patientProfileRepoStub) Update(db *gorm.DB, profile *entity.PatientProfile) error {
	return nil
}

// appointmentRepoStub is an in-memory AppointmentRepository.
type appointmentRepoStub struct {
	appointments []*entity.Appointment
	created      []*entity.Appointment
	assigned     []uuid.UUID
}

func (s *appointmentRepoStub) Create(db *gorm.DB, appointment *entity.Appointment) error {
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	s.appointments = append(s.appointments, appointment)
	s.created = append(s.created, appointment)
	return nil
}

func (s *appointmentRepoStub) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	for _, a := range s.appointments {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (s *appointmentRepoStub) FindByPatientID(db *gorm.DB, patientID uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range s.appointments {
		if a.PatientID == patientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *appointmentRepoStub) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range s.appointments {
		if a.DoctorID != nil && *a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *appointmentRepoStub) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return nil
}

func (s *appointmentRepoStub) UpdateStatus(db *gorm.DB, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	for _, a := range s.appointments {
		if a.ID == id {
			a.Status = status
			return 1, nil
		}
	}
	return 0, nil
}

func (s *appointmentRepoStub) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	for i, a := range s.appointments {
		if a.ID == id {
			s.appointments = append(s.appointments[:i], s.appointments[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

func (s *appointmentRepoStub) CountWithoutDoctor(db *gorm.DB) (int64, error) {
	var n int64
	for _, a := range s.appointments {
		if a.DoctorID == nil {
			n++
		}
	}
	return n, nil
}

func (s *appointmentRepoStub) AssignDoctorWhereMissing(db *gorm.DB, doctorID uuid.UUID) (int64, error) {
	var n int64
	for _, a := range s.appointments {
		if a.DoctorID == nil {
			id := doctorID
			a.DoctorID = &id
			n++
		}
	}
	s.assigned = append(s.assigned, doctorID)
	return n, nil
}

// timeSlotRepoStub is an in-memory TimeSlotRepository.
type timeSlotRepoStub struct {
	slots     []*entity.TimeSlot
	createErr error
}

func (s *timeSlotRepoStub) Create(db *gorm.DB, slot *entity.TimeSlot) error {
	if s.createErr != nil {
		return s.createErr
	}
	if slot.ID == uuid.Nil {
		slot.ID = uuid.New()
	}
	s.slots = append(s.slots, slot)
	return nil
}

func (s *timeSlotRepoStub) FindByID(db *gorm.DB, id uuid.UUID) (*entity.TimeSlot, error) {
	for _, slot := range s.slots {
		if slot.ID == id {
			return slot, nil
		}
	}
	return nil, nil
}

func (s *timeSlotRepoStub) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.TimeSlot, error) {
	var out []entity.TimeSlot
	for _, slot := range s.slots {
		if slot.DoctorID == doctorID {
			out = append(out, *slot)
		}
	}
	return out, nil
}

func (s *timeSlotRepoStub) Update(db *gorm.DB, slot *entity.TimeSlot) error {
	return nil
}

func (s *timeSlotRepoStub) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	for i, slot := range s.slots {
		if slot.ID == id {
			s.slots = append(s.slots[:i], s.slots[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// availabilityRepoStub is an in-memory AvailabilityRepository.
type availabilityRepoStub struct {
	availabilities []*entity.Availability
	nextID         int
}

func (s *availabilityRepoStub) Create(db *gorm.DB, availability *entity.Availability) error {
	s.nextID++
	availability.ID = s.nextID
	s.availabilities = append(s.availabilities, availability)
	return nil
}

func (s *availabilityRepoStub) FindByID(db *gorm.DB, id int) (*entity.Availability, error) {
	for _, a := range s.availabilities {
		if a.ID == id {
			return a, nil
		}
	}
	return nil, nil
}

func (s *availabilityRepoStub) FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.Availability, error) {
	var out []entity.Availability
	for _, a := range s.availabilities {
		if a.DoctorID == doctorID {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (s *availabilityRepoStub) Delete(db *gorm.DB, id int) (int64, error) {
	for i, a := range s.availabilities {
		if a.ID == id {
			s.availabilities = append(s.availabilities[:i], s.availabilities[i+1:]...)
			return 1, nil
		}
	}
	return 0, nil
}

// userRepoStub is an in-memory UserRepository.
type userRepoStub struct {
	users     []*entity.User
	createErr error
}

func (s *userRepoStub) Create(db *gorm.DB, user *entity.User) error {
	if s.createErr != nil {
		return s.createErr
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	s.users = append(s.users, user)
	return nil
}

func (s *userRepoStub) FindByID(db *gorm.DB, id uuid.UUID) (*entity.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (s *userRepoStub) FindByEmail(db *gorm.DB, email string) (*entity.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (s *userRepoStub) Update(db *gorm.DB, user *entity.User) error {
	return nil
}

func (s *userRepoStub) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	return 1, nil
}

// roleRepoStub serves the seeded role rows.
type roleRepoStub struct{}

func (s *roleRepoStub) FindByID(db *gorm.DB, id int) (*entity.Role, error) {
	names := map[int]string{
		entity.RoleIDAdmin:   entity.RoleAdmin,
		entity.RoleIDDoctor:  entity.RoleDoctor,
		entity.RoleIDPatient: entity.RolePatient,
		entity.RoleIDMember:  entity.RoleMember,
	}
	name, ok := names[id]
	if !ok {
		return nil, nil
	}
	return &entity.Role{ID: id, RoleName: name}, nil
}

func (s *roleRepoStub) FindByName(db *gorm.DB, name string) (*entity.Role, error) {
	for id := entity.RoleIDAdmin; id <= entity.RoleIDMember; id++ {
		role, _ := s.FindByID(db, id)
		if role != nil && role.RoleName == name {
			return role, nil
		}
	}
	return nil, nil
}

// auditLogRepoStub records audit writes.
type auditLogRepoStub struct {
	entries []*entity.AuditLog
}

func (s *auditLogRepoStub) Create(db *gorm.DB, log *entity.AuditLog) error {
	s.entries = append(s.entries, log)
	return nil
}

func (s *auditLogRepoStub) FindAll(db *gorm.DB, limit, offset int) ([]entity.AuditLog, int64, error) {
	var out []entity.AuditLog
	for _, e := range s.entries {
		out = append(out, *e)
	}
	return out, int64(len(s.entries)), nil
}
