package usecase

import (
	"context"
	"testing"
	"time"

	"doctor-booking-api/internal/delivery/dto"
	"doctor-booking-api/internal/domain/entity"
	"doctor-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type timeSlotFixture struct {
	usecase      TimeSlotUsecase
	doctorRepo   *doctorRepoStub
	patientRepo  *patientProfileRepoStub
	timeSlotRepo *timeSlotRepoStub
	auditRepo    *auditLogRepoStub
}

func setupTimeSlotUsecase(t *testing.T) *timeSlotFixture {
	t.Helper()

	db, mock := newTestDB(t)
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 4; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}

	doctorRepo := &doctorRepoStub{}
	patientRepo := &patientProfileRepoStub{}
	timeSlotRepo := &timeSlotRepoStub{}
	auditRepo := &auditLogRepoStub{}

	resolver := service.NewIdentityResolver(patientRepo, doctorRepo)
	auditService := service.NewAuditService(testLogger(), auditRepo)

	u := NewTimeSlotUsecase(db, testLogger(), timeSlotRepo, resolver, auditService)

	return &timeSlotFixture{
		usecase:      u,
		doctorRepo:   doctorRepo,
		patientRepo:  patientRepo,
		timeSlotRepo: timeSlotRepo,
		auditRepo:    auditRepo,
	}
}

func (f *timeSlotFixture) addDoctor(userID uuid.UUID) *entity.Doctor {
	doctor := &entity.Doctor{
		ID:             uuid.New(),
		UserID:         &userID,
		Name:           "Dr. Test",
		Specialization: "Dermatology",
		IsActive:       boolPtr(true),
	}
	f.doctorRepo.doctors = append(f.doctorRepo.doctors, doctor)
	return doctor
}

func (f *timeSlotFixture) addSlot(doctorID uuid.UUID, date, start string) *entity.TimeSlot {
	day, _ := time.Parse("2006-01-02", date)
	slot := &entity.TimeSlot{
		ID:        uuid.New(),
		DoctorID:  doctorID,
		Date:      day,
		StartTime: start,
		EndTime:   "23:59",
		IsBooked:  boolPtr(false),
	}
	f.timeSlotRepo.slots = append(f.timeSlotRepo.slots, slot)
	return slot
}

func TestTimeSlotList_NonDoctorGetsEmptyList(t *testing.T) {
	f := setupTimeSlotUsecase(t)
	doctor := f.addDoctor(uuid.New())
	f.addSlot(doctor.ID, "2026-09-01", "09:00")

	result, err := f.usecase.List(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
}

func TestTimeSlotList_DoctorSeesExactlyOwn(t *testing.T) {
	f := setupTimeSlotUsecase(t)

	userID := uuid.New()
	mine := f.addDoctor(userID)
	other := f.addDoctor(uuid.New())

	slot := f.addSlot(mine.ID, "2026-09-01", "09:00")
	f.addSlot(other.ID, "2026-09-01", "09:00")

	result, err := f.usecase.List(context.Background(), userID)

	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, slot.ID, result.TimeSlots[0].ID)
}

func TestTimeSlotCreate_NonDoctorIsRejected(t *testing.T) {
	f := setupTimeSlotUsecase(t)

	req := &dto.CreateTimeSlotRequest{
		Date:      "2026-09-01",
		StartTime: "09:00",
		EndTime:   "09:30",
	}

	_, err := f.usecase.Create(context.Background(), uuid.New(), req)
	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.Empty(t, f.timeSlotRepo.slots)
}

func TestTimeSlotCreate_OwnerIsForcedToCaller(t *testing.T) {
	f := setupTimeSlotUsecase(t)

	userID := uuid.New()
	doctor := f.addDoctor(userID)

	req := &dto.CreateTimeSlotRequest{
		Date:      "2026-09-01",
		StartTime: "09:00",
		EndTime:   "09:30",
	}

	result, err := f.usecase.Create(context.Background(), userID, req)

	require.NoError(t, err)
	assert.Equal(t, doctor.ID, result.DoctorID)
	require.Len(t, f.auditRepo.entries, 1)
	assert.Equal(t, entity.AuditActionTimeSlotCreate, f.auditRepo.entries[0].Action)
}

func TestTimeSlotCreate_DuplicateSlotIsRejected(t *testing.T) {
	f := setupTimeSlotUsecase(t)

	userID := uuid.New()
	f.addDoctor(userID)

	f.timeSlotRepo.createErr = &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "idx_time_slots_doctor_date_start",
	}

	req := &dto.CreateTimeSlotRequest{
		Date:      "2026-09-01",
		StartTime: "09:00",
		EndTime:   "09:30",
	}

	_, err := f.usecase.Create(context.Background(), userID, req)
	assert.ErrorIs(t, err, ErrDuplicateTimeSlot)
}

func TestTimeSlotCreate_BadTimeRangeIsRejected(t *testing.T) {
	f := setupTimeSlotUsecase(t)

	userID := uuid.New()
	f.addDoctor(userID)

	req := &dto.CreateTimeSlotRequest{
		Date:      "2026-09-01",
		StartTime: "10:00",
		EndTime:   "09:00",
	}

	_, err := f.usecase.Create(context.Background(), userID, req)
	assert.ErrorIs(t, err, ErrInvalidTimeRange)
}

func TestTimeSlotGet_ForeignSlotReadsAsNotFound(t *testing.T) {
	f := setupTimeSlotUsecase(t)

	userID := uuid.New()
	f.addDoctor(userID)
	other := f.addDoctor(uuid.New())
	foreign := f.addSlot(other.ID, "2026-09-01", "09:00")

	_, err := f.usecase.GetByID(context.Background(), userID, foreign.ID)
	assert.ErrorIs(t, err, ErrTimeSlotNotFound)
}

func TestTimeSlotDelete_OwnerOnly(t *testing.T) {
	f := setupTimeSlotUsecase(t)

	ownerID := uuid.New()
	doctor := f.addDoctor(ownerID)
	slot := f.addSlot(doctor.ID, "2026-09-01", "09:00")

	strangerID := uuid.New()
	f.addDoctor(strangerID)

	err := f.usecase.Delete(context.Background(), strangerID, slot.ID)
	assert.ErrorIs(t, err, ErrTimeSlotNotFound)

	err = f.usecase.Delete(context.Background(), ownerID, slot.ID)
	require.NoError(t, err)
	assert.Empty(t, f.timeSlotRepo.slots)
}
