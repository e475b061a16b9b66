package usecase

import (
	"context"
	"testing"
	"time"

	"doctor-booking-api/internal/delivery/dto"
	"doctor-booking-api/internal/domain/entity"
	"doctor-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appointmentFixture struct {
	usecase         AppointmentUsecase
	doctorRepo      *doctorRepoStub
	patientRepo     *patientProfileRepoStub
	appointmentRepo *appointmentRepoStub
	auditRepo       *auditLogRepoStub
}

func setupAppointmentUsecase(t *testing.T) *appointmentFixture {
	t.Helper()

	db, mock := newTestDB(t)
	mock.MatchExpectationsInOrder(false)
	// Allow any number of transactions in a test.
	for i := 0; i < 4; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}

	doctorRepo := &doctorRepoStub{}
	patientRepo := &patientProfileRepoStub{}
	appointmentRepo := &appointmentRepoStub{}
	auditRepo := &auditLogRepoStub{}

	resolver := service.NewIdentityResolver(patientRepo, doctorRepo)
	auditService := service.NewAuditService(testLogger(), auditRepo)

	u := NewAppointmentUsecase(db, testLogger(), appointmentRepo, doctorRepo, patientRepo, resolver, auditService)

	return &appointmentFixture{
		usecase:         u,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		appointmentRepo: appointmentRepo,
		auditRepo:       auditRepo,
	}
}

func (f *appointmentFixture) addPatient(userID uuid.UUID) *entity.PatientProfile {
	profile := &entity.PatientProfile{
		ID:          uuid.New(),
		UserID:      userID,
		DateOfBirth: time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	f.patientRepo.profiles = append(f.patientRepo.profiles, profile)
	return profile
}

func (f *appointmentFixture) addDoctor(userID uuid.UUID, active bool) *entity.Doctor {
	doctor := &entity.Doctor{
		ID:             uuid.New(),
		Name:           "Dr. Test",
		Specialization: "Cardiology",
		IsActive:       boolPtr(active),
	}
	if userID != uuid.Nil {
		doctor.UserID = &userID
	}
	f.doctorRepo.doctors = append(f.doctorRepo.doctors, doctor)
	return doctor
}

func (f *appointmentFixture) addAppointment(patientID uuid.UUID, doctorID *uuid.UUID) *entity.Appointment {
	a := &entity.Appointment{
		ID:              uuid.New(),
		PatientID:       patientID,
		DoctorID:        doctorID,
		DateTime:        time.Now().Add(24 * time.Hour),
		DurationMinutes: 30,
		Status:          entity.AppointmentStatusBooked,
	}
	f.appointmentRepo.appointments = append(f.appointmentRepo.appointments, a)
	return a
}

func TestAppointmentList_AnonymousGetsEmptyList(t *testing.T) {
	f := setupAppointmentUsecase(t)
	f.addAppointment(uuid.New(), nil)

	result, err := f.usecase.List(context.Background(), nil)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
	assert.Empty(t, result.Appointments)
}

func TestAppointmentList_UserWithoutProfileGetsEmptyList(t *testing.T) {
	f := setupAppointmentUsecase(t)
	f.addAppointment(uuid.New(), nil)

	userID := uuid.New()
	result, err := f.usecase.List(context.Background(), &userID)

	require.NoError(t, err)
	assert.Equal(t, 0, result.Total)
}

func TestAppointmentList_PatientSeesExactlyOwn(t *testing.T) {
	f := setupAppointmentUsecase(t)

	userID := uuid.New()
	mine := f.addPatient(userID)
	other := f.addPatient(uuid.New())

	a1 := f.addAppointment(mine.ID, nil)
	a2 := f.addAppointment(mine.ID, nil)
	f.addAppointment(other.ID, nil)

	result, err := f.usecase.List(context.Background(), &userID)

	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	ids := []uuid.UUID{result.Appointments[0].ID, result.Appointments[1].ID}
	assert.ElementsMatch(t, []uuid.UUID{a1.ID, a2.ID}, ids)
}

func TestAppointmentList_DoctorSeesExactlyOwn(t *testing.T) {
	f := setupAppointmentUsecase(t)

	userID := uuid.New()
	doctor := f.addDoctor(userID, true)
	otherDoctor := f.addDoctor(uuid.New(), true)

	mine := f.addAppointment(uuid.New(), &doctor.ID)
	f.addAppointment(uuid.New(), &otherDoctor.ID)

	result, err := f.usecase.List(context.Background(), &userID)

	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, mine.ID, result.Appointments[0].ID)
}

func TestAppointmentCreate_PatientAssignmentIsForced(t *testing.T) {
	f := setupAppointmentUsecase(t)

	userID := uuid.New()
	profile := f.addPatient(userID)
	doctor := f.addDoctor(uuid.Nil, true)

	// The payload tries to book on behalf of someone else.
	foreign := uuid.New()
	req := &dto.CreateAppointmentRequest{
		DoctorID:  &doctor.ID,
		PatientID: &foreign,
		DateTime:  time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}

	result, err := f.usecase.Create(context.Background(), userID, req)

	require.NoError(t, err)
	assert.Equal(t, profile.ID, result.PatientID)
	require.Len(t, f.appointmentRepo.created, 1)
	assert.Equal(t, profile.ID, f.appointmentRepo.created[0].PatientID)
}

func TestAppointmentCreate_DoctorAssignmentIsForced(t *testing.T) {
	f := setupAppointmentUsecase(t)

	userID := uuid.New()
	doctor := f.addDoctor(userID, true)
	otherDoctor := f.addDoctor(uuid.Nil, true)
	patient := f.addPatient(uuid.New())

	// The payload tries to book onto another doctor's calendar.
	req := &dto.CreateAppointmentRequest{
		DoctorID:  &otherDoctor.ID,
		PatientID: &patient.ID,
		DateTime:  time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}

	result, err := f.usecase.Create(context.Background(), userID, req)

	require.NoError(t, err)
	require.NotNil(t, result.DoctorID)
	assert.Equal(t, doctor.ID, *result.DoctorID)
}

func TestAppointmentCreate_WithoutProfileIsRejected(t *testing.T) {
	f := setupAppointmentUsecase(t)
	doctor := f.addDoctor(uuid.Nil, true)

	req := &dto.CreateAppointmentRequest{
		DoctorID: &doctor.ID,
		DateTime: time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}

	_, err := f.usecase.Create(context.Background(), uuid.New(), req)

	assert.ErrorIs(t, err, ErrProfileRequired)
	assert.Empty(t, f.appointmentRepo.created)
}

func TestAppointmentCreate_PatientMustNameDoctor(t *testing.T) {
	f := setupAppointmentUsecase(t)

	userID := uuid.New()
	f.addPatient(userID)

	req := &dto.CreateAppointmentRequest{
		DateTime: time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}

	_, err := f.usecase.Create(context.Background(), userID, req)
	assert.ErrorIs(t, err, ErrDoctorRequired)
}

func TestAppointmentCreate_InactiveDoctorIsRejected(t *testing.T) {
	f := setupAppointmentUsecase(t)

	userID := uuid.New()
	f.addPatient(userID)
	inactive := f.addDoctor(uuid.Nil, false)

	req := &dto.CreateAppointmentRequest{
		DoctorID: &inactive.ID,
		DateTime: time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}

	_, err := f.usecase.Create(context.Background(), userID, req)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestAppointmentCreate_UnknownDoctorIsRejected(t *testing.T) {
	f := setupAppointmentUsecase(t)

	userID := uuid.New()
	f.addPatient(userID)

	ghost := uuid.New()
	req := &dto.CreateAppointmentRequest{
		DoctorID: &ghost,
		DateTime: time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}

	_, err := f.usecase.Create(context.Background(), userID, req)
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestAppointmentCreate_DefaultsDurationAndStatus(t *testing.T) {
	f := setupAppointmentUsecase(t)

	userID := uuid.New()
	f.addPatient(userID)
	doctor := f.addDoctor(uuid.Nil, true)

	req := &dto.CreateAppointmentRequest{
		DoctorID: &doctor.ID,
		DateTime: time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}

	result, err := f.usecase.Create(context.Background(), userID, req)

	require.NoError(t, err)
	assert.Equal(t, entity.DefaultAppointmentDuration, result.DurationMinutes)
	assert.Equal(t, string(entity.AppointmentStatusBooked), result.Status)
}

func TestAppointmentCreate_WritesAuditEntry(t *testing.T) {
	f := setupAppointmentUsecase(t)

	userID := uuid.New()
	f.addPatient(userID)
	doctor := f.addDoctor(uuid.Nil, true)

	req := &dto.CreateAppointmentRequest{
		DoctorID: &doctor.ID,
		DateTime: time.Now().Add(48 * time.Hour).Format(time.RFC3339),
	}

	_, err := f.usecase.Create(context.Background(), userID, req)

	require.NoError(t, err)
	require.Len(t, f.auditRepo.entries, 1)
	assert.Equal(t, entity.AuditActionAppointmentCreate, f.auditRepo.entries[0].Action)
	require.NotNil(t, f.auditRepo.entries[0].UserID)
	assert.Equal(t, userID, *f.auditRepo.entries[0].UserID)
}

func TestAppointmentGet_ForeignAppointmentReadsAsNotFound(t *testing.T) {
	f := setupAppointmentUsecase(t)

	userID := uuid.New()
	f.addPatient(userID)
	other := f.addPatient(uuid.New())
	foreign := f.addAppointment(other.ID, nil)

	_, err := f.usecase.GetByID(context.Background(), userID, foreign.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestAppointmentUpdateStatus_OwnerCanCancel(t *testing.T) {
	f := setupAppointmentUsecase(t)

	userID := uuid.New()
	profile := f.addPatient(userID)
	appointment := f.addAppointment(profile.ID, nil)

	result, err := f.usecase.UpdateStatus(context.Background(), userID, appointment.ID, &dto.UpdateAppointmentStatusRequest{
		Status: "cancelled",
	})

	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCancelled), result.Status)
	assert.True(t, appointment.IsCancelled())
}

func TestAppointmentUpdateStatus_PatientCannotComplete(t *testing.T) {
	f := setupAppointmentUsecase(t)

	userID := uuid.New()
	profile := f.addPatient(userID)
	appointment := f.addAppointment(profile.ID, nil)

	_, err := f.usecase.UpdateStatus(context.Background(), userID, appointment.ID, &dto.UpdateAppointmentStatusRequest{
		Status: "completed",
	})

	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.True(t, appointment.IsBooked())
}

func TestAppointmentUpdateStatus_DoctorCanComplete(t *testing.T) {
	f := setupAppointmentUsecase(t)

	userID := uuid.New()
	doctor := f.addDoctor(userID, true)
	appointment := f.addAppointment(uuid.New(), &doctor.ID)

	result, err := f.usecase.UpdateStatus(context.Background(), userID, appointment.ID, &dto.UpdateAppointmentStatusRequest{
		Status: "completed",
	})

	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentStatusCompleted), result.Status)
}

func TestAppointmentUpdateStatus_RevertToBookedIsRejected(t *testing.T) {
	f := setupAppointmentUsecase(t)

	userID := uuid.New()
	doctor := f.addDoctor(userID, true)
	appointment := f.addAppointment(uuid.New(), &doctor.ID)
	appointment.Status = entity.AppointmentStatusCancelled

	_, err := f.usecase.UpdateStatus(context.Background(), userID, appointment.ID, &dto.UpdateAppointmentStatusRequest{
		Status: "booked",
	})

	assert.ErrorIs(t, err, ErrPermissionDenied)
	assert.True(t, appointment.IsCancelled())
}

func TestAppointmentUpdateStatus_UnknownStatusIsRejected(t *testing.T) {
	f := setupAppointmentUsecase(t)

	_, err := f.usecase.UpdateStatus(context.Background(), uuid.New(), uuid.New(), &dto.UpdateAppointmentStatusRequest{
		Status: "postponed",
	})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestAppointmentDelete_OwnerOnly(t *testing.T) {
	f := setupAppointmentUsecase(t)

	ownerID := uuid.New()
	profile := f.addPatient(ownerID)
	appointment := f.addAppointment(profile.ID, nil)

	strangerID := uuid.New()
	f.addPatient(strangerID)

	err := f.usecase.Delete(context.Background(), strangerID, appointment.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	err = f.usecase.Delete(context.Background(), ownerID, appointment.ID)
	require.NoError(t, err)
	assert.Empty(t, f.appointmentRepo.appointments)
}
