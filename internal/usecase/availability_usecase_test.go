package usecase

import (
	"context"
	"testing"

	"doctor-booking-api/internal/delivery/dto"
	"doctor-booking-api/internal/domain/entity"
	"doctor-booking-api/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type availabilityFixture struct {
	usecase          AvailabilityUsecase
	doctorRepo       *doctorRepoStub
	availabilityRepo *availabilityRepoStub
}

func setupAvailabilityUsecase(t *testing.T) *availabilityFixture {
	t.Helper()

	db, _ := newTestDB(t)

	doctorRepo := &doctorRepoStub{}
	patientRepo := &patientProfileRepoStub{}
	availabilityRepo := &availabilityRepoStub{}

	resolver := service.NewIdentityResolver(patientRepo, doctorRepo)

	u := NewAvailabilityUsecase(db, testLogger(), availabilityRepo, doctorRepo, resolver)

	return &availabilityFixture{
		usecase:          u,
		doctorRepo:       doctorRepo,
		availabilityRepo: availabilityRepo,
	}
}

func (f *availabilityFixture) addDoctor(userID uuid.UUID) *entity.Doctor {
	doctor := &entity.Doctor{
		ID:       uuid.New(),
		UserID:   &userID,
		Name:     "Dr. Week",
		IsActive: boolPtr(true),
	}
	f.doctorRepo.doctors = append(f.doctorRepo.doctors, doctor)
	return doctor
}

func TestAvailabilityCreate_StartMustPrecedeEnd(t *testing.T) {
	f := setupAvailabilityUsecase(t)

	userID := uuid.New()
	f.addDoctor(userID)

	for _, req := range []*dto.CreateAvailabilityRequest{
		{DayOfWeek: entity.DayMonday, StartTime: "17:00", EndTime: "09:00"},
		{DayOfWeek: entity.DayMonday, StartTime: "09:00", EndTime: "09:00"},
	} {
		_, err := f.usecase.Create(context.Background(), userID, req)
		assert.ErrorIs(t, err, ErrInvalidTimeRange)
	}
	assert.Empty(t, f.availabilityRepo.availabilities)
}

func TestAvailabilityCreate_OwnerIsForcedToCaller(t *testing.T) {
	f := setupAvailabilityUsecase(t)

	userID := uuid.New()
	doctor := f.addDoctor(userID)

	result, err := f.usecase.Create(context.Background(), userID, &dto.CreateAvailabilityRequest{
		DayOfWeek: entity.DayTuesday,
		StartTime: "09:00",
		EndTime:   "17:00",
	})

	require.NoError(t, err)
	assert.Equal(t, doctor.ID, result.DoctorID)
	assert.Equal(t, entity.DayTuesday, result.DayOfWeek)
}

func TestAvailabilityCreate_NonDoctorIsRejected(t *testing.T) {
	f := setupAvailabilityUsecase(t)

	_, err := f.usecase.Create(context.Background(), uuid.New(), &dto.CreateAvailabilityRequest{
		DayOfWeek: entity.DayMonday,
		StartTime: "09:00",
		EndTime:   "17:00",
	})

	assert.ErrorIs(t, err, ErrPermissionDenied)
}

func TestAvailabilityListByDoctor_UnknownDoctor(t *testing.T) {
	f := setupAvailabilityUsecase(t)

	_, err := f.usecase.ListByDoctor(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestAvailabilityDelete_OwnerOnly(t *testing.T) {
	f := setupAvailabilityUsecase(t)

	ownerID := uuid.New()
	doctor := f.addDoctor(ownerID)
	f.availabilityRepo.availabilities = append(f.availabilityRepo.availabilities, &entity.Availability{
		ID:        1,
		DoctorID:  doctor.ID,
		DayOfWeek: entity.DayFriday,
		StartTime: "09:00",
		EndTime:   "12:00",
	})

	strangerID := uuid.New()
	f.addDoctor(strangerID)

	err := f.usecase.Delete(context.Background(), strangerID, 1)
	assert.ErrorIs(t, err, ErrAvailabilityNotFound)

	err = f.usecase.Delete(context.Background(), ownerID, 1)
	require.NoError(t, err)
	assert.Empty(t, f.availabilityRepo.availabilities)
}
