package service

import (
	"context"
	"testing"

	"doctor-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupBackfill(t *testing.T) (*BackfillService, *doctorStore, *appointmentStore, *auditStore) {
	t.Helper()

	db, mock := newTestDB(t)
	mock.MatchExpectationsInOrder(false)
	for i := 0; i < 4; i++ {
		mock.ExpectBegin()
		mock.ExpectCommit()
		mock.ExpectRollback()
	}

	doctors := &doctorStore{}
	appointments := &appointmentStore{}
	audits := &auditStore{}
	auditService := NewAuditService(testLogger(), audits)

	return NewBackfillService(db, testLogger(), doctors, appointments, auditService), doctors, appointments, audits
}

func TestBackfill_AssignsSentinelToDoctorlessAppointments(t *testing.T) {
	backfill, doctors, appointments, audits := setupBackfill(t)

	existing := uuid.New()
	appointments.appointments = []*entity.Appointment{
		{ID: uuid.New(), PatientID: uuid.New()},
		{ID: uuid.New(), PatientID: uuid.New()},
		{ID: uuid.New(), PatientID: uuid.New(), DoctorID: &existing},
	}

	updated, err := backfill.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(2), updated)

	// Sentinel doctor was created once.
	require.Len(t, doctors.doctors, 1)
	sentinel := doctors.doctors[0]
	assert.Equal(t, entity.SentinelDoctorName, sentinel.Name)

	// All doctor-less rows now point at the sentinel; the pre-assigned row is untouched.
	for _, a := range appointments.appointments {
		require.NotNil(t, a.DoctorID)
	}
	assert.Equal(t, existing, *appointments.appointments[2].DoctorID)

	require.Len(t, audits.entries, 1)
	assert.Equal(t, entity.AuditActionDoctorBackfill, audits.entries[0].Action)
	assert.Nil(t, audits.entries[0].UserID)
}

func TestBackfill_SecondRunIsNoOp(t *testing.T) {
	backfill, doctors, appointments, _ := setupBackfill(t)

	appointments.appointments = []*entity.Appointment{
		{ID: uuid.New(), PatientID: uuid.New()},
	}

	updated, err := backfill.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(1), updated)

	updated, err = backfill.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated)

	// No duplicate sentinel and no second bulk update.
	assert.Len(t, doctors.doctors, 1)
	assert.Equal(t, 1, appointments.assignCalls)
}

func TestBackfill_ReusesExistingSentinel(t *testing.T) {
	backfill, doctors, appointments, _ := setupBackfill(t)

	sentinelID := uuid.New()
	doctors.doctors = []*entity.Doctor{{
		ID:   sentinelID,
		Name: entity.SentinelDoctorName,
	}}
	appointments.appointments = []*entity.Appointment{
		{ID: uuid.New(), PatientID: uuid.New()},
	}

	updated, err := backfill.Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(1), updated)
	assert.Len(t, doctors.doctors, 1)
	assert.Equal(t, sentinelID, *appointments.appointments[0].DoctorID)
}
