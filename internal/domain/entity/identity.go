package entity

import "github.com/google/uuid"

// IdentityKind tags the role an authenticated caller resolves to for the
// current request.
type IdentityKind string

const (
	IdentityPatient IdentityKind = "patient"
	IdentityDoctor  IdentityKind = "doctor"
	IdentityNeither IdentityKind = "neither"
)

// Identity is an authenticated caller together with its resolved role.
// Exactly one of Patient/Doctor is set, matching Kind; both are nil for
// IdentityNeither. A caller holding both a patient profile and a doctor
// record resolves as patient.
type Identity struct {
	UserID  uuid.UUID
	Kind    IdentityKind
	Patient *PatientProfile
	Doctor  *Doctor
}

// IsPatient reports whether the caller resolved to a patient profile.
func (i *Identity) IsPatient() bool {
	return i != nil && i.Kind == IdentityPatient
}

// IsDoctor reports whether the caller resolved to a doctor record.
func (i *Identity) IsDoctor() bool {
	return i != nil && i.Kind == IdentityDoctor
}
