package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Doctor represents a bookable practitioner. UserID is nullable because the
// sentinel "Default System Doctor" created by the backfill has no account.
type Doctor struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          *uuid.UUID      `gorm:"type:uuid;uniqueIndex" json:"user_id,omitempty"`
	Name            string          `gorm:"type:varchar(100);not null;index" json:"name"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	IsActive        *bool           `gorm:"not null;default:true;index" json:"is_active"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	Biography       string          `gorm:"type:text" json:"biography,omitempty"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	User           *User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Availabilities []Availability `gorm:"foreignKey:DoctorID" json:"availabilities,omitempty"`
	TimeSlots      []TimeSlot     `gorm:"foreignKey:DoctorID" json:"time_slots,omitempty"`
	Appointments   []Appointment  `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (Doctor) TableName() string {
	return "doctors"
}

// SentinelDoctorName is the stable name of the backfill doctor.
const SentinelDoctorName = "Default System Doctor"
