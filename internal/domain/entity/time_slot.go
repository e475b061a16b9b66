package entity

import (
	"time"

	"github.com/google/uuid"
)

// TimeSlot is a bookable (doctor, date, time-range) unit.
// (doctor_id, date, start_time) is unique at the storage level.
type TimeSlot struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	DoctorID  uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_time_slots_doctor_date_start" json:"doctor_id"`
	Date      time.Time `gorm:"type:date;not null;uniqueIndex:idx_time_slots_doctor_date_start" json:"date"`
	StartTime string    `gorm:"type:time;not null;uniqueIndex:idx_time_slots_doctor_date_start" json:"start_time"`
	EndTime   string    `gorm:"type:time;not null" json:"end_time"`
	IsBooked  *bool     `gorm:"not null;default:false" json:"is_booked"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor Doctor `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (TimeSlot) TableName() string {
	return "time_slots"
}
