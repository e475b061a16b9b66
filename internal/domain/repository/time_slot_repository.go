package repository

import (
	"doctor-booking-api/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TimeSlotRepository interface {
	Create(db *gorm.DB, slot *entity.TimeSlot) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.TimeSlot, error)
	FindByDoctorID(db *gorm.DB, doctorID uuid.UUID) ([]entity.TimeSlot, error)
	Update(db *gorm.DB, slot *entity.TimeSlot) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
