package entity

// Specialty is a lookup row for medical specialties. Doctors reference it
// loosely through their specialization string, not a foreign key.
type Specialty struct {
	ID   int    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

func (Specialty) TableName() string {
	return "specialties"
}
