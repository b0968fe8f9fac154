package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Shift struct {
	ID              uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	MakerID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Name            string    `gorm:"not null"`
	ScheduledAt     time.Time `gorm:"not null;index"`
	DurationMinutes int       `gorm:"not null"`
	Lat             float64
	Long            float64
	Description     string
	PaymentType     string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Maker       Maker           `gorm:"foreignKey:MakerID"`
	Positions   []ShiftPosition `gorm:"foreignKey:ShiftID;constraint:OnDelete:CASCADE"`
	Assignments []InviteApply   `gorm:"foreignKey:ShiftID;constraint:OnDelete:CASCADE"`
}

// ShiftPosition is the junction between a shift and a catalog position.
// PaymentAmount is NULL when the poster did not name a rate.
// Filled mirrors the existence of an Accepted InviteApply for the pair and is
// only ever set by the assignment flow.
type ShiftPosition struct {
	ShiftID       uuid.UUID           `gorm:"type:uuid;primaryKey"`
	PositionID    uuid.UUID           `gorm:"type:uuid;primaryKey;index"`
	PaymentAmount decimal.NullDecimal `gorm:"type:numeric(10,2)"`
	Filled        bool                `gorm:"not null"`

	Shift    *Shift   `gorm:"foreignKey:ShiftID"`
	Position Position `gorm:"foreignKey:PositionID"`
}
