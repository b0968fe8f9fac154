package model

import (
	"time"

	"github.com/google/uuid"
)

type Werker struct {
	ID         uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	NameFirst  string    `gorm:"not null"`
	NameLast   string    `gorm:"not null"`
	Email      string    `gorm:"not null"`
	URLPhoto   string
	Bio        string
	Phone      string
	LastMinute bool `gorm:"not null"`
	Lat        float64
	Long       float64
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Certifications []WerkerCertification `gorm:"foreignKey:WerkerID;constraint:OnDelete:CASCADE"`
	Positions      []WerkerPosition      `gorm:"foreignKey:WerkerID;constraint:OnDelete:CASCADE"`
}

func (w Werker) FullName() string {
	return w.NameFirst + " " + w.NameLast
}

// WerkerCertification carries the photo of the certificate itself, which
// belongs to the relation rather than to the catalog row.
type WerkerCertification struct {
	WerkerID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	CertificationID uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	URLPhoto        *string

	Certification Certification `gorm:"foreignKey:CertificationID"`
}

// WerkerPosition is a declared skill.
type WerkerPosition struct {
	WerkerID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	PositionID uuid.UUID `gorm:"type:uuid;primaryKey;index"`

	Position Position `gorm:"foreignKey:PositionID"`
}

// Rating is a maker's score for a werker on a completed shift.
type Rating struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	WerkerID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_werker_shift"`
	ShiftID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_werker_shift"`
	Score     int       `gorm:"not null;check:score BETWEEN 1 AND 5"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
