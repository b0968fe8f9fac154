package model

import (
	"time"

	"github.com/google/uuid"
)

// Maker publishes shifts. Its id is the authenticated actor id issued by the auth provider.
type Maker struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name      string    `gorm:"not null"`
	Email     string    `gorm:"not null"`
	URLPhoto  string
	Phone     string
	CreatedAt time.Time `gorm:"autoCreateTime"`
}
