package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Position is a shared catalog row naming a role or skill.
type Position struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `gorm:"not null"`
	Slug        string    `gorm:"uniqueIndex;not null"`
	Description string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// Certification is a shared catalog row naming a qualification.
type Certification struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	Name        string    `gorm:"not null"`
	Slug        string    `gorm:"uniqueIndex;not null"`
	Description string
	CreatedAt   time.Time `gorm:"autoCreateTime"`
}

// NormalizeCatalogName trims the name and collapses internal whitespace.
func NormalizeCatalogName(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// CatalogSlug is the unique key of a catalog row: "Line Cook", " line  cook"
// and "LINE COOK" all share the slug "line cook".
func CatalogSlug(name string) string {
	return strings.ToLower(NormalizeCatalogName(name))
}
