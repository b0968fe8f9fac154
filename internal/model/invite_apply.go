package model

import (
	"time"

	"github.com/google/uuid"
)

type AssignmentStatus string

const (
	StatusPending  AssignmentStatus = "Pending"
	StatusAccepted AssignmentStatus = "Accepted"
	StatusDeclined AssignmentStatus = "Declined"
)

// Terminal reports whether no further transition is allowed out of s.
func (s AssignmentStatus) Terminal() bool {
	return s == StatusAccepted || s == StatusDeclined
}

// AssignmentType records which side initiated the assignment.
type AssignmentType string

const (
	TypeInvite AssignmentType = "Invite"
	TypeApply  AssignmentType = "Apply"
)

// InviteApply tracks one werker's assignment attempt for one position on a
// shift. There is at most one row per (shift, werker, position).
type InviteApply struct {
	ID         uuid.UUID        `gorm:"type:uuid;default:uuid_generate_v4();primaryKey"`
	ShiftID    uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_invite_apply_triple"`
	WerkerID   uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_invite_apply_triple;index"`
	PositionID uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_invite_apply_triple"`
	Status     AssignmentStatus `gorm:"type:varchar(16);not null;check:status IN ('Pending', 'Accepted', 'Declined')"`
	Type       AssignmentType   `gorm:"type:varchar(16);not null;check:type IN ('Invite', 'Apply')"`
	Expiration *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Werker   *Werker   `gorm:"foreignKey:WerkerID"`
	Position *Position `gorm:"foreignKey:PositionID"`
}
