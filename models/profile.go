package models

import "time"

type ProfileRole string

const (
	RoleFan    ProfileRole = "fan"
	RolePlayer ProfileRole = "player"
	RoleAdmin  ProfileRole = "admin"
)

type ProfileStatus string

const (
	StatusPending  ProfileStatus = "pending"
	StatusActive   ProfileStatus = "active"
	StatusDisabled ProfileStatus = "disabled"
)

// Profile drives all access control: every mutating operation requires an
// active admin, prediction submission requires a fan.
type Profile struct {
	ID           int           `json:"id" db:"id"`
	Name         string        `json:"name" db:"name"`
	Email        string        `json:"email" db:"email"`
	Phone        *string       `json:"phone,omitempty" db:"phone"`
	University   *string       `json:"university,omitempty" db:"university"`
	Role         ProfileRole   `json:"role" db:"role"`
	Status       ProfileStatus `json:"status" db:"status"`
	PasswordHash string        `json:"-" db:"password_hash"`
	NewsSeenAt   *time.Time    `json:"news_seen_at,omitempty" db:"news_seen_at"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
}

// IsActiveAdmin is the single capability predicate behind every privileged
// read or write.
func (p *Profile) IsActiveAdmin() bool {
	return p != nil && p.Role == RoleAdmin && p.Status == StatusActive
}

func (p *Profile) IsActiveFan() bool {
	return p != nil && p.Role == RoleFan && p.Status == StatusActive
}

type ProfileFilter struct {
	Role   *ProfileRole
	Status *ProfileStatus
}
