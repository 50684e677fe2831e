// Package models contains the auth service domain entities.
package models

import (
	"fmt"
	"time"

	"github.com/mycompany/credit-platform/internal/common"
	"github.com/mycompany/credit-platform/internal/roles"
)

// Status is the lifecycle state of a user account. Deactivated accounts keep
// their data but cannot authenticate.
type Status string

const (
	StatusActive   Status = "ACTIVE"
	StatusInactive Status = "INACTIVE"
)

// ParseStatus validates a client-supplied status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusInactive:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrInvalidStatusValue, s)
}

// User is an account registered with the platform. PasswordHash is a bcrypt
// digest and never leaves the auth service.
type User struct {
	ID              int64
	Document        string
	Name            string
	Email           string
	PasswordHash    string
	Salary          int64
	AffiliationDate time.Time
	Status          Status
	Role            roles.Role
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewUser builds a self-registered affiliate account, active as of now.
func NewUser(document, name, email, passwordHash string, salary int64, now time.Time) *User {
	return &User{
		Document:        document,
		Name:            name,
		Email:           email,
		PasswordHash:    passwordHash,
		Salary:          salary,
		AffiliationDate: now,
		Status:          StatusActive,
		Role:            roles.Affiliate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// IsActive reports whether the account may authenticate.
func (u *User) IsActive() bool { return u.Status == StatusActive }

// SetStatus transitions the account to the given lifecycle state. Setting the
// current state again is a no-op but not an error.
func (u *User) SetStatus(s Status, now time.Time) {
	u.Status = s
	u.UpdatedAt = now
}
