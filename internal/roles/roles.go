// Package roles defines the closed set of platform roles. Roles travel
// inside signed tokens as strings but are always parsed back into the Role
// type before any authorization decision, so call sites never compare raw
// strings.
package roles

import "errors"

type Role string

const (
	// Affiliate is a self-service applicant. Every registration starts here;
	// there is no promotion flow through the API.
	Affiliate Role = "AFFILIATE"
	// Analyst reviews applications (full CRUD except status-only updates).
	Analyst Role = "ANALYST"
	// Admin has full access.
	Admin Role = "ADMIN"
)

var ErrUnknownRole = errors.New("unknown role")

// Parse converts a wire string into a Role.
func Parse(s string) (Role, error) {
	switch Role(s) {
	case Affiliate, Analyst, Admin:
		return Role(s), nil
	}
	return "", ErrUnknownRole
}

// Privileged reports whether the role is a reviewer role (ANALYST or ADMIN).
func (r Role) Privileged() bool {
	return r == Analyst || r == Admin
}

func (r Role) String() string { return string(r) }
