// Package models contains the credit service domain entities and the
// application state machine.
package models

import (
	"fmt"
	"time"

	"github.com/mycompany/credit-platform/internal/common"
)

// Status is the lifecycle state of a credit application.
//
//	PENDING → IN_REVIEW → APPROVED | REJECTED
//	PENDING ───────────→ APPROVED | REJECTED
//
// APPROVED and REJECTED are terminal; PENDING is never re-entered.
type Status string

const (
	StatusPending  Status = "PENDING"
	StatusInReview Status = "IN_REVIEW"
	StatusApproved Status = "APPROVED"
	StatusRejected Status = "REJECTED"
)

// ParseStatus validates a client-supplied status value.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusInReview, StatusApproved, StatusRejected:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", common.ErrInvalidStatusValue, s)
}

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Application is a financed request owned by the user who created it.
// UserID never changes after creation.
type Application struct {
	ID           int64
	UserID       int64
	Amount       int64
	TermMonths   int
	Purpose      string
	Status       Status
	AnalystNotes *string
	InterestRate *float64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewApplication builds a pending application for the given owner.
func NewApplication(userID, amount int64, termMonths int, purpose string, now time.Time) *Application {
	return &Application{
		UserID:     userID,
		Amount:     amount,
		TermMonths: termMonths,
		Purpose:    purpose,
		Status:     StatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// StartReview moves a pending application into review.
func (a *Application) StartReview(now time.Time) error {
	if a.Status != StatusPending {
		return a.transitionError(StatusInReview)
	}
	a.Status = StatusInReview
	a.UpdatedAt = now
	return nil
}

// Approve finalizes a non-terminal application, optionally recording notes.
func (a *Application) Approve(notes *string, now time.Time) error {
	return a.finalize(StatusApproved, notes, now)
}

// Reject finalizes a non-terminal application, optionally recording notes.
func (a *Application) Reject(notes *string, now time.Time) error {
	return a.finalize(StatusRejected, notes, now)
}

func (a *Application) finalize(to Status, notes *string, now time.Time) error {
	if a.Status.Terminal() {
		return a.transitionError(to)
	}
	a.Status = to
	if notes != nil {
		a.AnalystNotes = notes
	}
	a.UpdatedAt = now
	return nil
}

// Transition dispatches a requested target status to the named transition.
// Re-entering PENDING is never allowed.
func (a *Application) Transition(to Status, notes *string, now time.Time) error {
	switch to {
	case StatusInReview:
		if err := a.StartReview(now); err != nil {
			return err
		}
		if notes != nil {
			a.AnalystNotes = notes
			a.UpdatedAt = now
		}
		return nil
	case StatusApproved:
		return a.Approve(notes, now)
	case StatusRejected:
		return a.Reject(notes, now)
	default:
		return a.transitionError(to)
	}
}

func (a *Application) transitionError(to Status) error {
	return fmt.Errorf("%w: %s → %s", common.ErrInvalidTransition, a.Status, to)
}

// DeletableByOwner reports whether the owning affiliate may still delete the
// application. Privileged roles are not bound by this.
func (a *Application) DeletableByOwner() bool {
	return a.Status == StatusPending
}
