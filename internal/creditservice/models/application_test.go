package models

import (
	"errors"
	"testing"
	"time"

	"github.com/mycompany/credit-platform/internal/common"
)

func pending(t *testing.T) *Application {
	t.Helper()
	return NewApplication(7, 200000, 12, "car", time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
}

func strptr(s string) *string { return &s }

func TestNewApplication(t *testing.T) {
	a := pending(t)
	if a.Status != StatusPending {
		t.Fatalf("Status = %s, want PENDING", a.Status)
	}
	if a.AnalystNotes != nil || a.InterestRate != nil {
		t.Fatal("notes and rate must start unset")
	}
	if !a.DeletableByOwner() {
		t.Fatal("pending application must be owner-deletable")
	}
}

func TestStartReview(t *testing.T) {
	a := pending(t)
	now := time.Now()

	if err := a.StartReview(now); err != nil {
		t.Fatalf("StartReview error: %v", err)
	}
	if a.Status != StatusInReview {
		t.Fatalf("Status = %s", a.Status)
	}
	if a.DeletableByOwner() {
		t.Fatal("in-review application must not be owner-deletable")
	}

	// not re-enterable
	if err := a.StartReview(now); !errors.Is(err, common.ErrInvalidTransition) {
		t.Fatalf("second StartReview = %v, want ErrInvalidTransition", err)
	}
}

func TestApproveAndReject(t *testing.T) {
	now := time.Now()

	a := pending(t)
	if err := a.Approve(strptr("income verified"), now); err != nil {
		t.Fatalf("Approve error: %v", err)
	}
	if a.Status != StatusApproved || a.AnalystNotes == nil || *a.AnalystNotes != "income verified" {
		t.Fatalf("unexpected application: %+v", a)
	}

	b := pending(t)
	if err := b.StartReview(now); err != nil {
		t.Fatal(err)
	}
	if err := b.Reject(nil, now); err != nil {
		t.Fatalf("Reject error: %v", err)
	}
	if b.Status != StatusRejected {
		t.Fatalf("Status = %s", b.Status)
	}
	if b.AnalystNotes != nil {
		t.Fatal("nil notes must not overwrite")
	}
}

func TestTerminalStatesAreFinal(t *testing.T) {
	now := time.Now()
	for _, final := range []func(a *Application) error{
		func(a *Application) error { return a.Approve(nil, now) },
		func(a *Application) error { return a.Reject(nil, now) },
	} {
		a := pending(t)
		if err := final(a); err != nil {
			t.Fatal(err)
		}
		if err := a.StartReview(now); !errors.Is(err, common.ErrInvalidTransition) {
			t.Fatalf("StartReview on terminal = %v", err)
		}
		if err := a.Approve(nil, now); !errors.Is(err, common.ErrInvalidTransition) {
			t.Fatalf("Approve on terminal = %v", err)
		}
		if err := a.Reject(nil, now); !errors.Is(err, common.ErrInvalidTransition) {
			t.Fatalf("Reject on terminal = %v", err)
		}
	}
}

func TestTransition_Dispatch(t *testing.T) {
	now := time.Now()

	a := pending(t)
	if err := a.Transition(StatusInReview, strptr("checking"), now); err != nil {
		t.Fatalf("Transition to IN_REVIEW error: %v", err)
	}
	if a.Status != StatusInReview || a.AnalystNotes == nil {
		t.Fatalf("unexpected application: %+v", a)
	}

	if err := a.Transition(StatusApproved, nil, now); err != nil {
		t.Fatalf("Transition to APPROVED error: %v", err)
	}

	b := pending(t)
	if err := b.Transition(StatusPending, nil, now); !errors.Is(err, common.ErrInvalidTransition) {
		t.Fatalf("re-entering PENDING = %v, want ErrInvalidTransition", err)
	}
}

func TestParseStatus(t *testing.T) {
	for _, ok := range []string{"PENDING", "IN_REVIEW", "APPROVED", "REJECTED"} {
		if _, err := ParseStatus(ok); err != nil {
			t.Errorf("ParseStatus(%q) error: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "pending", "CANCELLED"} {
		if _, err := ParseStatus(bad); !errors.Is(err, common.ErrInvalidStatusValue) {
			t.Errorf("ParseStatus(%q) = %v, want ErrInvalidStatusValue", bad, err)
		}
	}
}
