// Package services implements the credit service use cases. All
// authorization decisions go through the policy package; handlers only
// translate HTTP to these calls.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mycompany/credit-platform/internal/common"
	"github.com/mycompany/credit-platform/internal/creditservice/clients/authclient"
	"github.com/mycompany/credit-platform/internal/creditservice/clients/riskclient"
	"github.com/mycompany/credit-platform/internal/creditservice/models"
	"github.com/mycompany/credit-platform/internal/creditservice/policy"
	apprepo "github.com/mycompany/credit-platform/internal/creditservice/repositories/applications"
	"github.com/mycompany/credit-platform/internal/logging"
	"github.com/mycompany/credit-platform/internal/roles"
)

// Actor is the verified identity performing a use case.
type Actor struct {
	UserID int64
	Role   roles.Role
}

// UserDirectory resolves platform users, backed by the auth service.
type UserDirectory interface {
	GetUser(ctx context.Context, id int64) (*authclient.User, error)
}

// RiskEvaluator scores an applicant, backed by the risk service.
type RiskEvaluator interface {
	Evaluate(ctx context.Context, in riskclient.EvaluationRequest) (*riskclient.Evaluation, error)
}

type ApplicationService struct {
	repo  apprepo.Repository
	users UserDirectory
	risk  RiskEvaluator
	log   logging.Logger
	now   func() time.Time
}

type ApplicationOption func(*ApplicationService)

// WithApplicationClock overrides the time source, for deterministic tests.
func WithApplicationClock(now func() time.Time) ApplicationOption {
	return func(s *ApplicationService) { s.now = now }
}

func NewApplicationService(repo apprepo.Repository, users UserDirectory, risk RiskEvaluator, log logging.Logger, opts ...ApplicationOption) *ApplicationService {
	s := &ApplicationService{repo: repo, users: users, risk: risk, log: log, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

type CreateParams struct {
	Amount     int64
	TermMonths int
	Purpose    string
}

// Create opens a PENDING application owned by the actor. The owner account
// is confirmed against the auth service first.
func (s *ApplicationService) Create(ctx context.Context, actor Actor, p CreateParams) (*models.Application, error) {
	if err := policy.Require(actor.Role, policy.ActionCreate); err != nil {
		return nil, err
	}

	if _, err := s.users.GetUser(ctx, actor.UserID); err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error resolving owner: %w", err)
	}

	app := models.NewApplication(actor.UserID, p.Amount, p.TermMonths, p.Purpose, s.now().UTC())

	app, err := s.repo.Create(ctx, app)
	if err != nil {
		return nil, fmt.Errorf("error creating application: %w", err)
	}

	s.log.Info(ctx, "application created", "application_id", app.ID, "user_id", actor.UserID)

	return app, nil
}

// GetMine lists the actor's own applications.
func (s *ApplicationService) GetMine(ctx context.Context, actor Actor) ([]*models.Application, error) {
	if err := policy.Require(actor.Role, policy.ActionViewOwn); err != nil {
		return nil, err
	}
	apps, err := s.repo.ListByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	return apps, nil
}

// GetAll lists every application; privileged roles only.
func (s *ApplicationService) GetAll(ctx context.Context, actor Actor) ([]*models.Application, error) {
	if err := policy.Require(actor.Role, policy.ActionViewAll); err != nil {
		return nil, err
	}
	apps, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing applications: %w", err)
	}
	return apps, nil
}

// GetByID returns one application. A non-owning affiliate gets an
// authorization error, never the data and never a not-found.
func (s *ApplicationService) GetByID(ctx context.Context, actor Actor, id int64) (*models.Application, error) {
	app, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireOwnership(actor.Role, actor.UserID, app.UserID); err != nil {
		return nil, err
	}
	return app, nil
}

type UpdateParams struct {
	Status       *string
	AnalystNotes *string
	InterestRate *float64
}

// Update is the privileged free-form edit: notes, interest rate and a direct
// status write that deliberately bypasses the named transitions.
func (s *ApplicationService) Update(ctx context.Context, actor Actor, id int64, p UpdateParams) (*models.Application, error) {
	if err := policy.Require(actor.Role, policy.ActionUpdate); err != nil {
		return nil, err
	}

	app, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if p.Status != nil {
		st, err := models.ParseStatus(*p.Status)
		if err != nil {
			return nil, err
		}
		app.Status = st
	}
	if p.AnalystNotes != nil {
		app.AnalystNotes = p.AnalystNotes
	}
	if p.InterestRate != nil {
		app.InterestRate = p.InterestRate
	}
	app.UpdatedAt = s.now().UTC()

	if err := s.update(ctx, app); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "application updated", "application_id", app.ID, "user_id", actor.UserID)

	return app, nil
}

// UpdateStatus is the status-only endpoint. Unlike Update it dispatches
// through the state machine, so illegal transitions fail.
func (s *ApplicationService) UpdateStatus(ctx context.Context, actor Actor, id int64, status string, notes *string) (*models.Application, error) {
	if err := policy.Require(actor.Role, policy.ActionTransition); err != nil {
		return nil, err
	}

	app, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	st, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}
	if err := app.Transition(st, notes, s.now().UTC()); err != nil {
		return nil, err
	}

	if err := s.update(ctx, app); err != nil {
		return nil, err
	}

	s.log.Info(ctx, "application transitioned", "application_id", app.ID, "status", app.Status)

	return app, nil
}

// Delete removes an application, applying the affiliate ownership and
// PENDING-only gates.
func (s *ApplicationService) Delete(ctx context.Context, actor Actor, id int64) error {
	app, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if err := policy.RequireDeletable(actor.Role, actor.UserID, app); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrApplicationNotFound
		}
		return fmt.Errorf("error deleting application: %w", err)
	}

	s.log.Info(ctx, "application deleted", "application_id", id, "user_id", actor.UserID)

	return nil
}

// EvaluateRisk resolves the owner's document through the auth service and
// proxies the risk mock.
func (s *ApplicationService) EvaluateRisk(ctx context.Context, actor Actor, id int64) (*riskclient.Evaluation, error) {
	if err := policy.Require(actor.Role, policy.ActionEvaluateRisk); err != nil {
		return nil, err
	}

	app, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	owner, err := s.users.GetUser(ctx, app.UserID)
	if err != nil {
		if errors.Is(err, common.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error resolving owner: %w", err)
	}

	eval, err := s.risk.Evaluate(ctx, riskclient.EvaluationRequest{
		Document:   owner.Document,
		Amount:     app.Amount,
		TermMonths: app.TermMonths,
	})
	if err != nil {
		return nil, fmt.Errorf("error evaluating risk: %w", err)
	}
	return eval, nil
}

func (s *ApplicationService) get(ctx context.Context, id int64) (*models.Application, error) {
	app, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("error searching application: %w", err)
	}
	return app, nil
}

func (s *ApplicationService) update(ctx context.Context, app *models.Application) error {
	if err := s.repo.Update(ctx, app); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.ErrApplicationNotFound
		}
		return fmt.Errorf("error updating application: %w", err)
	}
	return nil
}
