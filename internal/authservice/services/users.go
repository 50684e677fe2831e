// Package services implements the auth service use cases on top of the
// repository layer.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mycompany/credit-platform/internal/authservice/models"
	"github.com/mycompany/credit-platform/internal/authservice/repositories/users"
	"github.com/mycompany/credit-platform/internal/common"
	"github.com/mycompany/credit-platform/internal/logging"
	"github.com/mycompany/credit-platform/internal/password"
	"github.com/mycompany/credit-platform/internal/token"
)

// dummyDigest is a valid bcrypt digest compared against when the email does
// not exist, so lookup misses cost the same as password mismatches.
const dummyDigest = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

type UserService struct {
	repo   users.Repository
	hasher *password.Hasher
	codec  *token.Codec
	log    logging.Logger
	now    func() time.Time
}

type UserOption func(*UserService)

// WithUserClock overrides the time source, for deterministic tests.
func WithUserClock(now func() time.Time) UserOption {
	return func(s *UserService) { s.now = now }
}

func NewUserService(repo users.Repository, hasher *password.Hasher, codec *token.Codec, log logging.Logger, opts ...UserOption) *UserService {
	s := &UserService{repo: repo, hasher: hasher, codec: codec, log: log, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// RegisterParams carries the raw registration fields. Salary arrives as the
// client sent it and is parsed leniently.
type RegisterParams struct {
	Document string
	Name     string
	Email    string
	Password string
	Salary   string
}

// AuthResult is a successfully authenticated user together with a freshly
// issued token.
type AuthResult struct {
	User  *models.User
	Token string
}

// Register creates an affiliate account and signs it in. Email and document
// uniqueness is pre-checked for friendly errors; the database constraints
// remain the source of truth under concurrency.
func (s *UserService) Register(ctx context.Context, p RegisterParams) (*AuthResult, error) {
	if exists, err := s.repo.ExistsByEmail(ctx, p.Email); err != nil {
		return nil, fmt.Errorf("error checking email: %w", err)
	} else if exists {
		return nil, common.ErrDuplicateEmail
	}
	if exists, err := s.repo.ExistsByDocument(ctx, p.Document); err != nil {
		return nil, fmt.Errorf("error checking document: %w", err)
	} else if exists {
		return nil, common.ErrDuplicateDocument
	}

	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := models.NewUser(p.Document, p.Name, p.Email, hash, ParseSalary(p.Salary), s.now().UTC())

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) || errors.Is(err, common.ErrDuplicateDocument) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	tok, err := s.codec.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	s.log.Info(ctx, "user registered", "user_id", user.ID)

	return &AuthResult{User: user, Token: tok}, nil
}

// Login verifies the credentials and issues a token. Unknown emails and wrong
// passwords are indistinguishable to the caller; a deactivated account is
// reported as such only after the password has been verified.
func (s *UserService) Login(ctx context.Context, email, candidate string) (*AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.hasher.Verify(candidate, dummyDigest)
			return nil, common.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}

	if !s.hasher.Verify(candidate, user.PasswordHash) {
		return nil, common.ErrInvalidCredentials
	}

	if !user.IsActive() {
		return nil, common.ErrAccountDeactivated
	}

	tok, err := s.codec.Issue(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("error issuing token: %w", err)
	}

	s.log.Info(ctx, "user authenticated", "user_id", user.ID)

	return &AuthResult{User: user, Token: tok}, nil
}

// GetByID returns a user account by id.
func (s *UserService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error searching user: %w", err)
	}
	return user, nil
}

// SetStatus activates or deactivates an account. Deactivation takes effect on
// the next token verification boundary: already issued tokens stay valid
// until expiry.
func (s *UserService) SetStatus(ctx context.Context, id int64, status string) (*models.User, error) {
	st, err := models.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	user, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.SetStatus(st, s.now().UTC())

	if err := s.repo.UpdateStatus(ctx, user); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, fmt.Errorf("error updating status: %w", err)
	}

	s.log.Info(ctx, "user status changed", "user_id", user.ID, "status", user.Status)

	return user, nil
}
