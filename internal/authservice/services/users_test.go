package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/mycompany/credit-platform/internal/authservice/models"
	"github.com/mycompany/credit-platform/internal/common"
	"github.com/mycompany/credit-platform/internal/logging"
	"github.com/mycompany/credit-platform/internal/password"
	"github.com/mycompany/credit-platform/internal/roles"
	"github.com/mycompany/credit-platform/internal/token"
)

type fakeRepo struct {
	byEmail    map[string]*models.User
	byDocument map[string]*models.User
	byID       map[int64]*models.User
	nextID     int64
	updated    *models.User
	failWith   error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		byEmail:    map[string]*models.User{},
		byDocument: map[string]*models.User{},
		byID:       map[int64]*models.User{},
		nextID:     1,
	}
}

func (f *fakeRepo) add(u *models.User) *models.User {
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	f.byDocument[u.Document] = u
	f.byID[u.ID] = u
	return u
}

func (f *fakeRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.add(u), nil
}

func (f *fakeRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	return u, nil
}

func (f *fakeRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.byEmail[email]
	return ok, nil
}

func (f *fakeRepo) ExistsByDocument(ctx context.Context, document string) (bool, error) {
	_, ok := f.byDocument[document]
	return ok, nil
}

func (f *fakeRepo) UpdateStatus(ctx context.Context, u *models.User) error {
	if _, ok := f.byID[u.ID]; !ok {
		return common.ErrNotFound
	}
	f.updated = u
	return nil
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func newService(repo *fakeRepo) *UserService {
	hasher := password.NewHasher(bcrypt.MinCost)
	codec := token.NewCodec("test-secret", time.Hour)
	return NewUserService(repo, hasher, codec, testLogger())
}

func registerParams() RegisterParams {
	return RegisterParams{
		Document: "12345678",
		Name:     "Maria Lopez",
		Email:    "maria@example.com",
		Password: "hunter22",
		Salary:   "$3,500,000",
	}
}

func TestRegister_Success(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	res, err := svc.Register(context.Background(), registerParams())
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if res.Token == "" {
		t.Fatal("expected a token")
	}
	if res.User.Role != roles.Affiliate {
		t.Errorf("Role = %s, want AFFILIATE", res.User.Role)
	}
	if res.User.Salary != 3500000 {
		t.Errorf("Salary = %d, want 3500000", res.User.Salary)
	}
	if res.User.PasswordHash == "hunter22" {
		t.Fatal("password stored in plaintext")
	}

	// the issued token must verify with the same secret and carry the identity
	claims, err := token.NewCodec("test-secret", time.Hour).Verify(res.Token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.UserID != res.User.ID || claims.Email() != "maria@example.com" || claims.Role != "AFFILIATE" {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	if _, err := svc.Register(context.Background(), registerParams()); err != nil {
		t.Fatalf("first Register error: %v", err)
	}

	p := registerParams()
	p.Document = "99999999"
	if _, err := svc.Register(context.Background(), p); !errors.Is(err, common.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestRegister_DuplicateDocument(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	if _, err := svc.Register(context.Background(), registerParams()); err != nil {
		t.Fatalf("first Register error: %v", err)
	}

	p := registerParams()
	p.Email = "other@example.com"
	if _, err := svc.Register(context.Background(), p); !errors.Is(err, common.ErrDuplicateDocument) {
		t.Fatalf("expected ErrDuplicateDocument, got %v", err)
	}
}

func TestRegister_ConcurrentDuplicateSurfacesConstraint(t *testing.T) {
	// pre-checks pass but the insert hits the unique constraint
	repo := newFakeRepo()
	repo.failWith = common.ErrDuplicateEmail
	svc := newService(repo)

	if _, err := svc.Register(context.Background(), registerParams()); !errors.Is(err, common.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestLogin_Success(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	if _, err := svc.Register(context.Background(), registerParams()); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	res, err := svc.Login(context.Background(), "maria@example.com", "hunter22")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if res.Token == "" {
		t.Fatal("expected a token")
	}
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	if _, err := svc.Register(context.Background(), registerParams()); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, errWrong := svc.Login(context.Background(), "maria@example.com", "nope")
	_, errUnknown := svc.Login(context.Background(), "ghost@example.com", "nope")

	if !errors.Is(errWrong, common.ErrInvalidCredentials) {
		t.Fatalf("wrong password: %v", errWrong)
	}
	if !errors.Is(errUnknown, common.ErrInvalidCredentials) {
		t.Fatalf("unknown email: %v", errUnknown)
	}
	if errWrong.Error() != errUnknown.Error() {
		t.Fatal("credential failures must be indistinguishable")
	}
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	res, err := svc.Register(context.Background(), registerParams())
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	res.User.SetStatus(models.StatusInactive, time.Now())

	if _, err := svc.Login(context.Background(), "maria@example.com", "hunter22"); !errors.Is(err, common.ErrAccountDeactivated) {
		t.Fatalf("expected ErrAccountDeactivated, got %v", err)
	}
}

func TestLogin_DeactivatedAccountWrongPassword(t *testing.T) {
	// wrong password wins over the deactivated status: credentials are
	// verified first
	repo := newFakeRepo()
	svc := newService(repo)

	res, err := svc.Register(context.Background(), registerParams())
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	res.User.SetStatus(models.StatusInactive, time.Now())

	if _, err := svc.Login(context.Background(), "maria@example.com", "nope"); !errors.Is(err, common.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestGetByID_NotFound(t *testing.T) {
	svc := newService(newFakeRepo())

	if _, err := svc.GetByID(context.Background(), 404); !errors.Is(err, common.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSetStatus(t *testing.T) {
	repo := newFakeRepo()
	svc := newService(repo)

	res, err := svc.Register(context.Background(), registerParams())
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	u, err := svc.SetStatus(context.Background(), res.User.ID, "INACTIVE")
	if err != nil {
		t.Fatalf("SetStatus error: %v", err)
	}
	if u.Status != models.StatusInactive {
		t.Errorf("Status = %s, want INACTIVE", u.Status)
	}
	if repo.updated == nil {
		t.Fatal("status change not persisted")
	}

	if _, err := svc.SetStatus(context.Background(), res.User.ID, "SUSPENDED"); !errors.Is(err, common.ErrInvalidStatusValue) {
		t.Fatalf("expected ErrInvalidStatusValue, got %v", err)
	}
	if _, err := svc.SetStatus(context.Background(), 404, "ACTIVE"); !errors.Is(err, common.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}
