package auth

import (
	"context"
	"testing"
	"time"

	"flyviet/internal/shared/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeRepository struct {
	byEmail map[string]*AdminUser
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byEmail: make(map[string]*AdminUser)}
}

func (r *fakeRepository) CreateAdmin(ctx context.Context, admin *AdminUser) error {
	admin.ID = uuid.New()
	admin.CreatedAt = time.Now()
	r.byEmail[admin.Email] = admin
	return nil
}

func (r *fakeRepository) GetAdminByEmail(ctx context.Context, email string) (*AdminUser, error) {
	admin, ok := r.byEmail[email]
	if !ok {
		return nil, ErrAdminNotFound
	}
	return admin, nil
}

func (r *fakeRepository) GetAdminByID(ctx context.Context, id string) (*AdminUser, error) {
	for _, admin := range r.byEmail {
		if admin.ID.String() == id {
			return admin, nil
		}
	}
	return nil, ErrAdminNotFound
}

func (r *fakeRepository) UpdatePassword(ctx context.Context, adminID string, hashedPassword string) error {
	for _, admin := range r.byEmail {
		if admin.ID.String() == adminID {
			admin.Password = hashedPassword
			return nil
		}
	}
	return ErrAdminNotFound
}

func (r *fakeRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.JWTExpiresIn = time.Hour
	return cfg
}

func seedAdmin(t *testing.T, repo *fakeRepository, email, password string) *AdminUser {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &AdminUser{
		FullName: "Back Office",
		Email:    email,
		Password: string(hashed),
		Role:     "admin",
	}
	require.NoError(t, repo.CreateAdmin(context.Background(), admin))
	return admin
}

func TestLoginIssuesValidAccessToken(t *testing.T) {
	repo := newFakeRepository()
	seedAdmin(t, repo, "ops@flyviet.vn", "s3cret-pass")
	svc := NewService(repo, testConfig())

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ops@flyviet.vn",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, "admin", resp.Admin.Role)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "access", claims.Type)
	assert.Equal(t, "ops@flyviet.vn", claims.Email)
	assert.Equal(t, resp.Admin.ID, claims.AdminID)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	repo := newFakeRepository()
	seedAdmin(t, repo, "ops@flyviet.vn", "s3cret-pass")
	svc := NewService(repo, testConfig())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ops@flyviet.vn",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmailLooksLikeBadCredentials(t *testing.T) {
	svc := NewService(newFakeRepository(), testConfig())

	_, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "nobody@flyviet.vn",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestValidateTokenRejectsTampering(t *testing.T) {
	repo := newFakeRepository()
	seedAdmin(t, repo, "ops@flyviet.vn", "s3cret-pass")
	svc := NewService(repo, testConfig())

	resp, err := svc.Login(context.Background(), &LoginRequest{
		Email:    "ops@flyviet.vn",
		Password: "s3cret-pass",
	})
	require.NoError(t, err)

	_, err = svc.ValidateToken(resp.AccessToken + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)

	otherCfg := testConfig()
	otherCfg.JWT.Secret = "different-secret"
	otherSvc := NewService(repo, otherCfg)
	_, err = otherSvc.ValidateToken(resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCreateAdminRejectsDuplicateEmail(t *testing.T) {
	repo := newFakeRepository()
	svc := NewService(repo, testConfig())

	_, err := svc.CreateAdmin(context.Background(), "First Admin", "ops@flyviet.vn", "password123")
	require.NoError(t, err)

	_, err = svc.CreateAdmin(context.Background(), "Second Admin", "ops@flyviet.vn", "password456")
	assert.ErrorIs(t, err, ErrAdminExists)
}

func TestChangePasswordRequiresCurrentPassword(t *testing.T) {
	repo := newFakeRepository()
	admin := seedAdmin(t, repo, "ops@flyviet.vn", "s3cret-pass")
	svc := NewService(repo, testConfig())

	err := svc.ChangePassword(context.Background(), admin.ID.String(), &ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "new-password-1",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	err = svc.ChangePassword(context.Background(), admin.ID.String(), &ChangePasswordRequest{
		CurrentPassword: "s3cret-pass",
		NewPassword:     "new-password-1",
	})
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), &LoginRequest{
		Email:    "ops@flyviet.vn",
		Password: "new-password-1",
	})
	assert.NoError(t, err)
}
