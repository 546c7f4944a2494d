package users

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	pkgauth "github.com/avillagomez/backoffice-backend/pkg/auth"
	"github.com/avillagomez/backoffice-backend/pkg/auth/session"
	"github.com/avillagomez/backoffice-backend/pkg/config"
	"github.com/avillagomez/backoffice-backend/pkg/enums"
	pkgerrors "github.com/avillagomez/backoffice-backend/pkg/errors"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'employee',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, conn.Exec(users).Error)
	require.NoError(t, conn.Exec("DELETE FROM users").Error)
	return conn
}

// fakeSessionManager keeps sessions in a map, mirroring the redis layout.
type fakeSessionManager struct {
	sessions map[string]string
}

func newFakeSessionManager() *fakeSessionManager {
	return &fakeSessionManager{sessions: map[string]string{}}
}

func (f *fakeSessionManager) Generate(_ context.Context, accessID string) (string, error) {
	token := "refresh-" + accessID
	f.sessions[accessID] = token
	return token, nil
}

func (f *fakeSessionManager) Rotate(_ context.Context, oldAccessID, provided string) (string, string, error) {
	stored, ok := f.sessions[oldAccessID]
	if !ok || stored != provided {
		return "", "", session.ErrInvalidRefreshToken
	}
	delete(f.sessions, oldAccessID)
	newID := session.NewAccessID()
	token := "refresh-" + newID
	f.sessions[newID] = token
	return newID, token, nil
}

func (f *fakeSessionManager) Revoke(_ context.Context, accessID string) error {
	delete(f.sessions, accessID)
	return nil
}

// fakeRateLimiter counts per scope with no window expiry.
type fakeRateLimiter struct {
	counts map[string]int64
}

func newFakeRateLimiter() *fakeRateLimiter {
	return &fakeRateLimiter{counts: map[string]int64{}}
}

func (f *fakeRateLimiter) FixedWindowAllow(_ context.Context, scope string, limit int64, _ time.Duration) (bool, int64, error) {
	f.counts[scope]++
	current := f.counts[scope]
	return current <= limit, current, nil
}

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret:       "unit-test-secret",
		Issuer:          "backoffice-test",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 24 * time.Hour,
		LoginRateLimit:  3,
		LoginRateWindow: time.Minute,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8 * 1024,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newTestService(t *testing.T, env string) (Service, *fakeSessionManager, *fakeRateLimiter) {
	t.Helper()
	conn := setupUsersTestDB(t)
	sessions := newFakeSessionManager()
	limiter := newFakeRateLimiter()
	svc, err := NewService(ServiceParams{
		Repo:           NewRepository(conn),
		SessionManager: sessions,
		RateLimiter:    limiter,
		AppConfig:      config.AppConfig{Env: env},
		AuthConfig:     testAuthConfig(),
		PasswordConfig: testPasswordConfig(),
	})
	require.NoError(t, err)
	return svc, sessions, limiter
}

func registerTestUser(t *testing.T, svc Service, username string) *UserDTO {
	t.Helper()
	user, err := svc.Register(context.Background(), RegisterInput{
		Username: username,
		Email:    fmt.Sprintf("%s@example.com", username),
		Password: "correct horse battery",
		Role:     enums.UserRoleEmployee,
	})
	require.NoError(t, err)
	return user
}

func TestRegisterValidationAndConflict(t *testing.T) {
	svc, _, _ := newTestService(t, config.AppEnvTest)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "x", Email: "not-an-email", Password: "long enough pw"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	_, err = svc.Register(ctx, RegisterInput{Username: "x", Email: "x@example.com", Password: "short"})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())

	registerTestUser(t, svc, "clerk")
	_, err = svc.Register(ctx, RegisterInput{
		Username: "clerk",
		Email:    "other@example.com",
		Password: "long enough pw",
	})
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeConflict, typed.Code())
}

func TestRegisterOwnerBlockedInProduction(t *testing.T) {
	svc, _, _ := newTestService(t, config.AppEnvProd)

	_, err := svc.Register(context.Background(), RegisterInput{
		Username: "boss",
		Email:    "boss@example.com",
		Password: "long enough pw",
		Role:     enums.UserRoleOwner,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeForbidden, typed.Code())

	// employee self-registration stays open
	_, err = svc.Register(context.Background(), RegisterInput{
		Username: "clerk",
		Email:    "clerk@example.com",
		Password: "long enough pw",
	})
	require.NoError(t, err)
}

func TestLoginMintsVerifiableToken(t *testing.T) {
	svc, sessions, _ := newTestService(t, config.AppEnvTest)
	ctx := context.Background()

	registerTestUser(t, svc, "maria")

	resp, err := svc.Login(ctx, LoginInput{Username: "maria", Password: "correct horse battery", ClientIP: "10.0.0.1"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "maria", resp.User.Username)

	claims, err := pkgauth.ParseAccessToken(testAuthConfig(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, enums.UserRoleEmployee, claims.Role)
	_, active := sessions.sessions[claims.ID]
	assert.True(t, active)

	_, err = svc.Login(ctx, LoginInput{Username: "maria", Password: "wrong", ClientIP: "10.0.0.1"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}

func TestLoginRateLimited(t *testing.T) {
	svc, _, _ := newTestService(t, config.AppEnvTest)
	ctx := context.Background()

	registerTestUser(t, svc, "pedro")

	for i := 0; i < 3; i++ {
		_, err := svc.Login(ctx, LoginInput{Username: "pedro", Password: "wrong", ClientIP: "10.0.0.2"})
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
	}

	_, err := svc.Login(ctx, LoginInput{Username: "pedro", Password: "correct horse battery", ClientIP: "10.0.0.2"})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeRateLimit, typed.Code())
}

func TestRefreshRotatesSession(t *testing.T) {
	svc, _, _ := newTestService(t, config.AppEnvTest)
	ctx := context.Background()

	registerTestUser(t, svc, "elena")
	login, err := svc.Login(ctx, LoginInput{Username: "elena", Password: "correct horse battery"})
	require.NoError(t, err)

	pair, err := svc.Refresh(ctx, RefreshInput{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	assert.NotEqual(t, login.RefreshToken, pair.RefreshToken)

	// the old pair is burned
	_, err = svc.Refresh(ctx, RefreshInput{
		AccessToken:  login.AccessToken,
		RefreshToken: login.RefreshToken,
	})
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())

	// the new pair works
	_, err = svc.Refresh(ctx, RefreshInput{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
	require.NoError(t, err)
}

func TestLogoutRevokesSession(t *testing.T) {
	svc, sessions, _ := newTestService(t, config.AppEnvTest)
	ctx := context.Background()

	registerTestUser(t, svc, "luis")
	login, err := svc.Login(ctx, LoginInput{Username: "luis", Password: "correct horse battery"})
	require.NoError(t, err)
	require.Len(t, sessions.sessions, 1)

	require.NoError(t, svc.Logout(ctx, login.AccessToken))
	assert.Empty(t, sessions.sessions)

	err = svc.Logout(ctx, "garbage.token.value")
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
}
