package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookmylastwishes/portal/internal/ctxkeys"
	"github.com/bookmylastwishes/portal/internal/model"
	"github.com/bookmylastwishes/portal/internal/repository"
	"github.com/bookmylastwishes/portal/internal/service"
)

type stubUserRepo struct {
	user *model.User
}

func (s *stubUserRepo) Create(user *model.User) error                 { return nil }
func (s *stubUserRepo) ByEmail(email string) (*model.User, error)     { return nil, repository.ErrUserNotFound }
func (s *stubUserRepo) UpdatePassword(id, passwordHash string) error  { return nil }
func (s *stubUserRepo) Delete(id string) error                        { return nil }
func (s *stubUserRepo) ByID(id string) (*model.User, error) {
	if s.user != nil && s.user.ID == id {
		u := *s.user
		return &u, nil
	}
	return nil, repository.ErrUserNotFound
}

type stubSessionRepo struct {
	session *model.Session
}

func (s *stubSessionRepo) Create(session *model.Session) error              { return nil }
func (s *stubSessionRepo) MarkMigrated(id string) (bool, error)             { return false, nil }
func (s *stubSessionRepo) Delete(id string) error                           { return nil }
func (s *stubSessionRepo) DeleteByUserID(userID string) error               { return nil }
func (s *stubSessionRepo) DeleteOthers(userID, keepSessionID string) error  { return nil }
func (s *stubSessionRepo) DeleteExpired() (int64, error)                    { return 0, nil }
func (s *stubSessionRepo) ByID(id string) (*model.Session, error) {
	if s.session != nil && s.session.ID == id {
		sess := *s.session
		return &sess, nil
	}
	return nil, repository.ErrSessionNotFound
}

func authTestService(users *stubUserRepo, sessions *stubSessionRepo) *service.AuthService {
	email := service.NewEmailService("", "noreply@test", "support@test", "", "http://localhost", "TestApp", true)
	return service.NewAuthService(users, sessions, stubTokenRepo{}, nil, email,
		"test-secret", false, time.Hour, time.Hour)
}

type stubTokenRepo struct{}

func (stubTokenRepo) Create(token *model.Token) error                  { return nil }
func (stubTokenRepo) ConsumeToken(token string) (*model.Token, error)  { return nil, repository.ErrTokenNotFound }
func (stubTokenRepo) DeleteByUserAndType(userID, tokenType string) error { return nil }

func TestAuthMiddlewarePopulatesContext(t *testing.T) {
	user := &model.User{ID: "user-1", Email: "asha@example.com", PasswordHash: "secret-hash", Role: model.RolePatron}
	session := &model.Session{ID: "sess-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}

	users := &stubUserRepo{user: user}
	sessions := &stubSessionRepo{session: session}
	auth := authTestService(users, sessions)

	token, err := auth.GenerateJWT(user, session)
	require.NoError(t, err)

	var gotUser *model.User
	var gotSession *model.Session
	handler := AuthMiddleware(auth, users, sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = ctxkeys.User(r.Context())
		gotSession = ctxkeys.Session(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, gotUser)
	assert.Equal(t, "user-1", gotUser.ID)
	assert.Empty(t, gotUser.PasswordHash, "the hash must not ride along in the request context")
	require.NotNil(t, gotSession)
	assert.Equal(t, "sess-1", gotSession.ID)
}

func TestAuthMiddlewareDeletedSessionRevokesCookie(t *testing.T) {
	user := &model.User{ID: "user-1", Email: "asha@example.com"}
	session := &model.Session{ID: "sess-1", UserID: "user-1", ExpiresAt: time.Now().Add(time.Hour)}

	users := &stubUserRepo{user: user}
	sessions := &stubSessionRepo{session: nil} // session row already deleted
	auth := authTestService(users, sessions)

	token, err := auth.GenerateJWT(user, session)
	require.NoError(t, err)

	var gotUser *model.User
	handler := AuthMiddleware(auth, users, sessions)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = ctxkeys.User(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Nil(t, gotUser, "a valid JWT without a live session row must not authenticate")

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)
	assert.Equal(t, "auth_token", cookies[0].Name)
	assert.Empty(t, cookies[0].Value)
}

func TestRequireAuth(t *testing.T) {
	handler := RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/wishes", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	ctx := ctxkeys.WithUser(req.Context(), &model.User{ID: "user-1"})
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req.WithContext(ctx))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/tickets", nil)

	ctx := ctxkeys.WithUser(req.Context(), &model.User{ID: "user-1", Role: model.RolePatron})
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req.WithContext(ctx))
	assert.Equal(t, http.StatusForbidden, w.Code)

	ctx = ctxkeys.WithUser(req.Context(), &model.User{ID: "user-2", Role: model.RoleAdmin})
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req.WithContext(ctx))
	assert.Equal(t, http.StatusOK, w.Code)
}
