package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/globals"
	"storefront/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func signedToken(t *testing.T, secret []byte, role string, ttl time.Duration) string {
	t.Helper()
	claims := &Claims{
		UserID: "u123",
		Email:  "shopper@example.com",
		Role:   role,
		Name:   "Shopper",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	require.NoError(t, err)
	return token
}

func TestValidateJWTRoundTrip(t *testing.T) {
	a := NewAuthenticator(testSecret)
	token := signedToken(t, testSecret, models.RoleUser, time.Hour)

	claims, err := a.ValidateJWT("Bearer " + token)
	require.NoError(t, err)
	assert.Equal(t, "u123", claims.UserID)
	assert.Equal(t, "shopper@example.com", claims.Email)
	assert.Equal(t, models.RoleUser, claims.Role)
	assert.Equal(t, "Shopper", claims.Name)
}

func TestAuthenticateMissingToken(t *testing.T) {
	a := NewAuthenticator(testSecret)
	handler := a.Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not be reached")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// Auth failures use the same JSON error envelope as every other error.
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Missing token"}`, rec.Body.String())
}

func TestAuthenticateWrongSecret(t *testing.T) {
	a := NewAuthenticator(testSecret)
	token := signedToken(t, []byte("other-secret"), models.RoleUser, time.Hour)

	handler := a.Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateExpiredToken(t *testing.T) {
	a := NewAuthenticator(testSecret)
	token := signedToken(t, testSecret, models.RoleUser, -time.Minute)

	handler := a.Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticateStoresIdentityInContext(t *testing.T) {
	a := NewAuthenticator(testSecret)
	token := signedToken(t, testSecret, models.RoleAdmin, time.Hour)

	var gotUserID, gotRole string
	handler := a.Authenticate(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		gotUserID, _ = r.Context().Value(globals.UserIDKey).(string)
		gotRole, _ = r.Context().Value(globals.RoleKey).(string)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u123", gotUserID)
	assert.Equal(t, models.RoleAdmin, gotRole)
}

// An unauthenticated caller must see the authentication failure, not the
// role failure.
func TestAdminOnlyChecksAuthenticationFirst(t *testing.T) {
	a := NewAuthenticator(testSecret)
	handler := a.AdminOnly(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not be reached")
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminOnlyRejectsNonAdmin(t *testing.T) {
	a := NewAuthenticator(testSecret)
	token := signedToken(t, testSecret, models.RoleUser, time.Hour)

	handler := a.AdminOnly(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		t.Fatal("handler should not be reached")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.JSONEq(t, `{"error":"Admin access required"}`, rec.Body.String())
}

func TestAdminOnlyAllowsAdmin(t *testing.T) {
	a := NewAuthenticator(testSecret)
	token := signedToken(t, testSecret, models.RoleAdmin, time.Hour)

	called := false
	handler := a.AdminOnly(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler(rec, req, nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestOptionalAuthProceedsWithoutToken(t *testing.T) {
	a := NewAuthenticator(testSecret)

	called := false
	handler := a.OptionalAuth(func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		called = true
		_, ok := r.Context().Value(globals.UserIDKey).(string)
		assert.False(t, ok)
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.True(t, called)
}
