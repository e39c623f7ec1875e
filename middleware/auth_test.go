package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overtimepay/database"
	"overtimepay/models"
)

func setup(t *testing.T) *models.User {
	t.Helper()
	SetJWTSecret("test-secret")
	db, err := database.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), false)
	require.NoError(t, err)
	database.DB = db
	t.Cleanup(func() { database.Close() })

	user := &models.User{Username: "alice", FullName: "Alice", PasswordHash: "x", Role: models.RoleEmployee}
	require.NoError(t, db.Create(user).Error)
	require.NoError(t, db.Model(user).Update("must_change_password", false).Error)
	user.MustChangePassword = false
	return user
}

var echoUser = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	fmt.Fprint(w, user.Username)
})

func TestTokenRoundTrip(t *testing.T) {
	SetJWTSecret("test-secret")
	user := &models.User{ID: 7, Username: "alice", Role: models.RoleAdmin}

	token, err := GenerateToken(user, time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)

	SetJWTSecret("other-secret")
	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateToken_Expired(t *testing.T) {
	SetJWTSecret("test-secret")
	token, err := GenerateToken(&models.User{ID: 1}, -time.Minute)
	require.NoError(t, err)

	_, err = ValidateToken(token)
	assert.Error(t, err)
}

func TestAuthMiddleware(t *testing.T) {
	user := setup(t)
	token, err := GenerateToken(user, time.Hour)
	require.NoError(t, err)
	handler := AuthMiddleware(echoUser)

	t.Run("bearer header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/records", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "alice", rec.Body.String())
	})

	t.Run("cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/records", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: token})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/records", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.JSONEq(t, `{"error":"authentication required"}`, rec.Body.String())
	})

	t.Run("bad token clears cookie", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/records", nil)
		req.AddCookie(&http.Cookie{Name: TokenCookie, Value: "garbage"})
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		require.NotEmpty(t, rec.Result().Cookies())
		assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
	})
}

func TestRequirePasswordChange(t *testing.T) {
	user := &models.User{Username: "alice", MustChangePassword: true}
	handler := RequirePasswordChange(echoUser)

	req := httptest.NewRequest(http.MethodGet, "/api/records", nil)
	req = req.WithContext(WithUser(req.Context(), user))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/change-password", nil)
	req = req.WithContext(WithUser(req.Context(), user))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole(t *testing.T) {
	handler := RequireRole(models.RoleAdmin)(echoUser)

	tests := []struct {
		name string
		user *models.User
		want int
	}{
		{"anonymous", nil, http.StatusUnauthorized},
		{"employee", &models.User{Username: "bob", Role: models.RoleEmployee}, http.StatusForbidden},
		{"admin", &models.User{Username: "root", Role: models.RoleAdmin}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
			if tt.user != nil {
				req = req.WithContext(WithUser(req.Context(), tt.user))
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
