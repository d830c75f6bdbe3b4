package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdullah107189/Employee-Management-server-side/internal/models"
	"github.com/abdullah107189/Employee-Management-server-side/internal/services"
)

const testSecret = "test-secret"

// stubRoleLookup - заглушка хранилища ролей
type stubRoleLookup struct {
	roles map[string]string
}

func (s stubRoleLookup) RoleByEmail(_ context.Context, email string) (string, error) {
	role, ok := s.roles[email]
	if !ok {
		return "", services.ErrUserNotFound
	}
	return role, nil
}

// signTestToken подписывает тестовый токен с указанным сроком действия
func signTestToken(t *testing.T, secret, email string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"email": email,
		"jti":   "test-jti",
		"iat":   time.Now().Unix(),
		"exp":   time.Now().Add(ttl).Unix(),
	}
	tokenString, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tokenString
}

// newTestRouter собирает маршрутизатор с цепочкой guard-ов и пробным маршрутом
func newTestRouter(lookup RoleLookup, requiredRole string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	group := router.Group("/", JWTAuth(testSecret, nil))
	if requiredRole != "" {
		group.Use(RequireRole(lookup, requiredRole))
	}
	group.GET("/ping", func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "нет сессии"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"email": session.Email})
	})
	return router
}

func doRequest(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: AuthCookieName, Value: token})
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMissingCookie(t *testing.T) {
	router := newTestRouter(stubRoleLookup{}, "")

	w := doRequest(router, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthInvalidSignature(t *testing.T) {
	router := newTestRouter(stubRoleLookup{}, "")

	claims := jwt.MapClaims{"email": "a@b.c", "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("wrong-secret"))
	require.NoError(t, err)

	// Присутствующий, но невалидный токен - это 403, а не 401
	w := doRequest(router, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	router := newTestRouter(stubRoleLookup{}, "")

	token := signTestToken(t, testSecret, "a@b.c", -time.Minute)
	w := doRequest(router, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJWTAuthMissingEmailClaim(t *testing.T) {
	router := newTestRouter(stubRoleLookup{}, "")

	claims := jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	w := doRequest(router, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	router := newTestRouter(stubRoleLookup{}, "")

	token := signTestToken(t, testSecret, "a@b.c", time.Hour)
	w := doRequest(router, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "a@b.c")
}

func TestRequireRoleMatrix(t *testing.T) {
	lookup := stubRoleLookup{roles: map[string]string{
		"employee@b.c": models.RoleEmployee,
		"hr@b.c":       models.RoleHR,
		"admin@b.c":    models.RoleAdmin,
	}}

	// Каждый guard пускает только свою роль
	for _, requiredRole := range []string{models.RoleEmployee, models.RoleHR, models.RoleAdmin} {
		router := newTestRouter(lookup, requiredRole)
		for email, role := range lookup.roles {
			token := signTestToken(t, testSecret, email, time.Hour)
			w := doRequest(router, token)
			if role == requiredRole {
				assert.Equal(t, http.StatusOK, w.Code, "роль %s должна проходить guard %s", role, requiredRole)
			} else {
				assert.Equal(t, http.StatusForbidden, w.Code, "роль %s не должна проходить guard %s", role, requiredRole)
			}
		}
	}
}

func TestRequireRoleUnknownUser(t *testing.T) {
	router := newTestRouter(stubRoleLookup{}, models.RoleEmployee)

	// Валидный токен, но пользователя нет в хранилище - 403
	token := signTestToken(t, testSecret, "ghost@b.c", time.Hour)
	w := doRequest(router, token)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
