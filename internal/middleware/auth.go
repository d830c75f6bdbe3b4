package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"

	"github.com/abdullah107189/Employee-Management-server-side/internal/models"
	"github.com/abdullah107189/Employee-Management-server-side/internal/services"
)

// AuthCookieName - имя cookie с сессионным токеном
const AuthCookieName = "token"

// sessionKey - ключ сессии в контексте Gin
const sessionKey = "session"

// tokenBlacklistPrefix должен совпадать с префиксом в AuthService
const tokenBlacklistPrefix = "auth:token:blacklist:"

// RoleLookup - доступ к роли пользователя по email (реализуется UserService)
type RoleLookup interface {
	RoleByEmail(ctx context.Context, email string) (string, error)
}

// JWTAuth - middleware для проверки сессионного токена
// Отсутствующий токен дает 401, присутствующий, но невалидный
// (подпись, срок, отзыв) - 403. При успехе в контекст кладется
// типизированная сессия с email пользователя.
func JWTAuth(secretKey string, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(AuthCookieName)
		if err != nil || tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Отсутствует сессионный токен"})
			c.Abort()
			return
		}

		// Парсинг и валидация токена
		claims := jwt.MapClaims{}
		token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			// Проверяем метод подписи: убеждаемся, что это HMAC
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secretKey), nil
		})
		if err != nil || !token.Valid {
			errorMsg := "Невалидный токен"
			if errors.Is(err, jwt.ErrTokenExpired) {
				errorMsg = "Срок действия токена истек"
			}
			c.JSON(http.StatusForbidden, gin.H{"error": errorMsg})
			c.Abort()
			return
		}

		email, _ := claims["email"].(string)
		if email == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Токен не содержит email"})
			c.Abort()
			return
		}

		// Проверка черного списка отозванных токенов (если настроен Redis)
		if rdb != nil {
			if jti, _ := claims["jti"].(string); jti != "" {
				exists, redisErr := rdb.Exists(c.Request.Context(), tokenBlacklistPrefix+jti).Result()
				if redisErr != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка проверки сессии"})
					c.Abort()
					return
				}
				if exists > 0 {
					c.JSON(http.StatusForbidden, gin.H{"error": "Токен отозван"})
					c.Abort()
					return
				}
			}
		}

		c.Set(sessionKey, &models.Session{Email: email})
		c.Next()
	}
}

// GetSession возвращает сессию аутентифицированного запроса
func GetSession(c *gin.Context) (*models.Session, bool) {
	value, exists := c.Get(sessionKey)
	if !exists {
		return nil, false
	}
	session, ok := value.(*models.Session)
	return session, ok
}

// RequireRole - параметризованная проверка роли
// Роль вызывающего читается из хранилища по email сессии; несовпадение
// с требуемой ролью (или отсутствие пользователя) дает 403.
// Единственная реализация обслуживает все три роли.
func RequireRole(users RoleLookup, requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := GetSession(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Пользователь не авторизован"})
			c.Abort()
			return
		}

		role, err := users.RoleByEmail(c.Request.Context(), session.Email)
		if err != nil {
			if errors.Is(err, services.ErrUserNotFound) {
				c.JSON(http.StatusForbidden, gin.H{"error": "Доступ запрещен"})
				c.Abort()
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка проверки прав доступа"})
			c.Abort()
			return
		}

		if role != requiredRole {
			c.JSON(http.StatusForbidden, gin.H{"error": "Доступ запрещен. Требуется роль: " + requiredRole})
			c.Abort()
			return
		}
		c.Next()
	}
}
