package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abdullah107189/Employee-Management-server-side/internal/middleware"
	"github.com/abdullah107189/Employee-Management-server-side/internal/services"
)

// cookieMaxAge - время жизни сессионной cookie в секундах (совпадает с TTL токена)
const cookieMaxAge = int(services.TokenTTL / time.Second)

// AuthHandler обрабатывает выпуск и сброс сессионной cookie
type AuthHandler struct {
	authService *services.AuthService
	production  bool // В production cookie выставляется с Secure и SameSite=None
}

// NewAuthHandler создает новый экземпляр AuthHandler
func NewAuthHandler(authService *services.AuthService, production bool) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		production:  production,
	}
}

// setSessionCookie выставляет HTTP-only cookie с токеном
// Атрибуты Secure/SameSite зависят от окружения: в production фронтенд
// живет на другом домене, поэтому нужны SameSite=None и Secure.
func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	if h.production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(middleware.AuthCookieName, token, maxAge, "/", "", h.production, true)
}

// SignJWT обработчик выпуска сессионного токена
// Принимает данные пользователя от провайдера аутентификации,
// подписывает токен с часовым сроком и выставляет его в cookie.
func (h *AuthHandler) SignJWT(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	token, err := h.authService.IssueToken(input.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка выпуска токена"})
		return
	}

	h.setSessionCookie(c, token, cookieMaxAge)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Logout обработчик завершения сессии
// Сбрасывает cookie и, если настроен Redis, отзывает еще действующий токен.
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(middleware.AuthCookieName); err == nil && token != "" {
		if err := h.authService.RevokeToken(c.Request.Context(), token); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка завершения сессии"})
			return
		}
	}

	h.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
