package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// tokenBlacklistPrefix - ключи отозванных токенов в Redis
const tokenBlacklistPrefix = "auth:token:blacklist:"

// TokenTTL - срок действия сессионного токена
const TokenTTL = time.Hour

// AuthService выпускает и отзывает сессионные токены
type AuthService struct {
	jwtSecret string
	rdb       *redis.Client // nil - работаем без отзыва токенов
}

// NewAuthService создает новый экземпляр AuthService
func NewAuthService(jwtSecret string, rdb *redis.Client) *AuthService {
	return &AuthService{
		jwtSecret: jwtSecret,
		rdb:       rdb,
	}
}

// IssueToken подписывает сессионный токен для пользователя
// Токен несет email пользователя и действует один час.
func (s *AuthService) IssueToken(email string) (string, error) {
	if email == "" {
		return "", errors.New("email обязателен для выпуска токена")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"email": email,
		"jti":   uuid.NewString(), // Идентификатор токена для возможного отзыва
		"iat":   now.Unix(),
		"exp":   now.Add(TokenTTL).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return "", fmt.Errorf("ошибка подписи токена: %w", err)
	}
	return tokenString, nil
}

// RevokeToken помещает jti еще действующего токена в черный список Redis
// на остаток срока его жизни. Невалидный или просроченный токен отзывать
// не нужно - он и так не пройдет проверку подписи/срока в middleware.
func (s *AuthService) RevokeToken(ctx context.Context, tokenString string) error {
	if s.rdb == nil || tokenString == "" {
		return nil
	}

	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !token.Valid {
		return nil
	}

	jti, _ := claims["jti"].(string)
	expFloat, ok := claims["exp"].(float64)
	if jti == "" || !ok {
		return nil
	}

	ttl := time.Until(time.Unix(int64(expFloat), 0))
	if ttl <= 0 {
		return nil
	}

	key := tokenBlacklistPrefix + jti
	if err := s.rdb.Set(ctx, key, "1", ttl).Err(); err != nil {
		return fmt.Errorf("ошибка записи токена в черный список: %w", err)
	}
	return nil
}
