package config

import (
	"errors"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config - структура для хранения конфигурации приложения
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	CORS     CORSConfig
	// Env - режим работы приложения: production | development
	// От него зависят атрибуты Secure/SameSite сессионной cookie.
	Env string
}

// ServerConfig - конфигурация сервера
type ServerConfig struct {
	Port string
}

// DatabaseConfig - конфигурация базы данных
type DatabaseConfig struct {
	URI  string // MongoDB connection string
	Name string // Имя базы данных
}

// JWTConfig - конфигурация JWT
type JWTConfig struct {
	Secret string // Секретный ключ для подписи токенов
}

// RedisConfig - конфигурация Redis (опционально, для отзыва токенов)
type RedisConfig struct {
	Addr     string // Пустая строка - работаем без отзыва токенов
	Password string
}

// CORSConfig - конфигурация CORS
type CORSConfig struct {
	Origin string // Origin фронтенда, которому разрешены credentials
}

// IsProduction сообщает, работает ли приложение в боевом режиме
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load - функция для загрузки конфигурации из переменных окружения
// .env файл опционален: если его нет, используются переменные окружения процесса.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println(".env не найден, используются переменные окружения")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: os.Getenv("PORT"),
		},
		Database: DatabaseConfig{
			URI:  os.Getenv("MONGODB_URI"),
			Name: os.Getenv("MONGODB_DATABASE"),
		},
		JWT: JWTConfig{
			Secret: os.Getenv("JWT_SECRET"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
		},
		CORS: CORSConfig{
			Origin: os.Getenv("CORS_ORIGIN"),
		},
		Env: os.Getenv("APP_ENV"),
	}

	// Значения по умолчанию
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":4545"
	}
	if cfg.Database.Name == "" {
		cfg.Database.Name = "Employee_Management"
	}
	if cfg.CORS.Origin == "" {
		cfg.CORS.Origin = "http://localhost:5173"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}

	// Обязательные параметры
	if cfg.Database.URI == "" {
		return nil, errors.New("необходимо указать MONGODB_URI")
	}
	if cfg.JWT.Secret == "" {
		return nil, errors.New("необходимо указать JWT_SECRET")
	}

	return cfg, nil
}
