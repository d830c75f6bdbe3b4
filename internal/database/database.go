package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/abdullah107189/Employee-Management-server-side/internal/config"
)

// NewConnection создает и возвращает новое подключение к MongoDB
// Клиент безопасен для конкурентного использования и живет все время работы процесса.
func NewConnection(cfg config.DatabaseConfig) (*mongo.Client, error) {
	log.Println("Попытка подключения к базе данных...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		log.Printf("Ошибка при открытии соединения с БД: %v\n", err)
		return nil, fmt.Errorf("ошибка открытия соединения с БД: %w", err)
	}

	// Проверяем соединение
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		log.Printf("Ошибка при проверке соединения с БД (Ping): %v\n", err)
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ошибка проверки соединения с БД: %w", err)
	}

	log.Println("Успешное подключение к базе данных!")
	return client, nil
}
