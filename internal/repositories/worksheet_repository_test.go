package repositories

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
)

func TestBuildProgressFilter(t *testing.T) {
	// Пустые параметры - полная выборка
	assert.Equal(t, bson.M{}, BuildProgressFilter("", ""))

	// Каждый непустой параметр добавляет одно условие точного совпадения
	assert.Equal(t, bson.M{"name": "Alice"}, BuildProgressFilter("Alice", ""))
	assert.Equal(t, bson.M{"month": "2025-01"}, BuildProgressFilter("", "2025-01"))
	assert.Equal(t, bson.M{"name": "Alice", "month": "2025-01"}, BuildProgressFilter("Alice", "2025-01"))
}
