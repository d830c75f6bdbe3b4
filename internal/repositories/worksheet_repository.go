package repositories

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abdullah107189/Employee-Management-server-side/internal/models"
)

// WorkSheetRepositoryInterface определяет методы для репозитория рабочих листов
type WorkSheetRepositoryInterface interface {
	Insert(ctx context.Context, entry *models.WorkSheetEntry) (primitive.ObjectID, error)
	// FindByEmail возвращает записи сотрудника по убыванию даты
	FindByEmail(ctx context.Context, email string) ([]models.WorkSheetEntry, error)
	FindAll(ctx context.Context) ([]models.WorkSheetEntry, error)
	// FindFiltered возвращает записи по отчетным фильтрам; пустая строка - без ограничения
	FindFiltered(ctx context.Context, name, month string) ([]models.WorkSheetEntry, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.WorkSheetUpdateDTO, month string) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// WorkSheetRepository реализует WorkSheetRepositoryInterface поверх коллекции work_sheet
type WorkSheetRepository struct {
	collection *mongo.Collection
}

// NewWorkSheetRepository создает новый экземпляр WorkSheetRepository
func NewWorkSheetRepository(collection *mongo.Collection) *WorkSheetRepository {
	return &WorkSheetRepository{collection: collection}
}

// Insert сохраняет новую запись рабочего листа (без дедупликации)
func (r *WorkSheetRepository) Insert(ctx context.Context, entry *models.WorkSheetEntry) (primitive.ObjectID, error) {
	res, err := r.collection.InsertOne(ctx, entry)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("ошибка создания записи рабочего листа: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, fmt.Errorf("неожиданный тип идентификатора при вставке")
	}
	return id, nil
}

// FindByEmail возвращает записи одного сотрудника, отсортированные по дате по убыванию
func (r *WorkSheetRepository) FindByEmail(ctx context.Context, email string) ([]models.WorkSheetEntry, error) {
	opts := options.Find().SetSort(bson.M{"date": -1})
	return r.findMany(ctx, bson.M{"email": email}, opts)
}

// FindAll возвращает все записи без сортировки (HR-список)
func (r *WorkSheetRepository) FindAll(ctx context.Context) ([]models.WorkSheetEntry, error) {
	return r.findMany(ctx, bson.M{}, options.Find())
}

// BuildProgressFilter собирает фильтр отчета из необязательных предикатов.
// Каждый непустой параметр добавляет одно условие точного совпадения;
// пустой набор параметров дает полную выборку.
func BuildProgressFilter(name, month string) bson.M {
	filter := bson.M{}
	if name != "" {
		filter["name"] = name
	}
	if month != "" {
		filter["month"] = month
	}
	return filter
}

// FindFiltered возвращает записи, удовлетворяющие отчетным фильтрам
func (r *WorkSheetRepository) FindFiltered(ctx context.Context, name, month string) ([]models.WorkSheetEntry, error) {
	return r.findMany(ctx, BuildProgressFilter(name, month), options.Find())
}

func (r *WorkSheetRepository) findMany(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]models.WorkSheetEntry, error) {
	cur, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки рабочих листов из БД: %w", err)
	}
	defer cur.Close(ctx)

	var entries []models.WorkSheetEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("ошибка чтения рабочих листов из курсора: %w", err)
	}
	return entries, nil
}

// Update перезаписывает только work/hours/date (и пересчитанный month)
func (r *WorkSheetRepository) Update(ctx context.Context, id primitive.ObjectID, update models.WorkSheetUpdateDTO, month string) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"work":  update.Work,
		"hours": update.Hours,
		"date":  update.Date,
		"month": month,
	}})
	if err != nil {
		return fmt.Errorf("ошибка обновления записи рабочего листа: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete жестко удаляет запись по идентификатору
func (r *WorkSheetRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("ошибка удаления записи рабочего листа: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
