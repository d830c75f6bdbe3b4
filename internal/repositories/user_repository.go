package repositories

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/abdullah107189/Employee-Management-server-side/internal/models"
)

// --- Имена коллекций ---
const (
	CollectionUsers      = "user"
	CollectionWorkSheets = "work_sheet"
	CollectionPayments   = "payment_request"
)

// ErrNotFound - запись отсутствует в коллекции
var ErrNotFound = errors.New("запись не найдена")

// UserRepositoryInterface определяет методы для репозитория пользователей
type UserRepositoryInterface interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error)
	// FindAll возвращает всех пользователей; onlyVerified ограничивает выборку верифицированными
	FindAll(ctx context.Context, onlyVerified bool) ([]models.User, error)
	FindByRole(ctx context.Context, role string) ([]models.User, error)
	SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) error
	SetRole(ctx context.Context, email, role string) error
	// SetFired помечает пользователя уволенным (upsert: создает запись-заглушку, если ее нет)
	SetFired(ctx context.Context, email string) error
	SetSalary(ctx context.Context, id primitive.ObjectID, salary int) error
	// DetailsWithPayments возвращает пользователя вместе с историей успешных выплат
	DetailsWithPayments(ctx context.Context, id primitive.ObjectID) (*models.UserDetailsDTO, error)
}

// UserRepository реализует UserRepositoryInterface поверх коллекции user
type UserRepository struct {
	collection *mongo.Collection
}

// NewUserRepository создает новый экземпляр UserRepository
func NewUserRepository(collection *mongo.Collection) *UserRepository {
	return &UserRepository{collection: collection}
}

// FindByEmail находит пользователя по email (userInfo.email)
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := r.collection.FindOne(ctx, bson.M{"userInfo.email": email}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil // Пользователь не найден, ошибки нет
		}
		return nil, fmt.Errorf("ошибка при поиске пользователя в БД: %w", err)
	}
	return user, nil
}

// FindByID находит пользователя по идентификатору
func (r *UserRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user := &models.User{}
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("ошибка при поиске пользователя в БД: %w", err)
	}
	return user, nil
}

// Insert сохраняет нового пользователя
func (r *UserRepository) Insert(ctx context.Context, user *models.User) (primitive.ObjectID, error) {
	res, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("ошибка создания пользователя в БД: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("неожиданный тип идентификатора при вставке")
	}
	return id, nil
}

// FindAll возвращает список пользователей
func (r *UserRepository) FindAll(ctx context.Context, onlyVerified bool) ([]models.User, error) {
	filter := bson.M{}
	if onlyVerified {
		filter["isVerified"] = true
	}
	return r.findMany(ctx, filter)
}

// FindByRole возвращает пользователей с указанной ролью
func (r *UserRepository) FindByRole(ctx context.Context, role string) ([]models.User, error) {
	return r.findMany(ctx, bson.M{"role": role})
}

func (r *UserRepository) findMany(ctx context.Context, filter bson.M) ([]models.User, error) {
	cur, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки пользователей из БД: %w", err)
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("ошибка чтения пользователей из курсора: %w", err)
	}
	return users, nil
}

// SetVerified выставляет флаг верификации
func (r *UserRepository) SetVerified(ctx context.Context, id primitive.ObjectID, verified bool) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"isVerified": verified}})
	if err != nil {
		return fmt.Errorf("ошибка обновления флага верификации: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetRole выставляет роль пользователя по email
func (r *UserRepository) SetRole(ctx context.Context, email, role string) error {
	res, err := r.collection.UpdateOne(ctx,
		bson.M{"userInfo.email": email},
		bson.M{"$set": bson.M{"role": role}},
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления роли: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// SetFired помечает пользователя уволенным
// Upsert сохранен намеренно: при отсутствии записи создается заглушка
// только с email и флагом isFired (поведение исходной системы).
func (r *UserRepository) SetFired(ctx context.Context, email string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"userInfo.email": email},
		bson.M{"$set": bson.M{"isFired": true}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("ошибка увольнения пользователя: %w", err)
	}
	return nil
}

// SetSalary перезаписывает зарплату пользователя
func (r *UserRepository) SetSalary(ctx context.Context, id primitive.ObjectID, salary int) error {
	res, err := r.collection.UpdateByID(ctx, id, bson.M{"$set": bson.M{"salary": salary}})
	if err != nil {
		return fmt.Errorf("ошибка обновления зарплаты: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DetailsWithPayments возвращает пользователя вместе с успешными выплатами,
// спроецированными в пары {monthAndYear, salary} по возрастанию периода.
// Join выполняется агрегацией на стороне БД ($lookup по employeeEmail).
func (r *UserRepository) DetailsWithPayments(ctx context.Context, id primitive.ObjectID) (*models.UserDetailsDTO, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"_id": id}}},
		{{Key: "$lookup", Value: bson.M{
			"from": CollectionPayments,
			"let":  bson.M{"email": "$userInfo.email"},
			"pipeline": mongo.Pipeline{
				{{Key: "$match", Value: bson.M{"$expr": bson.M{"$and": bson.A{
					bson.M{"$eq": bson.A{"$employeeEmail", "$$email"}},
					bson.M{"$eq": bson.A{"$isPaymentSuccess", true}},
				}}}}},
				{{Key: "$project", Value: bson.M{"_id": 0, "monthAndYear": 1, "salary": 1}}},
				{{Key: "$sort", Value: bson.M{"monthAndYear": 1}}},
			},
			"as": "payments",
		}}},
	}

	cur, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("ошибка агрегации деталей пользователя: %w", err)
	}
	defer cur.Close(ctx)

	var docs []struct {
		models.User `bson:",inline"`
		Payments    []models.PaymentSlice `bson:"payments"`
	}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("ошибка чтения деталей пользователя из курсора: %w", err)
	}
	if len(docs) == 0 {
		return nil, ErrNotFound
	}

	return &models.UserDetailsDTO{
		User:     docs[0].User,
		Payments: docs[0].Payments,
	}, nil
}
