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

// PaymentRepositoryInterface определяет методы для репозитория заявок на выплату
type PaymentRepositoryInterface interface {
	// ExistsForPeriod проверяет наличие заявки на пару (email, период) перед вставкой
	ExistsForPeriod(ctx context.Context, email, monthAndYear string) (bool, error)
	Insert(ctx context.Context, request *models.PaymentRequest) (primitive.ObjectID, error)
	// Settle проводит выплату (upsert: создает запись, если ее нет)
	Settle(ctx context.Context, id primitive.ObjectID, paymentDate, transactionID string) error
	// FindForAdmin возвращает заявки, чьи сотрудники верифицированы (join с коллекцией user)
	FindForAdmin(ctx context.Context) ([]models.PaymentAdminView, error)
	// FindSuccessfulByEmail возвращает успешные выплаты сотрудника по убыванию даты выплаты
	FindSuccessfulByEmail(ctx context.Context, email string) ([]models.PaymentRequest, error)
	CountSuccessfulByEmail(ctx context.Context, email string) (int64, error)
}

// PaymentRepository реализует PaymentRepositoryInterface поверх коллекции payment_request
type PaymentRepository struct {
	collection *mongo.Collection
}

// NewPaymentRepository создает новый экземпляр PaymentRepository
func NewPaymentRepository(collection *mongo.Collection) *PaymentRepository {
	return &PaymentRepository{collection: collection}
}

// ExistsForPeriod проверяет, подана ли уже заявка за период
// Уникальность (employeeEmail, monthAndYear) обеспечивается этой проверкой
// перед вставкой, а не уникальным индексом.
func (r *PaymentRepository) ExistsForPeriod(ctx context.Context, email, monthAndYear string) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{
		"employeeEmail": email,
		"monthAndYear":  monthAndYear,
	}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, fmt.Errorf("ошибка проверки существующей заявки: %w", err)
	}
	return true, nil
}

// Insert сохраняет новую заявку на выплату
func (r *PaymentRepository) Insert(ctx context.Context, request *models.PaymentRequest) (primitive.ObjectID, error) {
	res, err := r.collection.InsertOne(ctx, request)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("ошибка создания заявки на выплату: %w", err)
	}
	id, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("неожиданный тип идентификатора при вставке")
	}
	return id, nil
}

// Settle помечает заявку оплаченной и присваивает идентификатор транзакции
// Upsert сохранен намеренно: при отсутствии заявки создается запись-заглушка
// только с проставленными полями (поведение исходной системы).
func (r *PaymentRepository) Settle(ctx context.Context, id primitive.ObjectID, paymentDate, transactionID string) error {
	_, err := r.collection.UpdateByID(ctx, id,
		bson.M{"$set": bson.M{
			"isPaymentSuccess": true,
			"paymentDate":      paymentDate,
			"transactionId":    transactionID,
		}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("ошибка проведения выплаты: %w", err)
	}
	return nil
}

// FindForAdmin возвращает заявки верифицированных сотрудников.
// Join с коллекцией user выполняется агрегацией: заявки, чей сотрудник
// не верифицирован (или отсутствует), отфильтровываются после $lookup.
func (r *PaymentRepository) FindForAdmin(ctx context.Context) ([]models.PaymentAdminView, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.M{
			"from":         CollectionUsers,
			"localField":   "employeeEmail",
			"foreignField": "userInfo.email",
			"as":           "employee",
		}}},
		{{Key: "$unwind", Value: "$employee"}},
		{{Key: "$match", Value: bson.M{"employee.isVerified": true}}},
		{{Key: "$project", Value: bson.M{
			"employeeEmail":    1,
			"employeeName":     1,
			"salary":           1,
			"monthAndYear":     1,
			"designation":      1,
			"isPaymentSuccess": 1,
		}}},
	}

	cur, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("ошибка агрегации заявок для администратора: %w", err)
	}
	defer cur.Close(ctx)

	var views []models.PaymentAdminView
	if err := cur.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("ошибка чтения заявок из курсора: %w", err)
	}
	return views, nil
}

// FindSuccessfulByEmail возвращает успешные выплаты сотрудника,
// отсортированные по дате выплаты по убыванию (самая свежая первой)
func (r *PaymentRepository) FindSuccessfulByEmail(ctx context.Context, email string) ([]models.PaymentRequest, error) {
	opts := options.Find().SetSort(bson.M{"paymentDate": -1})
	cur, err := r.collection.Find(ctx, bson.M{
		"employeeEmail":    email,
		"isPaymentSuccess": true,
	}, opts)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки истории выплат: %w", err)
	}
	defer cur.Close(ctx)

	var payments []models.PaymentRequest
	if err := cur.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("ошибка чтения истории выплат из курсора: %w", err)
	}
	return payments, nil
}

// CountSuccessfulByEmail возвращает общее число успешных выплат сотрудника
func (r *PaymentRepository) CountSuccessfulByEmail(ctx context.Context, email string) (int64, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{
		"employeeEmail":    email,
		"isPaymentSuccess": true,
	})
	if err != nil {
		return 0, fmt.Errorf("ошибка подсчета выплат: %w", err)
	}
	return count, nil
}
