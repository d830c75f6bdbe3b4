package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abdullah107189/Employee-Management-server-side/internal/models"
	"github.com/abdullah107189/Employee-Management-server-side/internal/repositories"
)

// DefaultHistoryLimit - размер страницы истории выплат по умолчанию
const DefaultHistoryLimit = 5

// PaymentServiceInterface определяет методы для сервиса выплат
type PaymentServiceInterface interface {
	SubmitRequest(ctx context.Context, request *models.PaymentRequest) (*models.PaymentRequest, error)
	Settle(ctx context.Context, id primitive.ObjectID, paymentDate string) (string, error)
	ListForAdmin(ctx context.Context) ([]models.PaymentAdminView, error)
	History(ctx context.Context, email string, page, limit int) (*models.PaymentHistoryDTO, error)
}

// PaymentService реализует PaymentServiceInterface
type PaymentService struct {
	paymentRepo repositories.PaymentRepositoryInterface
}

// NewPaymentService создает новый экземпляр PaymentService
func NewPaymentService(paymentRepo repositories.PaymentRepositoryInterface) *PaymentService {
	return &PaymentService{paymentRepo: paymentRepo}
}

// SubmitRequest подает заявку на выплату за период
// Повторная заявка на ту же пару (сотрудник, период) отклоняется до вставки.
func (s *PaymentService) SubmitRequest(ctx context.Context, request *models.PaymentRequest) (*models.PaymentRequest, error) {
	exists, err := s.paymentRepo.ExistsForPeriod(ctx, request.EmployeeEmail, request.MonthAndYear)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки существующей заявки: %w", err)
	}
	if exists {
		return nil, ErrDuplicatePayment
	}

	request.IsPaymentSuccess = false
	request.PaymentDate = ""
	request.TransactionID = ""

	id, err := s.paymentRepo.Insert(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("ошибка подачи заявки на выплату: %w", err)
	}
	request.ID = id
	return request, nil
}

// newTransactionID генерирует случайный шестнадцатеричный идентификатор транзакции
func newTransactionID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// Settle проводит выплату: помечает заявку оплаченной, проставляет дату
// и идентификатор транзакции. Возвращает присвоенный идентификатор.
func (s *PaymentService) Settle(ctx context.Context, id primitive.ObjectID, paymentDate string) (string, error) {
	if paymentDate == "" {
		paymentDate = time.Now().Format(time.RFC3339)
	}

	transactionID := newTransactionID()
	if err := s.paymentRepo.Settle(ctx, id, paymentDate, transactionID); err != nil {
		return "", fmt.Errorf("ошибка проведения выплаты: %w", err)
	}
	return transactionID, nil
}

// ListForAdmin возвращает заявки верифицированных сотрудников
func (s *PaymentService) ListForAdmin(ctx context.Context) ([]models.PaymentAdminView, error) {
	views, err := s.paymentRepo.FindForAdmin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения заявок: %w", err)
	}
	return views, nil
}

// History возвращает страницу истории успешных выплат сотрудника.
// Самая свежая выплата отдается отдельным полем, а страница нарезается
// из списка, пересортированного по возрастанию даты:
// skip = (page-1)*limit, срез [skip, skip+limit). Выход skip за длину
// списка дает пустую страницу, а не ошибку.
func (s *PaymentService) History(ctx context.Context, email string, page, limit int) (*models.PaymentHistoryDTO, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultHistoryLimit
	}

	payments, err := s.paymentRepo.FindSuccessfulByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения истории выплат: %w", err)
	}
	total, err := s.paymentRepo.CountSuccessfulByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("ошибка подсчета выплат: %w", err)
	}

	history := &models.PaymentHistoryDTO{
		Payments:     []models.PaymentRequest{},
		TotalPayment: total,
	}

	// Репозиторий отдает выплаты по убыванию даты: первая - самая свежая
	if len(payments) > 0 {
		first := payments[0]
		history.FirstPayment = &first
	}

	// Пересортировка по возрастанию даты для хронологической страницы
	sort.SliceStable(payments, func(i, j int) bool {
		return payments[i].PaymentDate < payments[j].PaymentDate
	})

	skip := (page - 1) * limit
	if skip < len(payments) {
		end := skip + limit
		if end > len(payments) {
			end = len(payments)
		}
		history.Payments = payments[skip:end]
	}

	return history, nil
}
