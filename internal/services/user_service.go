package services

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abdullah107189/Employee-Management-server-side/internal/models"
	"github.com/abdullah107189/Employee-Management-server-side/internal/repositories"
)

// UserServiceInterface определяет методы для сервиса пользователей
type UserServiceInterface interface {
	Register(ctx context.Context, user *models.User) (*models.User, error)
	// ListUsers возвращает пользователей; onlyVerified ограничивает выборку,
	// firedEmail (если задан) дополнительно проверяет, не уволена ли учетная запись
	ListUsers(ctx context.Context, onlyVerified bool, firedEmail string) ([]models.User, error)
	RoleByEmail(ctx context.Context, email string) (string, error)
	OnlyEmployees(ctx context.Context) ([]models.User, error)
	ToggleVerification(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	ChangeRole(ctx context.Context, email string) (*models.User, error)
	Fire(ctx context.Context, email string) error
	UpdateSalary(ctx context.Context, id primitive.ObjectID, salary int) error
	GetDetails(ctx context.Context, id primitive.ObjectID) (*models.UserDetailsDTO, error)
}

// UserService реализует UserServiceInterface
type UserService struct {
	userRepo repositories.UserRepositoryInterface
}

// NewUserService создает новый экземпляр UserService
func NewUserService(userRepo repositories.UserRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register регистрирует нового пользователя
// Пользователь с уже занятым email отклоняется до вставки.
func (s *UserService) Register(ctx context.Context, user *models.User) (*models.User, error) {
	existing, err := s.userRepo.FindByEmail(ctx, user.UserInfo.Email)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки существующего пользователя: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	// Роль по умолчанию - сотрудник
	if user.Role == "" {
		user.Role = models.RoleEmployee
	}

	id, err := s.userRepo.Insert(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	user.ID = id
	return user, nil
}

// ListUsers возвращает список пользователей с опциональными фильтрами
func (s *UserService) ListUsers(ctx context.Context, onlyVerified bool, firedEmail string) ([]models.User, error) {
	// Проверка уволенной учетной записи выполняется до выборки:
	// фронтенд вызывает ее при входе, чтобы не пустить уволенного сотрудника
	if firedEmail != "" {
		user, err := s.userRepo.FindByEmail(ctx, firedEmail)
		if err != nil {
			return nil, fmt.Errorf("ошибка проверки учетной записи: %w", err)
		}
		if user != nil && user.IsFired {
			return nil, ErrAccountFired
		}
	}

	users, err := s.userRepo.FindAll(ctx, onlyVerified)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пользователей: %w", err)
	}
	return users, nil
}

// RoleByEmail возвращает роль пользователя по email
func (s *UserService) RoleByEmail(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("ошибка поиска пользователя: %w", err)
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	return user.Role, nil
}

// OnlyEmployees возвращает пользователей с ролью сотрудника
func (s *UserService) OnlyEmployees(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.FindByRole(ctx, models.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения сотрудников: %w", err)
	}
	return users, nil
}

// ToggleVerification переключает флаг верификации пользователя
// Повторный вызов возвращает флаг в исходное состояние.
func (s *UserService) ToggleVerification(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	user.IsVerified = !user.IsVerified
	if err := s.userRepo.SetVerified(ctx, id, user.IsVerified); err != nil {
		return nil, fmt.Errorf("ошибка переключения верификации: %w", err)
	}
	return user, nil
}

// ChangeRole меняет роль пользователя между employee и hr
// Для любой другой роли (admin) вызов ничего не меняет: администраторы
// намеренно не участвуют в ротации ролей.
func (s *UserService) ChangeRole(ctx context.Context, email string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска пользователя: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	var newRole string
	switch user.Role {
	case models.RoleEmployee:
		newRole = models.RoleHR
	case models.RoleHR:
		newRole = models.RoleEmployee
	default:
		return user, nil // no-op
	}

	if err := s.userRepo.SetRole(ctx, email, newRole); err != nil {
		return nil, fmt.Errorf("ошибка смены роли: %w", err)
	}
	user.Role = newRole
	return user, nil
}

// Fire помечает пользователя уволенным (upsert в репозитории)
func (s *UserService) Fire(ctx context.Context, email string) error {
	if err := s.userRepo.SetFired(ctx, email); err != nil {
		return fmt.Errorf("ошибка увольнения пользователя: %w", err)
	}
	return nil
}

// UpdateSalary перезаписывает зарплату пользователя
func (s *UserService) UpdateSalary(ctx context.Context, id primitive.ObjectID, salary int) error {
	if err := s.userRepo.SetSalary(ctx, id, salary); err != nil {
		return err
	}
	return nil
}

// GetDetails возвращает пользователя вместе с историей успешных выплат
func (s *UserService) GetDetails(ctx context.Context, id primitive.ObjectID) (*models.UserDetailsDTO, error) {
	details, err := s.userRepo.DetailsWithPayments(ctx, id)
	if err != nil {
		return nil, err
	}
	return details, nil
}
