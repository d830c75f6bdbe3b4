package services

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abdullah107189/Employee-Management-server-side/internal/models"
	"github.com/abdullah107189/Employee-Management-server-side/internal/repositories"
)

// FilterAll - значение параметра отчета, означающее "без ограничения"
const FilterAll = "all"

// WorkSheetServiceInterface определяет методы для сервиса рабочих листов
type WorkSheetServiceInterface interface {
	Create(ctx context.Context, entry *models.WorkSheetEntry) (*models.WorkSheetEntry, error)
	ListByEmail(ctx context.Context, email string) ([]models.WorkSheetEntry, error)
	ListAll(ctx context.Context) ([]models.WorkSheetEntry, error)
	Update(ctx context.Context, id primitive.ObjectID, update models.WorkSheetUpdateDTO) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	// Progress возвращает отчет по рабочим листам для HR;
	// значение "all" (или пустое) снимает соответствующий фильтр
	Progress(ctx context.Context, filterName, filterMonth string) ([]models.WorkSheetEntry, error)
}

// WorkSheetService реализует WorkSheetServiceInterface
type WorkSheetService struct {
	workSheetRepo repositories.WorkSheetRepositoryInterface
}

// NewWorkSheetService создает новый экземпляр WorkSheetService
func NewWorkSheetService(workSheetRepo repositories.WorkSheetRepositoryInterface) *WorkSheetService {
	return &WorkSheetService{workSheetRepo: workSheetRepo}
}

// periodFromDate выводит период "YYYY-MM" из строковой даты записи
// Дата приходит от клиента в RFC3339 либо как "YYYY-MM-DD".
func periodFromDate(date string) string {
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return t.Format("2006-01")
	}
	if t, err := time.Parse("2006-01-02", date); err == nil {
		return t.Format("2006-01")
	}
	return ""
}

// Create сохраняет новую запись рабочего листа
// Период денормализуется из даты для фильтрации в отчете.
func (s *WorkSheetService) Create(ctx context.Context, entry *models.WorkSheetEntry) (*models.WorkSheetEntry, error) {
	entry.Month = periodFromDate(entry.Date)

	id, err := s.workSheetRepo.Insert(ctx, entry)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания записи рабочего листа: %w", err)
	}
	entry.ID = id
	return entry, nil
}

// ListByEmail возвращает записи одного сотрудника (по убыванию даты)
func (s *WorkSheetService) ListByEmail(ctx context.Context, email string) ([]models.WorkSheetEntry, error) {
	entries, err := s.workSheetRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения рабочих листов: %w", err)
	}
	return entries, nil
}

// ListAll возвращает все записи (HR-список, без сортировки)
func (s *WorkSheetService) ListAll(ctx context.Context) ([]models.WorkSheetEntry, error) {
	entries, err := s.workSheetRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения рабочих листов: %w", err)
	}
	return entries, nil
}

// Update перезаписывает work/hours/date записи (month пересчитывается)
func (s *WorkSheetService) Update(ctx context.Context, id primitive.ObjectID, update models.WorkSheetUpdateDTO) error {
	return s.workSheetRepo.Update(ctx, id, update, periodFromDate(update.Date))
}

// Delete жестко удаляет запись по идентификатору
func (s *WorkSheetService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.workSheetRepo.Delete(ctx, id)
}

// Progress возвращает отчет по рабочим листам с опциональными фильтрами
func (s *WorkSheetService) Progress(ctx context.Context, filterName, filterMonth string) ([]models.WorkSheetEntry, error) {
	// "all" приравнивается к отсутствию фильтра
	if filterName == FilterAll {
		filterName = ""
	}
	if filterMonth == FilterAll {
		filterMonth = ""
	}

	entries, err := s.workSheetRepo.FindFiltered(ctx, filterName, filterMonth)
	if err != nil {
		return nil, fmt.Errorf("ошибка построения отчета: %w", err)
	}
	return entries, nil
}
