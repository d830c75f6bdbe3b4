package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abdullah107189/Employee-Management-server-side/internal/models"
	"github.com/abdullah107189/Employee-Management-server-side/internal/repositories"
	"github.com/abdullah107189/Employee-Management-server-side/internal/services"
)

// GetIntQueryParam читает целочисленный query-параметр; некорректное
// или отсутствующее значение дает fallback.
func GetIntQueryParam(c *gin.Context, paramName string, fallback int) int {
	valStr := c.Query(paramName)
	if valStr == "" {
		return fallback
	}
	val, err := strconv.Atoi(valStr)
	if err != nil {
		log.Printf("Некорректное значение для параметра '%s': %v", paramName, err)
		return fallback
	}
	return val
}

// objectIDParam разбирает hex-идентификатор из параметра пути
func objectIDParam(c *gin.Context, paramName string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param(paramName))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректный формат идентификатора"})
		return primitive.NilObjectID, false
	}
	return id, true
}

// AppHandler объединяет обработчики для разных частей приложения
type AppHandler struct {
	userService      services.UserServiceInterface
	workSheetService services.WorkSheetServiceInterface
	paymentService   services.PaymentServiceInterface
}

// NewAppHandler создает новый экземпляр AppHandler
func NewAppHandler(us services.UserServiceInterface, ws services.WorkSheetServiceInterface, ps services.PaymentServiceInterface) *AppHandler {
	return &AppHandler{
		userService:      us,
		workSheetService: ws,
		paymentService:   ps,
	}
}

// --- Пользователи ---

// SetUser обработчик регистрации пользователя
// Повторная регистрация занятого email дает 409.
func (h *AppHandler) SetUser(c *gin.Context) {
	var user models.User
	if err := c.ShouldBindJSON(&user); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}
	if user.UserInfo.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email обязателен"})
		return
	}

	created, err := h.userService.Register(c.Request.Context(), &user)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "Пользователь с таким email уже существует"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка регистрации: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetAllUsers обработчик списка пользователей
// isVerify=true ограничивает выборку верифицированными;
// isFiredEmail проверяет, не уволена ли указанная учетная запись (409).
func (h *AppHandler) GetAllUsers(c *gin.Context) {
	onlyVerified := c.Query("isVerify") == "true"
	firedEmail := c.Query("isFiredEmail")

	users, err := h.userService.ListUsers(c.Request.Context(), onlyVerified, firedEmail)
	if err != nil {
		if errors.Is(err, services.ErrAccountFired) {
			c.JSON(http.StatusConflict, gin.H{"error": "Учетная запись уволена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения пользователей: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// CheckRole обработчик проверки роли пользователя
func (h *AppHandler) CheckRole(c *gin.Context) {
	role, err := h.userService.RoleByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка проверки роли: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"role": role})
}

// GetDetails обработчик деталей пользователя с историей выплат
func (h *AppHandler) GetDetails(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	details, err := h.userService.GetDetails(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения деталей: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, details)
}

// GetOnlyEmployees обработчик списка сотрудников (HR)
func (h *AppHandler) GetOnlyEmployees(c *gin.Context) {
	users, err := h.userService.OnlyEmployees(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения сотрудников: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, users)
}

// ToggleVerification обработчик переключения верификации (HR)
func (h *AppHandler) ToggleVerification(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	user, err := h.userService.ToggleVerification(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка переключения верификации: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// ChangeRole обработчик смены роли employee<->hr (admin)
func (h *AppHandler) ChangeRole(c *gin.Context) {
	user, err := h.userService.ChangeRole(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка смены роли: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, user)
}

// FireUser обработчик увольнения пользователя (admin)
func (h *AppHandler) FireUser(c *gin.Context) {
	if err := h.userService.Fire(c.Request.Context(), c.Param("email")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка увольнения: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateSalary обработчик изменения зарплаты (admin)
func (h *AppHandler) UpdateSalary(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		Salary int `json:"salary" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	if err := h.userService.UpdateSalary(c.Request.Context(), id, input.Salary); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Пользователь не найден"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка обновления зарплаты: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// --- Рабочие листы ---

// CreateWorkSheet обработчик создания записи рабочего листа (employee)
func (h *AppHandler) CreateWorkSheet(c *gin.Context) {
	var entry models.WorkSheetEntry
	if err := c.ShouldBindJSON(&entry); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	created, err := h.workSheetService.Create(c.Request.Context(), &entry)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка создания записи: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetWorkSheetsByEmail обработчик записей одного сотрудника (employee)
func (h *AppHandler) GetWorkSheetsByEmail(c *gin.Context) {
	entries, err := h.workSheetService.ListByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения записей: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// GetAllWorkSheets обработчик полного списка записей (HR)
func (h *AppHandler) GetAllWorkSheets(c *gin.Context) {
	entries, err := h.workSheetService.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения записей: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// UpdateWorkSheet обработчик обновления записи (employee)
func (h *AppHandler) UpdateWorkSheet(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var update models.WorkSheetUpdateDTO
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	if err := h.workSheetService.Update(c.Request.Context(), id, update); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Запись не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка обновления записи: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// DeleteWorkSheet обработчик удаления записи (employee)
func (h *AppHandler) DeleteWorkSheet(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.workSheetService.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Запись не найдена"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка удаления записи: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// GetProgress обработчик отчета по рабочим листам (HR)
// Параметры name и month со значением "all" (или пустые) снимают фильтр.
func (h *AppHandler) GetProgress(c *gin.Context) {
	entries, err := h.workSheetService.Progress(c.Request.Context(), c.Query("name"), c.Query("month"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка построения отчета: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, entries)
}

// --- Выплаты ---

// CreatePayRequest обработчик подачи заявки на выплату (HR)
// Повторная заявка за тот же период дает 409.
func (h *AppHandler) CreatePayRequest(c *gin.Context) {
	var request models.PaymentRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	created, err := h.paymentService.SubmitRequest(c.Request.Context(), &request)
	if err != nil {
		if errors.Is(err, services.ErrDuplicatePayment) {
			c.JSON(http.StatusConflict, gin.H{"error": "Заявка на выплату за этот период уже существует"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка подачи заявки: " + err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// GetPayRequests обработчик списка заявок для администратора
func (h *AppHandler) GetPayRequests(c *gin.Context) {
	views, err := h.paymentService.ListForAdmin(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения заявок: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, views)
}

// SettlePayment обработчик проведения выплаты (admin)
func (h *AppHandler) SettlePayment(c *gin.Context) {
	id, ok := objectIDParam(c, "id")
	if !ok {
		return
	}

	var input struct {
		PaymentDate string `json:"paymentDate"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Некорректные данные: " + err.Error()})
		return
	}

	transactionID, err := h.paymentService.Settle(c.Request.Context(), id, input.PaymentDate)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка проведения выплаты: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "transactionId": transactionID})
}

// GetPaymentHistory обработчик постраничной истории выплат
func (h *AppHandler) GetPaymentHistory(c *gin.Context) {
	page := GetIntQueryParam(c, "page", 1)
	limit := GetIntQueryParam(c, "limit", services.DefaultHistoryLimit)

	history, err := h.paymentService.History(c.Request.Context(), c.Param("email"), page, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Ошибка получения истории выплат: " + err.Error()})
		return
	}
	c.JSON(http.StatusOK, history)
}
