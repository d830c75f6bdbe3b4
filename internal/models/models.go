package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Роли пользователей ---
const (
	RoleEmployee = "employee" // Сотрудник
	RoleHR       = "hr"       // HR-менеджер
	RoleAdmin    = "admin"    // Администратор
)

// UserInfo - вложенный профиль пользователя (приходит от провайдера аутентификации)
type UserInfo struct {
	Name     string `bson:"name" json:"name"`
	Email    string `bson:"email" json:"email"` // Уникальный ключ пользователя
	PhotoURL string `bson:"photoUrl" json:"photoUrl"`
}

// User - модель пользователя в коллекции user
type User struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserInfo      UserInfo           `bson:"userInfo" json:"userInfo"`
	Role          string             `bson:"role" json:"role"` // employee | hr | admin
	IsVerified    bool               `bson:"isVerified" json:"isVerified"`
	IsFired       bool               `bson:"isFired" json:"isFired"`
	BankAccountNo string             `bson:"bank_account_no" json:"bank_account_no"`
	Designation   string             `bson:"designation" json:"designation"`
	Salary        int                `bson:"salary" json:"salary"`
}

// WorkSheetEntry - запись рабочего листа сотрудника
// Поля name и month денормализованы при создании, чтобы HR-отчет
// фильтровал без join-а по коллекции пользователей.
type WorkSheetEntry struct {
	ID    primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Email string             `bson:"email" json:"email"` // Владелец записи (User.userInfo.email)
	Name  string             `bson:"name" json:"name"`
	Work  string             `bson:"work" json:"work"`
	Hours int                `bson:"hours" json:"hours"`
	Date  string             `bson:"date" json:"date"`   // RFC3339
	Month string             `bson:"month" json:"month"` // Период "YYYY-MM"
}

// WorkSheetUpdateDTO - структура для частичного обновления записи рабочего листа
// Обновляются только work/hours/date (month пересчитывается из date).
type WorkSheetUpdateDTO struct {
	Work  string `json:"work"`
	Hours int    `json:"hours"`
	Date  string `json:"date"`
}

// PaymentRequest - заявка на выплату зарплаты за период
type PaymentRequest struct {
	ID               primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	EmployeeEmail    string             `bson:"employeeEmail" json:"employeeEmail"`
	EmployeeName     string             `bson:"employeeName" json:"employeeName"`
	Salary           int                `bson:"salary" json:"salary"`
	MonthAndYear     string             `bson:"monthAndYear" json:"monthAndYear"` // Период "YYYY-MM", уникален на сотрудника
	Designation      string             `bson:"designation" json:"designation"`
	IsPaymentSuccess bool               `bson:"isPaymentSuccess" json:"isPaymentSuccess"`
	PaymentDate      string             `bson:"paymentDate,omitempty" json:"paymentDate,omitempty"` // RFC3339, заполняется при проведении
	TransactionID    string             `bson:"transactionId,omitempty" json:"transactionId,omitempty"`
}

// PaymentSlice - проекция успешной выплаты для деталей пользователя
type PaymentSlice struct {
	MonthAndYear string `bson:"monthAndYear" json:"monthAndYear"`
	Salary       int    `bson:"salary" json:"salary"`
}

// UserDetailsDTO - пользователь вместе с историей успешных выплат
type UserDetailsDTO struct {
	User     User           `json:"user"`
	Payments []PaymentSlice `json:"payments"`
}

// PaymentAdminView - проекция заявки для списка администратора
// (после join-а с коллекцией пользователей остаются только верифицированные)
type PaymentAdminView struct {
	ID               primitive.ObjectID `bson:"_id" json:"_id"`
	EmployeeEmail    string             `bson:"employeeEmail" json:"employeeEmail"`
	EmployeeName     string             `bson:"employeeName" json:"employeeName"`
	Salary           int                `bson:"salary" json:"salary"`
	MonthAndYear     string             `bson:"monthAndYear" json:"monthAndYear"`
	Designation      string             `bson:"designation" json:"designation"`
	IsPaymentSuccess bool               `bson:"isPaymentSuccess" json:"isPaymentSuccess"`
}

// PaymentHistoryDTO - страница истории выплат сотрудника
type PaymentHistoryDTO struct {
	Payments     []PaymentRequest `json:"payments"`               // Страница в хронологическом порядке
	FirstPayment *PaymentRequest  `json:"firstPayment,omitempty"` // Самая свежая выплата (отдельно от страницы)
	TotalPayment int64            `json:"totalPayment"`           // Общее число успешных выплат
}

// Session - типизированные данные аутентифицированного запроса
// Устанавливается middleware JWTAuth и передается в обработчики
// вместо неявных значений в контексте.
type Session struct {
	Email string
}
