package services

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/abdullah107189/Employee-Management-server-side/internal/models"
	"github.com/abdullah107189/Employee-Management-server-side/internal/repositories"
)

// --- In-memory заглушки репозиториев для тестов сервисов ---

type fakeUserRepo struct {
	users []*models.User
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.UserInfo.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	for _, u := range f.users {
		if u.ID == id {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) Insert(_ context.Context, user *models.User) (primitive.ObjectID, error) {
	cp := *user
	cp.ID = primitive.NewObjectID()
	f.users = append(f.users, &cp)
	return cp.ID, nil
}

func (f *fakeUserRepo) FindAll(_ context.Context, onlyVerified bool) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if onlyVerified && !u.IsVerified {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) FindByRole(_ context.Context, role string) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) SetVerified(_ context.Context, id primitive.ObjectID, verified bool) error {
	for _, u := range f.users {
		if u.ID == id {
			u.IsVerified = verified
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeUserRepo) SetRole(_ context.Context, email, role string) error {
	for _, u := range f.users {
		if u.UserInfo.Email == email {
			u.Role = role
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeUserRepo) SetFired(_ context.Context, email string) error {
	for _, u := range f.users {
		if u.UserInfo.Email == email {
			u.IsFired = true
			return nil
		}
	}
	// Upsert: запись-заглушка только с email и флагом
	f.users = append(f.users, &models.User{
		ID:       primitive.NewObjectID(),
		UserInfo: models.UserInfo{Email: email},
		IsFired:  true,
	})
	return nil
}

func (f *fakeUserRepo) SetSalary(_ context.Context, id primitive.ObjectID, salary int) error {
	for _, u := range f.users {
		if u.ID == id {
			u.Salary = salary
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeUserRepo) DetailsWithPayments(_ context.Context, id primitive.ObjectID) (*models.UserDetailsDTO, error) {
	for _, u := range f.users {
		if u.ID == id {
			return &models.UserDetailsDTO{User: *u}, nil
		}
	}
	return nil, repositories.ErrNotFound
}

type fakeWorkSheetRepo struct {
	entries []models.WorkSheetEntry

	// Запомненные аргументы последнего вызова FindFiltered
	lastFilterName  string
	lastFilterMonth string
}

func (f *fakeWorkSheetRepo) Insert(_ context.Context, entry *models.WorkSheetEntry) (primitive.ObjectID, error) {
	cp := *entry
	cp.ID = primitive.NewObjectID()
	f.entries = append(f.entries, cp)
	return cp.ID, nil
}

func (f *fakeWorkSheetRepo) FindByEmail(_ context.Context, email string) ([]models.WorkSheetEntry, error) {
	var out []models.WorkSheetEntry
	for _, e := range f.entries {
		if e.Email == email {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (f *fakeWorkSheetRepo) FindAll(_ context.Context) ([]models.WorkSheetEntry, error) {
	return append([]models.WorkSheetEntry(nil), f.entries...), nil
}

func (f *fakeWorkSheetRepo) FindFiltered(_ context.Context, name, month string) ([]models.WorkSheetEntry, error) {
	f.lastFilterName = name
	f.lastFilterMonth = month

	var out []models.WorkSheetEntry
	for _, e := range f.entries {
		if name != "" && e.Name != name {
			continue
		}
		if month != "" && e.Month != month {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeWorkSheetRepo) Update(_ context.Context, id primitive.ObjectID, update models.WorkSheetUpdateDTO, month string) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries[i].Work = update.Work
			f.entries[i].Hours = update.Hours
			f.entries[i].Date = update.Date
			f.entries[i].Month = month
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (f *fakeWorkSheetRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	for i := range f.entries {
		if f.entries[i].ID == id {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

type fakePaymentRepo struct {
	requests []models.PaymentRequest
}

func (f *fakePaymentRepo) ExistsForPeriod(_ context.Context, email, monthAndYear string) (bool, error) {
	for _, r := range f.requests {
		if r.EmployeeEmail == email && r.MonthAndYear == monthAndYear {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakePaymentRepo) Insert(_ context.Context, request *models.PaymentRequest) (primitive.ObjectID, error) {
	cp := *request
	cp.ID = primitive.NewObjectID()
	f.requests = append(f.requests, cp)
	return cp.ID, nil
}

func (f *fakePaymentRepo) Settle(_ context.Context, id primitive.ObjectID, paymentDate, transactionID string) error {
	for i := range f.requests {
		if f.requests[i].ID == id {
			f.requests[i].IsPaymentSuccess = true
			f.requests[i].PaymentDate = paymentDate
			f.requests[i].TransactionID = transactionID
			return nil
		}
	}
	// Upsert: запись-заглушка только с проставленными полями
	f.requests = append(f.requests, models.PaymentRequest{
		ID:               id,
		IsPaymentSuccess: true,
		PaymentDate:      paymentDate,
		TransactionID:    transactionID,
	})
	return nil
}

func (f *fakePaymentRepo) FindForAdmin(_ context.Context) ([]models.PaymentAdminView, error) {
	return nil, nil
}

func (f *fakePaymentRepo) FindSuccessfulByEmail(_ context.Context, email string) ([]models.PaymentRequest, error) {
	var out []models.PaymentRequest
	for _, r := range f.requests {
		if r.EmployeeEmail == email && r.IsPaymentSuccess {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaymentDate > out[j].PaymentDate })
	return out, nil
}

func (f *fakePaymentRepo) CountSuccessfulByEmail(_ context.Context, email string) (int64, error) {
	var count int64
	for _, r := range f.requests {
		if r.EmployeeEmail == email && r.IsPaymentSuccess {
			count++
		}
	}
	return count, nil
}
