package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdullah107189/Employee-Management-server-side/internal/models"
)

func newTestUser(email, role string) *models.User {
	return &models.User{
		UserInfo: models.UserInfo{
			Name:  "Test User",
			Email: email,
		},
		Role:        role,
		Designation: "Developer",
		Salary:      1000,
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, newTestUser("a@b.c", models.RoleEmployee))
	require.NoError(t, err)
	require.False(t, created.ID.IsZero())

	// Повторная регистрация того же email отклоняется,
	// в хранилище остается ровно одна запись
	_, err = svc.Register(ctx, newTestUser("a@b.c", models.RoleEmployee))
	require.ErrorIs(t, err, ErrEmailTaken)
	assert.Len(t, repo.users, 1)
}

func TestRegisterDefaultRole(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)

	created, err := svc.Register(context.Background(), newTestUser("a@b.c", ""))
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, created.Role)
}

func TestListUsersFiredEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, newTestUser("fired@b.c", models.RoleEmployee))
	require.NoError(t, err)
	require.NoError(t, svc.Fire(ctx, "fired@b.c"))

	_, err = svc.ListUsers(ctx, false, "fired@b.c")
	assert.ErrorIs(t, err, ErrAccountFired)

	// Неуволенный email проходит проверку
	_, err = svc.Register(ctx, newTestUser("ok@b.c", models.RoleEmployee))
	require.NoError(t, err)
	users, err := svc.ListUsers(ctx, false, "ok@b.c")
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestListUsersOnlyVerified(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)
	ctx := context.Background()

	verified, err := svc.Register(ctx, newTestUser("v@b.c", models.RoleEmployee))
	require.NoError(t, err)
	_, err = svc.Register(ctx, newTestUser("nv@b.c", models.RoleEmployee))
	require.NoError(t, err)

	_, err = svc.ToggleVerification(ctx, verified.ID)
	require.NoError(t, err)

	users, err := svc.ListUsers(ctx, true, "")
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "v@b.c", users[0].UserInfo.Email)
}

func TestToggleVerificationTwice(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, newTestUser("a@b.c", models.RoleEmployee))
	require.NoError(t, err)
	require.False(t, created.IsVerified)

	after, err := svc.ToggleVerification(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, after.IsVerified)

	// Повторное переключение возвращает исходное состояние
	after, err = svc.ToggleVerification(ctx, created.ID)
	require.NoError(t, err)
	assert.False(t, after.IsVerified)
}

func TestChangeRoleSwap(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, newTestUser("e@b.c", models.RoleEmployee))
	require.NoError(t, err)

	user, err := svc.ChangeRole(ctx, "e@b.c")
	require.NoError(t, err)
	assert.Equal(t, models.RoleHR, user.Role)

	user, err = svc.ChangeRole(ctx, "e@b.c")
	require.NoError(t, err)
	assert.Equal(t, models.RoleEmployee, user.Role)
}

func TestChangeRoleAdminNoOp(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, newTestUser("admin@b.c", models.RoleAdmin))
	require.NoError(t, err)

	// Администратор не участвует в ротации ролей
	user, err := svc.ChangeRole(ctx, "admin@b.c")
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
}

func TestChangeRoleUnknownEmail(t *testing.T) {
	svc := NewUserService(&fakeUserRepo{})

	_, err := svc.ChangeRole(context.Background(), "nobody@b.c")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestFireUpsertCreatesShellRecord(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)
	ctx := context.Background()

	// Увольнение несуществующего email создает запись-заглушку без ошибки
	require.NoError(t, svc.Fire(ctx, "ghost@b.c"))

	require.Len(t, repo.users, 1)
	assert.Equal(t, "ghost@b.c", repo.users[0].UserInfo.Email)
	assert.True(t, repo.users[0].IsFired)
	assert.Empty(t, repo.users[0].Role)
}

func TestRoleByEmail(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)
	ctx := context.Background()

	_, err := svc.Register(ctx, newTestUser("hr@b.c", models.RoleHR))
	require.NoError(t, err)

	role, err := svc.RoleByEmail(ctx, "hr@b.c")
	require.NoError(t, err)
	assert.Equal(t, models.RoleHR, role)

	_, err = svc.RoleByEmail(ctx, "nobody@b.c")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateSalary(t *testing.T) {
	repo := &fakeUserRepo{}
	svc := NewUserService(repo)
	ctx := context.Background()

	created, err := svc.Register(ctx, newTestUser("a@b.c", models.RoleEmployee))
	require.NoError(t, err)

	require.NoError(t, svc.UpdateSalary(ctx, created.ID, 2500))
	assert.Equal(t, 2500, repo.users[0].Salary)
}
