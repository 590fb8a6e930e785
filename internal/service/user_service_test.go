package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/mocks"
)

func TestUserService_Create_Success(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo, zap.NewNop())

	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	user, err := svc.Create(context.Background(), service.CreateUserInput{
		Email:    " New@Warehouse.test",
		Password: "securepassword123",
		FullName: "New User ",
		Role:     domain.RoleOperator,
	})

	require.NoError(t, err)
	assert.Equal(t, "new@warehouse.test", user.Email)
	assert.Equal(t, "New User", user.FullName)
	assert.True(t, user.IsActive)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("securepassword123")))
	repo.AssertExpectations(t)
}

func TestUserService_Create_Rejects(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo, zap.NewNop())

	_, err := svc.Create(context.Background(), service.CreateUserInput{Email: "a@b.c", Password: "password123", Role: "member"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateEmail)
	_, err = svc.Create(context.Background(), service.CreateUserInput{Email: "a@b.c", Password: "password123", Role: domain.RoleOperator})
	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserService_Update(t *testing.T) {
	repo := new(mocks.MockUserRepo)
	svc := service.NewUserService(repo, zap.NewNop())
	existing := &domain.User{ID: uuid.New(), Email: "op@warehouse.test", FullName: "Op", Role: domain.RoleOperator, IsActive: true}

	repo.On("GetByID", mock.Anything, existing.ID).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	role := domain.RoleSupervisor
	inactive := false
	name := "Senior Op"
	user, err := svc.Update(context.Background(), existing.ID, service.UpdateUserInput{Role: &role, IsActive: &inactive, FullName: &name})

	require.NoError(t, err)
	assert.Equal(t, domain.RoleSupervisor, user.Role)
	assert.False(t, user.IsActive)
	assert.Equal(t, "Senior Op", user.FullName)

	bad := domain.UserRole("owner")
	_, err = svc.Update(context.Background(), existing.ID, service.UpdateUserInput{Role: &bad})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserService_EnsureAdmin(t *testing.T) {
	t.Run("seeds when empty", func(t *testing.T) {
		repo := new(mocks.MockUserRepo)
		svc := service.NewUserService(repo, zap.NewNop())
		repo.On("List", mock.Anything, 0, 1).Return([]domain.User{}, 0, nil)
		repo.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
			return u.Role == domain.RoleAdmin && u.Email == "admin@warehouse.test" && u.FullName == "Administrator"
		})).Return(nil)

		require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@warehouse.test", "bootstrap-pass", ""))
		repo.AssertExpectations(t)
	})

	t.Run("skips when users exist", func(t *testing.T) {
		repo := new(mocks.MockUserRepo)
		svc := service.NewUserService(repo, zap.NewNop())
		repo.On("List", mock.Anything, 0, 1).Return([]domain.User{{}}, 3, nil)

		require.NoError(t, svc.EnsureAdmin(context.Background(), "admin@warehouse.test", "bootstrap-pass", "Root"))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("skips without credentials", func(t *testing.T) {
		repo := new(mocks.MockUserRepo)
		svc := service.NewUserService(repo, zap.NewNop())

		require.NoError(t, svc.EnsureAdmin(context.Background(), "", "", ""))
		repo.AssertNotCalled(t, "List", mock.Anything, mock.Anything, mock.Anything)
	})
}
