package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/config"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/domain"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/internal/service"
	"github.com/SistemasXL/auditoria-recepcion-sistema-sub000/mocks"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:             "test-secret-key-for-unit-tests",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 168 * time.Hour,
		Issuer:             "recepcion-test",
	}
}

func hashPassword(password string) string {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return string(hash)
}

func activeUser(role domain.UserRole) *domain.User {
	return &domain.User{
		ID:           uuid.New(),
		Email:        "user@warehouse.test",
		PasswordHash: hashPassword("password123"),
		FullName:     "Test User",
		Role:         role,
		IsActive:     true,
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())
	user := activeUser(domain.RoleSupervisor)

	userRepo.On("GetByEmail", mock.Anything, "user@warehouse.test").Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{
		Email:    "  User@Warehouse.TEST ",
		Password: "password123",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.True(t, pair.ExpiresAt.After(time.Now()))

	claims, err := svc.ValidateToken(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, domain.RoleSupervisor, claims.Role)
	userRepo.AssertExpectations(t)
}

func TestAuthService_Login_Failures(t *testing.T) {
	tests := []struct {
		name     string
		user     *domain.User
		repoErr  error
		password string
		want     error
	}{
		{"unknown email", nil, domain.ErrUserNotFound, "password123", domain.ErrInvalidCredentials},
		{"wrong password", activeUser(domain.RoleOperator), nil, "nope-nope", domain.ErrInvalidCredentials},
		{"inactive", &domain.User{ID: uuid.New(), PasswordHash: hashPassword("password123")}, nil, "password123", domain.ErrUserInactive},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			userRepo := new(mocks.MockUserRepo)
			svc := service.NewAuthService(userRepo, testJWTConfig())
			userRepo.On("GetByEmail", mock.Anything, "user@warehouse.test").Return(tt.user, tt.repoErr)

			pair, err := svc.Login(context.Background(), service.LoginInput{Email: "user@warehouse.test", Password: tt.password})

			assert.Nil(t, pair)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAuthService_RefreshToken(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())
	user := activeUser(domain.RoleOperator)

	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	pair, err := svc.Login(context.Background(), service.LoginInput{Email: user.Email, Password: "password123"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(context.Background(), pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)

	// Tokens are not interchangeable.
	_, err = svc.RefreshToken(context.Background(), pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = svc.ValidateToken(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAuthService_ValidateToken_Rejects(t *testing.T) {
	userRepo := new(mocks.MockUserRepo)
	svc := service.NewAuthService(userRepo, testJWTConfig())
	other := service.NewAuthService(userRepo, config.JWTConfig{Secret: "another-secret", AccessTokenExpiry: time.Minute, RefreshTokenExpiry: time.Hour})

	user := activeUser(domain.RoleAdmin)
	userRepo.On("GetByEmail", mock.Anything, user.Email).Return(user, nil)
	pair, err := other.Login(context.Background(), service.LoginInput{Email: user.Email, Password: "password123"})
	require.NoError(t, err)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
	_, err = svc.ValidateToken("not-a-token")
	assert.Error(t, err)

	expired := service.NewAuthService(userRepo, config.JWTConfig{Secret: "test-secret-key-for-unit-tests", AccessTokenExpiry: -time.Minute, RefreshTokenExpiry: time.Hour})
	pair, err = expired.Login(context.Background(), service.LoginInput{Email: user.Email, Password: "password123"})
	require.NoError(t, err)
	_, err = svc.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
}
