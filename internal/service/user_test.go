package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"event-booking-api/internal/core/auth"
	"event-booking-api/internal/domain"
	"event-booking-api/pkg/utils"
)

func testJWTer() *auth.JWTer {
	return &auth.JWTer{Secret: []byte("test-secret"), Issuer: "test", TTL: time.Hour}
}

func TestUserService_Register(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewUserService(users, testJWTer(), zap.NewNop())

	users.On("FindByEmail", mock.Anything, "alice@example.com").Return(nil, nil)

	var created *domain.User
	users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.User) }).
		Return(nil)

	out, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Alice Smith",
		Email:    "alice@example.com",
		Password: "secret-password",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, domain.RoleUser, created.Role)
	assert.Equal(t, domain.UserStatusActive, created.Status)
	assert.NotEqual(t, "secret-password", created.PasswordHash)
	assert.True(t, utils.CheckPassword("secret-password", created.PasswordHash))
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewUserService(users, testJWTer(), zap.NewNop())

	users.On("FindByEmail", mock.Anything, "alice@example.com").
		Return(&domain.User{ID: "u1", Email: "alice@example.com"}, nil)

	_, err := svc.Register(context.Background(), RegisterInput{
		FullName: "Alice Smith",
		Email:    "alice@example.com",
		Password: "secret-password",
	})

	assert.True(t, domain.IsKind(err, domain.KindConflict))
	assert.Equal(t, "email already registered", err.Error())
	users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Login(t *testing.T) {
	stored := &domain.User{
		ID:           "u1",
		Email:        "alice@example.com",
		PasswordHash: utils.HashPassword("secret-password"),
		Role:         domain.RoleUser,
		Status:       domain.UserStatusActive,
	}

	t.Run("ok", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewUserService(users, testJWTer(), zap.NewNop())
		users.On("FindByEmail", mock.Anything, "alice@example.com").Return(stored, nil)

		out, err := svc.Login(context.Background(), LoginInput{
			Email: "alice@example.com", Password: "secret-password",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, out.Token)

		claims, err := testJWTer().Parse(out.Token)
		require.NoError(t, err)
		assert.Equal(t, "u1", claims.UID)
		assert.Equal(t, domain.RoleUser, claims.Role)
	})

	t.Run("wrong password", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewUserService(users, testJWTer(), zap.NewNop())
		users.On("FindByEmail", mock.Anything, "alice@example.com").Return(stored, nil)

		_, err := svc.Login(context.Background(), LoginInput{
			Email: "alice@example.com", Password: "nope",
		})
		assert.True(t, domain.IsKind(err, domain.KindUnauthorized))
	})

	t.Run("unknown email gets same error", func(t *testing.T) {
		users := new(mockUserRepo)
		svc := NewUserService(users, testJWTer(), zap.NewNop())
		users.On("FindByEmail", mock.Anything, "nobody@example.com").Return(nil, nil)

		_, err := svc.Login(context.Background(), LoginInput{
			Email: "nobody@example.com", Password: "whatever",
		})
		assert.True(t, domain.IsKind(err, domain.KindUnauthorized))
		assert.Equal(t, "invalid credentials", err.Error())
	})

	t.Run("deactivated account", func(t *testing.T) {
		inactive := *stored
		inactive.Status = domain.UserStatusInactive

		users := new(mockUserRepo)
		svc := NewUserService(users, testJWTer(), zap.NewNop())
		users.On("FindByEmail", mock.Anything, "alice@example.com").Return(&inactive, nil)

		_, err := svc.Login(context.Background(), LoginInput{
			Email: "alice@example.com", Password: "secret-password",
		})
		assert.True(t, domain.IsKind(err, domain.KindForbidden))
		assert.Equal(t, "account is deactivated", err.Error())
	})
}

func TestUserService_UpdateProfile_EmailTaken(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewUserService(users, testJWTer(), zap.NewNop())

	users.On("FindByID", mock.Anything, "u1").
		Return(&domain.User{ID: "u1", Email: "old@example.com"}, nil)
	users.On("FindByEmail", mock.Anything, "taken@example.com").
		Return(&domain.User{ID: "u2", Email: "taken@example.com"}, nil)

	email := "taken@example.com"
	_, err := svc.UpdateProfile(context.Background(), "u1", UpdateProfileInput{Email: &email})
	assert.True(t, domain.IsKind(err, domain.KindConflict))
}

func TestUserService_Deactivate(t *testing.T) {
	users := new(mockUserRepo)
	svc := NewUserService(users, testJWTer(), zap.NewNop())

	users.On("FindByID", mock.Anything, "u1").
		Return(&domain.User{ID: "u1", Status: domain.UserStatusActive}, nil)
	users.On("Update", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	u, err := svc.Deactivate(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, domain.UserStatusInactive, u.Status)
}
