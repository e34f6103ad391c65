package service

import (
	"context"

	"go.uber.org/zap"

	"event-booking-api/internal/core/auth"
	"event-booking-api/internal/domain"
	"event-booking-api/pkg/utils"
)

type UserService struct {
	users domain.UserRepository
	jwter *auth.JWTer
	log   *zap.Logger
}

func NewUserService(users domain.UserRepository, jwter *auth.JWTer, log *zap.Logger) *UserService {
	return &UserService{users: users, jwter: jwter, log: log}
}

type RegisterInput struct {
	FullName string `json:"fullName" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"omitempty,max=32"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileInput struct {
	FullName *string `json:"fullName" binding:"omitempty,min=2,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone" binding:"omitempty,max=32"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

type AuthResult struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	existing, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, domain.Internal("find user", err)
	}
	if existing != nil {
		return nil, domain.Conflict("email already registered")
	}

	u := &domain.User{
		ID:           utils.NewID(),
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: utils.HashPassword(in.Password),
		Role:         domain.RoleUser,
		Status:       domain.UserStatusActive,
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, domain.Internal("create user", err)
	}

	token, err := s.jwter.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, domain.Internal("issue token", err)
	}
	s.log.Info("user registered", zap.String("user_id", u.ID), zap.String("email", u.Email))
	return &AuthResult{Token: token, User: u}, nil
}

func (s *UserService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, domain.Internal("find user", err)
	}
	if u == nil || !utils.CheckPassword(in.Password, u.PasswordHash) {
		return nil, domain.Unauthorized("invalid credentials")
	}
	if u.Status == domain.UserStatusInactive {
		return nil, domain.Forbidden("account is deactivated")
	}

	token, err := s.jwter.Issue(u.ID, u.Email, u.Role)
	if err != nil {
		return nil, domain.Internal("issue token", err)
	}
	return &AuthResult{Token: token, User: u}, nil
}

func (s *UserService) Profile(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("find user", err)
	}
	if u == nil {
		return nil, domain.NotFound("user not found")
	}
	return u, nil
}

// UpdateProfile 只能改自己：id 来自 token，不来自请求体
func (s *UserService) UpdateProfile(ctx context.Context, id string, in UpdateProfileInput) (*domain.User, error) {
	u, err := s.Profile(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Email != nil && *in.Email != u.Email {
		other, err := s.users.FindByEmail(ctx, *in.Email)
		if err != nil {
			return nil, domain.Internal("find user", err)
		}
		if other != nil {
			return nil, domain.Conflict("email already registered")
		}
		u.Email = *in.Email
	}
	if in.FullName != nil {
		u.FullName = *in.FullName
	}
	if in.Phone != nil {
		u.Phone = *in.Phone
	}
	if in.Password != nil {
		u.PasswordHash = utils.HashPassword(*in.Password)
	}
	if err := s.users.Update(ctx, u); err != nil {
		return nil, domain.Internal("update user", err)
	}
	return u, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return s.Profile(ctx, id)
}

// Activate/Deactivate：按产品约定用状态切换替代硬删除
func (s *UserService) Activate(ctx context.Context, id string) (*domain.User, error) {
	return s.setStatus(ctx, id, domain.UserStatusActive)
}

func (s *UserService) Deactivate(ctx context.Context, id string) (*domain.User, error) {
	return s.setStatus(ctx, id, domain.UserStatusInactive)
}

func (s *UserService) setStatus(ctx context.Context, id, status string) (*domain.User, error) {
	u, err := s.Profile(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Status = status
	if err := s.users.Update(ctx, u); err != nil {
		return nil, domain.Internal("update user", err)
	}
	s.log.Info("user status changed", zap.String("user_id", id), zap.String("status", status))
	return u, nil
}
