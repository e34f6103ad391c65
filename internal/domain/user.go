package domain

import (
	"context"
	"time"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"

	UserStatusActive   = "ACTIVE"
	UserStatusInactive = "INACTIVE"
)

type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	FullName     string    `gorm:"size:100;not null" json:"fullName,omitempty"`
	Email        string    `gorm:"uniqueIndex;size:255;not null" json:"email,omitempty"`
	Phone        string    `gorm:"size:32" json:"phone,omitempty"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Role         string    `gorm:"size:16;not null;default:USER" json:"role,omitempty"`
	Status       string    `gorm:"size:16;not null;default:ACTIVE" json:"status,omitempty"`
	CreatedAt    time.Time `json:"createdAt,omitzero"`
	UpdatedAt    time.Time `json:"updatedAt,omitzero"`
}

func (User) TableName() string { return "users" }

// 找不到时返回 (nil, nil)，由上层决定是否算错误
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
}
