package domain

import (
	"context"
	"time"
)

const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
)

// ActiveBookingStatuses 占用容量的状态；CANCELLED 释放名额
var ActiveBookingStatuses = []string{BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted}

type Booking struct {
	ID          string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	EventID     string    `gorm:"type:varchar(32);index:idx_bookings_event_user;not null" json:"eventId,omitempty"`
	UserID      string    `gorm:"type:varchar(32);index:idx_bookings_event_user;not null" json:"userId,omitempty"`
	TicketType  string    `gorm:"size:50;not null" json:"ticketType,omitempty"`
	Quantity    int       `gorm:"not null" json:"quantity,omitempty"`
	TotalAmount float64   `json:"totalAmount"`
	Status      string    `gorm:"size:16;not null;default:PENDING" json:"status,omitempty"`
	BookingDate time.Time `json:"bookingDate,omitzero"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`

	Event *Event `gorm:"foreignKey:EventID" json:"event,omitempty"`
	User  *User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (Booking) TableName() string { return "bookings" }

type BookingFilter struct {
	Status   string
	DateFrom time.Time
	DateTo   time.Time
}

type BookingStats struct {
	TotalBookings     int64   `json:"totalBookings"`
	ConfirmedBookings int64   `json:"confirmedBookings"`
	CancelledBookings int64   `json:"cancelledBookings"`
	TotalRevenue      float64 `json:"totalRevenue"`
}

type BookingRepository interface {
	// Create 在单个事务里锁活动行、校验容量与重复预订后插入，
	// 失败返回 NotFound/Conflict 标签错误
	Create(ctx context.Context, b *Booking) error
	FindByID(ctx context.Context, id string) (*Booking, error)
	ListByUser(ctx context.Context, userID string) ([]Booking, error)
	List(ctx context.Context, offset, limit int, f BookingFilter) ([]Booking, int64, error)
	UpdateStatus(ctx context.Context, id, status string) error
	Stats(ctx context.Context) (*BookingStats, error)
}
