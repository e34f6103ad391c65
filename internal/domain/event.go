package domain

import (
	"context"
	"time"
)

const (
	EventStatusUpcoming  = "UPCOMING"
	EventStatusOngoing   = "ONGOING"
	EventStatusCompleted = "COMPLETED"
	EventStatusCancelled = "CANCELLED"
)

type Event struct {
	ID          string    `gorm:"primaryKey;type:varchar(32)" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title,omitempty"`
	Description string    `gorm:"size:1000" json:"description,omitempty"`
	Date        time.Time `gorm:"index;not null" json:"date,omitzero"`
	Time        string    `gorm:"size:16" json:"time,omitempty"`
	Location    string    `gorm:"size:200" json:"location,omitempty"`
	Capacity    int       `gorm:"not null" json:"capacity,omitempty"`
	Price       float64   `json:"price,omitempty"`
	Status      string    `gorm:"size:16;not null;default:UPCOMING" json:"status,omitempty"`
	Category    string    `gorm:"size:50;index" json:"category,omitempty"`
	ImageURL    string    `gorm:"size:512" json:"imageUrl,omitempty"`
	OrganizerID string    `gorm:"type:varchar(32);index;not null" json:"organizerId,omitempty"`
	CreatedAt   time.Time `json:"createdAt,omitzero"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`

	Organizer *User `gorm:"foreignKey:OrganizerID" json:"organizer,omitempty"`

	// 活跃预订行数，查询时另算，不落库
	Attendees int64 `gorm:"-" json:"attendees"`
}

func (Event) TableName() string { return "events" }

type EventFilter struct {
	Search   string
	Status   string
	Category string
	DateFrom time.Time
	DateTo   time.Time
	MinPrice float64
	MaxPrice float64
	HasPrice bool // MinPrice/MaxPrice 是否生效
	Limit    int
}

type EventRepository interface {
	Create(ctx context.Context, e *Event) error
	FindByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, f EventFilter) ([]Event, error)
	ListUpcoming(ctx context.Context, from time.Time, limit int) ([]Event, error)
	Update(ctx context.Context, e *Event) error
	// 硬删除，同事务内一并清掉该活动的预订
	Delete(ctx context.Context, id string) error
}
