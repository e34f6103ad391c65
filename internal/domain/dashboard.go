package domain

import (
	"context"
	"time"
)

// Scope 聚合查询的可见范围：admin 看全站，普通用户只看自己；策略只在这里定一次，不按端点分支
type Scope struct {
	UserID string
	Admin  bool
}

func ScopeFor(userID, role string) Scope {
	return Scope{UserID: userID, Admin: role == RoleAdmin}
}

type DashboardStats struct {
	TotalEvents    int64   `json:"totalEvents"`
	ActiveBookings int64   `json:"activeBookings"`
	TotalRevenue   float64 `json:"totalRevenue"`
	NewUsers       int64   `json:"newUsers"`
}

type Activity struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"` // event_created | booking_made | user_registered
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
	UserName    string    `json:"userName"`
}

type UpcomingEvent struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Date      time.Time `json:"date"`
	Time      string    `json:"time"`
	Location  string    `json:"location"`
	Attendees int64     `json:"attendees"`
	Capacity  int       `json:"capacity"`
	IsBooked  bool      `json:"isBooked,omitempty"`
}

type MonthlyPoint struct {
	Month    string  `json:"month"`
	Events   int64   `json:"events"`
	Bookings int64   `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

type CategoryPoint struct {
	Category string  `json:"category"`
	Events   int64   `json:"events"`
	Bookings int64   `json:"bookings"`
	Revenue  float64 `json:"revenue"`
}

type TopEvent struct {
	Title      string  `json:"title"`
	Bookings   int64   `json:"bookings"`
	Revenue    float64 `json:"revenue"`
	Attendance int     `json:"attendance"` // 已订/容量，百分比
}

type DashboardRepository interface {
	Stats(ctx context.Context, s Scope) (*DashboardStats, error)
	RecentActivities(ctx context.Context, s Scope, limit int) ([]Activity, error)
	UpcomingEvents(ctx context.Context, s Scope, limit int) ([]UpcomingEvent, error)
	MonthlyAnalytics(ctx context.Context, year int) ([]MonthlyPoint, error)
	CategoryAnalytics(ctx context.Context) ([]CategoryPoint, error)
	TopEvents(ctx context.Context, s Scope, limit int) ([]TopEvent, error)
}
