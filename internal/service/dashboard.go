package service

import (
	"context"
	"time"

	"event-booking-api/internal/domain"
)

// DashboardService 只读聚合视图；可见范围由 domain.Scope 统一决定
type DashboardService struct {
	dash domain.DashboardRepository
}

func NewDashboardService(dash domain.DashboardRepository) *DashboardService {
	return &DashboardService{dash: dash}
}

func (s *DashboardService) Stats(ctx context.Context, scope domain.Scope) (*domain.DashboardStats, error) {
	return s.dash.Stats(ctx, scope)
}

func (s *DashboardService) RecentActivities(ctx context.Context, scope domain.Scope, limit int) ([]domain.Activity, error) {
	if limit < 1 || limit > 50 {
		limit = 10
	}
	return s.dash.RecentActivities(ctx, scope, limit)
}

func (s *DashboardService) UpcomingEvents(ctx context.Context, scope domain.Scope, limit int) ([]domain.UpcomingEvent, error) {
	if limit < 1 || limit > 50 {
		limit = 5
	}
	return s.dash.UpcomingEvents(ctx, scope, limit)
}

func (s *DashboardService) MonthlyAnalytics(ctx context.Context, year int) ([]domain.MonthlyPoint, error) {
	if year <= 0 {
		year = time.Now().Year()
	}
	return s.dash.MonthlyAnalytics(ctx, year)
}

func (s *DashboardService) CategoryAnalytics(ctx context.Context) ([]domain.CategoryPoint, error) {
	return s.dash.CategoryAnalytics(ctx)
}

func (s *DashboardService) TopEvents(ctx context.Context, scope domain.Scope, limit int) ([]domain.TopEvent, error) {
	if limit < 1 || limit > 50 {
		limit = 5
	}
	return s.dash.TopEvents(ctx, scope, limit)
}
