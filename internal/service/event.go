package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"event-booking-api/internal/core/cache"
	"event-booking-api/internal/domain"
	"event-booking-api/pkg/utils"
)

const eventCachePrefix = "events:"

type EventService struct {
	events domain.EventRepository
	cache  *cache.Cache // 可为 nil（测试/禁用缓存）
	ttl    time.Duration
	log    *zap.Logger
}

func NewEventService(events domain.EventRepository, c *cache.Cache, ttl time.Duration, log *zap.Logger) *EventService {
	return &EventService{events: events, cache: c, ttl: ttl, log: log}
}

type CreateEventInput struct {
	Title       string  `json:"title" binding:"required,min=3,max=200"`
	Description string  `json:"description" binding:"required,min=10,max=1000"`
	Date        string  `json:"date" binding:"required,datetime=2006-01-02"`
	Time        string  `json:"time" binding:"required"`
	Location    string  `json:"location" binding:"required,min=5,max=200"`
	Capacity    int     `json:"capacity" binding:"required,min=1"`
	Price       float64 `json:"price" binding:"gte=0"`
	Category    string  `json:"category" binding:"required,min=2,max=50"`
	ImageURL    string  `json:"imageUrl" binding:"omitempty,url"`
}

type UpdateEventInput struct {
	Title       *string  `json:"title" binding:"omitempty,min=3,max=200"`
	Description *string  `json:"description" binding:"omitempty,min=10,max=1000"`
	Date        *string  `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Time        *string  `json:"time" binding:"omitempty"`
	Location    *string  `json:"location" binding:"omitempty,min=5,max=200"`
	Capacity    *int     `json:"capacity" binding:"omitempty,min=1"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Status      *string  `json:"status" binding:"omitempty,oneof=UPCOMING ONGOING COMPLETED CANCELLED"`
	Category    *string  `json:"category" binding:"omitempty,min=2,max=50"`
	ImageURL    *string  `json:"imageUrl" binding:"omitempty,url"`
}

func (s *EventService) Create(ctx context.Context, in CreateEventInput, organizerID string) (*domain.Event, error) {
	date, err := time.Parse("2006-01-02", in.Date)
	if err != nil {
		return nil, domain.Invalid("invalid date format (YYYY-MM-DD)")
	}
	e := &domain.Event{
		ID:          utils.NewID(),
		Title:       in.Title,
		Description: in.Description,
		Date:        date,
		Time:        in.Time,
		Location:    in.Location,
		Capacity:    in.Capacity,
		Price:       in.Price,
		Status:      domain.EventStatusUpcoming,
		Category:    in.Category,
		ImageURL:    in.ImageURL,
		OrganizerID: organizerID,
	}
	if err := s.events.Create(ctx, e); err != nil {
		return nil, domain.Internal("create event", err)
	}
	s.invalidate(ctx)
	s.log.Info("event created",
		zap.String("event_id", e.ID),
		zap.String("organizer_id", organizerID),
		zap.String("title", e.Title),
	)
	return s.refetch(ctx, e.ID)
}

// refetch 写后重读带主办方投影；repo 错误统一打 Internal 标签
func (s *EventService) refetch(ctx context.Context, id string) (*domain.Event, error) {
	e, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("find event", err)
	}
	return e, nil
}

func (s *EventService) List(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	if s.cache != nil && f == (domain.EventFilter{}) {
		return cache.GetOrLoadJSON(s.cache, ctx, eventCachePrefix+"all", s.ttl,
			func(ctx context.Context) ([]domain.Event, error) {
				return s.events.List(ctx, domain.EventFilter{})
			})
	}
	return s.events.List(ctx, f)
}

func (s *EventService) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	e, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("find event", err)
	}
	if e == nil {
		return nil, domain.NotFound("event not found")
	}
	return e, nil
}

func (s *EventService) ListByCategory(ctx context.Context, category string) ([]domain.Event, error) {
	if s.cache != nil {
		return cache.GetOrLoadJSON(s.cache, ctx, eventCachePrefix+"category:"+category, s.ttl,
			func(ctx context.Context) ([]domain.Event, error) {
				return s.events.List(ctx, domain.EventFilter{Category: category})
			})
	}
	return s.events.List(ctx, domain.EventFilter{Category: category})
}

func (s *EventService) ListUpcoming(ctx context.Context, limit int) ([]domain.Event, error) {
	if limit < 1 {
		limit = 5
	}
	if s.cache != nil {
		return cache.GetOrLoadJSON(s.cache, ctx, fmt.Sprintf("%supcoming:%d", eventCachePrefix, limit), s.ttl,
			func(ctx context.Context) ([]domain.Event, error) {
				return s.events.ListUpcoming(ctx, time.Now(), limit)
			})
	}
	return s.events.ListUpcoming(ctx, time.Now(), limit)
}

func (s *EventService) Update(ctx context.Context, id string, in UpdateEventInput, organizerID string) (*domain.Event, error) {
	e, err := s.owned(ctx, id, organizerID, "update")
	if err != nil {
		return nil, err
	}
	if in.Title != nil {
		e.Title = *in.Title
	}
	if in.Description != nil {
		e.Description = *in.Description
	}
	if in.Date != nil {
		date, err := time.Parse("2006-01-02", *in.Date)
		if err != nil {
			return nil, domain.Invalid("invalid date format (YYYY-MM-DD)")
		}
		e.Date = date
	}
	if in.Time != nil {
		e.Time = *in.Time
	}
	if in.Location != nil {
		e.Location = *in.Location
	}
	if in.Capacity != nil {
		e.Capacity = *in.Capacity
	}
	if in.Price != nil {
		e.Price = *in.Price
	}
	if in.Status != nil {
		e.Status = *in.Status
	}
	if in.Category != nil {
		e.Category = *in.Category
	}
	if in.ImageURL != nil {
		e.ImageURL = *in.ImageURL
	}
	e.Organizer = nil // Save 不回写关联
	if err := s.events.Update(ctx, e); err != nil {
		return nil, domain.Internal("update event", err)
	}
	s.invalidate(ctx)
	return s.refetch(ctx, id)
}

func (s *EventService) Delete(ctx context.Context, id, organizerID string) error {
	if _, err := s.owned(ctx, id, organizerID, "delete"); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return domain.Internal("delete event", err)
	}
	s.invalidate(ctx)
	s.log.Info("event deleted",
		zap.String("event_id", id),
		zap.String("organizer_id", organizerID),
	)
	return nil
}

// 只有主办方本人可以改/删
func (s *EventService) owned(ctx context.Context, id, organizerID, action string) (*domain.Event, error) {
	e, err := s.events.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("find event", err)
	}
	if e == nil {
		return nil, domain.NotFound("event not found")
	}
	if e.OrganizerID != organizerID {
		return nil, domain.Forbidden("you can only " + action + " events you created")
	}
	return e, nil
}

func (s *EventService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidatePrefix(ctx, eventCachePrefix); err != nil {
		s.log.Warn("event cache invalidation failed", zap.Error(err))
	}
}
