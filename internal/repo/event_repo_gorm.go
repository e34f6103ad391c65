package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"event-booking-api/internal/domain"
)

type EventRepo struct{ db *gorm.DB }

func NewEventRepo(db *gorm.DB) *EventRepo { return &EventRepo{db: db} }

// 列表/详情都带主办方投影
func withOrganizer(db *gorm.DB) *gorm.DB {
	return db.Preload("Organizer", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "full_name")
	})
}

func (r *EventRepo) Create(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *EventRepo) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	var e domain.Event
	err := withOrganizer(r.db.WithContext(ctx)).First(&e, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if err := r.fillAttendees(ctx, []*domain.Event{&e}); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *EventRepo) List(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	q := withOrganizer(r.db.WithContext(ctx).Model(&domain.Event{}))
	if f.Search != "" {
		like := "%" + f.Search + "%"
		q = q.Where("title LIKE ? OR location LIKE ?", like, like)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Category != "" {
		q = q.Where("category = ?", f.Category)
	}
	if !f.DateFrom.IsZero() {
		q = q.Where("date >= ?", f.DateFrom)
	}
	if !f.DateTo.IsZero() {
		q = q.Where("date <= ?", f.DateTo)
	}
	if f.HasPrice {
		q = q.Where("price >= ? AND price <= ?", f.MinPrice, f.MaxPrice)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var events []domain.Event
	if err := q.Order("date asc").Find(&events).Error; err != nil {
		return nil, err
	}
	ptrs := make([]*domain.Event, len(events))
	for i := range events {
		ptrs[i] = &events[i]
	}
	if err := r.fillAttendees(ctx, ptrs); err != nil {
		return nil, err
	}
	return events, nil
}

func (r *EventRepo) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]domain.Event, error) {
	return r.List(ctx, domain.EventFilter{DateFrom: from, Limit: limit})
}

func (r *EventRepo) Update(ctx context.Context, e *domain.Event) error {
	return r.db.WithContext(ctx).Save(e).Error
}

// Delete 硬删活动；同事务清掉关联预订，避免悬挂行
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", id).Delete(&domain.Booking{}).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Event{}, "id = ?", id).Error
	})
}

// fillAttendees 补上每个活动的活跃预订行数（attendees 口径：不含 CANCELLED）
func (r *EventRepo) fillAttendees(ctx context.Context, events []*domain.Event) error {
	if len(events) == 0 {
		return nil
	}
	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}
	type row struct {
		EventID string
		Cnt     int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Select("event_id, COUNT(*) AS cnt").
		Where("event_id IN ?", ids).
		Where("status <> ?", domain.BookingStatusCancelled).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.EventID] = rw.Cnt
	}
	for _, e := range events {
		e.Attendees = counts[e.ID]
	}
	return nil
}
