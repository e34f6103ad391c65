package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"event-booking-api/internal/domain"
)

type BookingRepo struct{ db *gorm.DB }

func NewBookingRepo(db *gorm.DB) *BookingRepo { return &BookingRepo{db: db} }

// 预订详情统一带活动/用户最小投影
func withBookingJoins(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Event", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "date", "time", "location")
		}).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "full_name", "email")
		})
}

// Create 容量与重复预订校验和插入在同一个事务里完成，
// 活动行加 FOR UPDATE 锁，避免边界上的并发超卖
func (r *BookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var event domain.Event
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&event, "id = ?", b.EventID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.NotFound("event not found")
		}
		if err != nil {
			return err
		}

		var taken int64
		err = tx.Model(&domain.Booking{}).
			Select("COALESCE(SUM(quantity), 0)").
			Where("event_id = ?", b.EventID).
			Where("status <> ?", domain.BookingStatusCancelled).
			Scan(&taken).Error
		if err != nil {
			return err
		}
		if taken+int64(b.Quantity) > int64(event.Capacity) {
			return domain.Conflict("event is at full capacity")
		}

		var dup int64
		err = tx.Model(&domain.Booking{}).
			Where("event_id = ? AND user_id = ?", b.EventID, b.UserID).
			Where("status <> ?", domain.BookingStatusCancelled).
			Count(&dup).Error
		if err != nil {
			return err
		}
		if dup > 0 {
			return domain.Conflict("you already have a booking for this event")
		}

		return tx.Create(b).Error
	})
}

func (r *BookingRepo) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	var b domain.Booking
	err := withBookingJoins(r.db.WithContext(ctx)).First(&b, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := withBookingJoins(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&bookings).Error
	return bookings, err
}

func (r *BookingRepo) List(ctx context.Context, offset, limit int, f domain.BookingFilter) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Booking{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if !f.DateFrom.IsZero() {
		q = q.Where("created_at >= ?", f.DateFrom)
	}
	if !f.DateTo.IsZero() {
		q = q.Where("created_at <= ?", f.DateTo)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var bookings []domain.Booking
	err := withBookingJoins(q).
		Order("created_at desc").
		Offset(offset).Limit(limit).
		Find(&bookings).Error
	return bookings, total, err
}

func (r *BookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Booking{}).
		Where("id = ?", id).
		Update("status", status).Error
}

func (r *BookingRepo) Stats(ctx context.Context) (*domain.BookingStats, error) {
	var s domain.BookingStats
	db := r.db.WithContext(ctx).Model(&domain.Booking{})

	if err := db.Session(&gorm.Session{}).Count(&s.TotalBookings).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).
		Where("status = ?", domain.BookingStatusConfirmed).
		Count(&s.ConfirmedBookings).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).
		Where("status = ?", domain.BookingStatusCancelled).
		Count(&s.CancelledBookings).Error; err != nil {
		return nil, err
	}
	if err := db.Session(&gorm.Session{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("status = ?", domain.BookingStatusConfirmed).
		Scan(&s.TotalRevenue).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
