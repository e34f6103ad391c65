package repo

import (
	"context"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"event-booking-api/internal/domain"
)

// DashboardRepo 纯只读聚合，不做任何写入
type DashboardRepo struct{ db *gorm.DB }

func NewDashboardRepo(db *gorm.DB) *DashboardRepo { return &DashboardRepo{db: db} }

func (r *DashboardRepo) Stats(ctx context.Context, s domain.Scope) (*domain.DashboardStats, error) {
	var out domain.DashboardStats
	db := r.db.WithContext(ctx)

	if s.Admin {
		if err := db.Model(&domain.Event{}).Count(&out.TotalEvents).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&domain.Booking{}).
			Where("status = ?", domain.BookingStatusConfirmed).
			Count(&out.ActiveBookings).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&domain.User{}).Count(&out.NewUsers).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&domain.Booking{}).
			Select("COALESCE(SUM(total_amount), 0)").
			Where("status = ?", domain.BookingStatusConfirmed).
			Scan(&out.TotalRevenue).Error; err != nil {
			return nil, err
		}
		return &out, nil
	}

	// 普通用户：只统计自己的数据，可订活动数按未来日期算
	if err := db.Model(&domain.Booking{}).
		Where("user_id = ? AND status = ?", s.UserID, domain.BookingStatusConfirmed).
		Count(&out.ActiveBookings).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Event{}).
		Where("date >= ?", time.Now()).
		Count(&out.TotalEvents).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.Booking{}).
		Select("COALESCE(SUM(total_amount), 0)").
		Where("user_id = ? AND status = ?", s.UserID, domain.BookingStatusConfirmed).
		Scan(&out.TotalRevenue).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *DashboardRepo) RecentActivities(ctx context.Context, s domain.Scope, limit int) ([]domain.Activity, error) {
	db := r.db.WithContext(ctx)

	if !s.Admin {
		var bookings []domain.Booking
		err := db.Preload("Event", func(db *gorm.DB) *gorm.DB { return db.Select("id", "title") }).
			Where("user_id = ?", s.UserID).
			Order("created_at desc").Limit(limit).
			Find(&bookings).Error
		if err != nil {
			return nil, err
		}
		acts := make([]domain.Activity, 0, len(bookings))
		for _, b := range bookings {
			title := ""
			if b.Event != nil {
				title = b.Event.Title
			}
			acts = append(acts, domain.Activity{
				ID:          b.ID,
				Type:        "booking_made",
				Description: fmt.Sprintf("Booking for %q - %s", title, b.Status),
				Timestamp:   b.CreatedAt,
				UserName:    "You",
			})
		}
		return acts, nil
	}

	// 管理端：三路最近记录合并后按时间倒序截断
	var events []domain.Event
	if err := withOrganizer(db).Order("created_at desc").Limit(limit).Find(&events).Error; err != nil {
		return nil, err
	}
	var bookings []domain.Booking
	if err := withBookingJoins(db).Order("created_at desc").Limit(limit).Find(&bookings).Error; err != nil {
		return nil, err
	}
	var users []domain.User
	if err := db.Order("created_at desc").Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}

	acts := make([]domain.Activity, 0, len(events)+len(bookings)+len(users))
	for _, e := range events {
		name := ""
		if e.Organizer != nil {
			name = e.Organizer.FullName
		}
		acts = append(acts, domain.Activity{
			ID:          e.ID,
			Type:        "event_created",
			Description: fmt.Sprintf("New event %q created", e.Title),
			Timestamp:   e.CreatedAt,
			UserName:    name,
		})
	}
	for _, b := range bookings {
		title, name := "", ""
		if b.Event != nil {
			title = b.Event.Title
		}
		if b.User != nil {
			name = b.User.FullName
		}
		acts = append(acts, domain.Activity{
			ID:          b.ID,
			Type:        "booking_made",
			Description: fmt.Sprintf("Booking made for %q", title),
			Timestamp:   b.CreatedAt,
			UserName:    name,
		})
	}
	for _, u := range users {
		acts = append(acts, domain.Activity{
			ID:          u.ID,
			Type:        "user_registered",
			Description: fmt.Sprintf("New user %q registered", u.FullName),
			Timestamp:   u.CreatedAt,
			UserName:    u.FullName,
		})
	}
	sort.Slice(acts, func(i, j int) bool { return acts[i].Timestamp.After(acts[j].Timestamp) })
	if len(acts) > limit {
		acts = acts[:limit]
	}
	return acts, nil
}

func (r *DashboardRepo) UpcomingEvents(ctx context.Context, s domain.Scope, limit int) ([]domain.UpcomingEvent, error) {
	db := r.db.WithContext(ctx)

	var events []domain.Event
	err := db.Where("date >= ?", time.Now()).
		Order("date asc").Limit(limit).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return []domain.UpcomingEvent{}, nil
	}

	ids := make([]string, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}

	type cntRow struct {
		EventID string
		Cnt     int64
	}
	var rows []cntRow
	err = db.Model(&domain.Booking{}).
		Select("event_id, COUNT(*) AS cnt").
		Where("event_id IN ?", ids).
		Where("status <> ?", domain.BookingStatusCancelled).
		Group("event_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	counts := make(map[string]int64, len(rows))
	for _, rw := range rows {
		counts[rw.EventID] = rw.Cnt
	}

	booked := make(map[string]bool)
	if !s.Admin {
		var mine []string
		err = db.Model(&domain.Booking{}).
			Where("user_id = ? AND event_id IN ?", s.UserID, ids).
			Where("status <> ?", domain.BookingStatusCancelled).
			Pluck("event_id", &mine).Error
		if err != nil {
			return nil, err
		}
		for _, id := range mine {
			booked[id] = true
		}
	}

	out := make([]domain.UpcomingEvent, 0, len(events))
	for _, e := range events {
		out = append(out, domain.UpcomingEvent{
			ID:        e.ID,
			Title:     e.Title,
			Date:      e.Date,
			Time:      e.Time,
			Location:  e.Location,
			Attendees: counts[e.ID],
			Capacity:  e.Capacity,
			IsBooked:  booked[e.ID],
		})
	}
	return out, nil
}

func (r *DashboardRepo) MonthlyAnalytics(ctx context.Context, year int) ([]domain.MonthlyPoint, error) {
	db := r.db.WithContext(ctx)
	out := make([]domain.MonthlyPoint, 0, 12)

	for m := time.January; m <= time.December; m++ {
		start := time.Date(year, m, 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, 0)

		p := domain.MonthlyPoint{Month: start.Format("Jan")}
		if err := db.Model(&domain.Event{}).
			Where("created_at >= ? AND created_at < ?", start, end).
			Count(&p.Events).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&domain.Booking{}).
			Where("created_at >= ? AND created_at < ?", start, end).
			Count(&p.Bookings).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&domain.Booking{}).
			Select("COALESCE(SUM(total_amount), 0)").
			Where("created_at >= ? AND created_at < ?", start, end).
			Where("status = ?", domain.BookingStatusConfirmed).
			Scan(&p.Revenue).Error; err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *DashboardRepo) CategoryAnalytics(ctx context.Context) ([]domain.CategoryPoint, error) {
	db := r.db.WithContext(ctx)

	var cats []struct {
		Category string
		Events   int64
	}
	err := db.Model(&domain.Event{}).
		Select("category, COUNT(id) AS events").
		Group("category").
		Scan(&cats).Error
	if err != nil {
		return nil, err
	}

	out := make([]domain.CategoryPoint, 0, len(cats))
	for _, c := range cats {
		p := domain.CategoryPoint{Category: c.Category, Events: c.Events}
		if err := db.Model(&domain.Booking{}).
			Joins("JOIN events ON events.id = bookings.event_id").
			Where("events.category = ?", c.Category).
			Count(&p.Bookings).Error; err != nil {
			return nil, err
		}
		if err := db.Model(&domain.Booking{}).
			Select("COALESCE(SUM(bookings.total_amount), 0)").
			Joins("JOIN events ON events.id = bookings.event_id").
			Where("events.category = ?", c.Category).
			Where("bookings.status = ?", domain.BookingStatusConfirmed).
			Scan(&p.Revenue).Error; err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *DashboardRepo) TopEvents(ctx context.Context, s domain.Scope, limit int) ([]domain.TopEvent, error) {
	db := r.db.WithContext(ctx)

	type row struct {
		Title    string
		Capacity int
		Bookings int64
		Revenue  float64
	}
	var rows []row

	if s.Admin {
		err := db.Model(&domain.Event{}).
			Select("events.title, events.capacity, COUNT(bookings.id) AS bookings, COALESCE(SUM(bookings.total_amount), 0) AS revenue").
			Joins("LEFT JOIN bookings ON bookings.event_id = events.id AND bookings.status = ?", domain.BookingStatusConfirmed).
			Group("events.id, events.title, events.capacity").
			Order("bookings desc").
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
	} else {
		err := db.Model(&domain.Event{}).
			Select("events.title, events.capacity, COUNT(bookings.id) AS bookings, COALESCE(SUM(bookings.total_amount), 0) AS revenue").
			Joins("LEFT JOIN bookings ON bookings.event_id = events.id AND bookings.user_id = ?", s.UserID).
			Where("events.date >= ?", time.Now()).
			Group("events.id, events.title, events.capacity").
			Order("events.date asc").
			Limit(limit).
			Scan(&rows).Error
		if err != nil {
			return nil, err
		}
	}

	out := make([]domain.TopEvent, 0, len(rows))
	for _, rw := range rows {
		attendance := 0
		if rw.Capacity > 0 {
			attendance = int(float64(rw.Bookings)/float64(rw.Capacity)*100 + 0.5)
		}
		out = append(out, domain.TopEvent{
			Title:      rw.Title,
			Bookings:   rw.Bookings,
			Revenue:    rw.Revenue,
			Attendance: attendance,
		})
	}
	return out, nil
}
