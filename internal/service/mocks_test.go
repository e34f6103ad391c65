package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"event-booking-api/internal/domain"
)

type mockUserRepo struct{ mock.Mock }

func (m *mockUserRepo) Create(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*domain.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	us, _ := args.Get(0).([]domain.User)
	return us, args.Error(1)
}

func (m *mockUserRepo) Update(ctx context.Context, u *domain.User) error {
	return m.Called(ctx, u).Error(0)
}

type mockEventRepo struct{ mock.Mock }

func (m *mockEventRepo) Create(ctx context.Context, e *domain.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEventRepo) FindByID(ctx context.Context, id string) (*domain.Event, error) {
	args := m.Called(ctx, id)
	e, _ := args.Get(0).(*domain.Event)
	return e, args.Error(1)
}

func (m *mockEventRepo) List(ctx context.Context, f domain.EventFilter) ([]domain.Event, error) {
	args := m.Called(ctx, f)
	es, _ := args.Get(0).([]domain.Event)
	return es, args.Error(1)
}

func (m *mockEventRepo) ListUpcoming(ctx context.Context, from time.Time, limit int) ([]domain.Event, error) {
	args := m.Called(ctx, from, limit)
	es, _ := args.Get(0).([]domain.Event)
	return es, args.Error(1)
}

func (m *mockEventRepo) Update(ctx context.Context, e *domain.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockEventRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

type mockBookingRepo struct{ mock.Mock }

func (m *mockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	return m.Called(ctx, b).Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	b, _ := args.Get(0).(*domain.Booking)
	return b, args.Error(1)
}

func (m *mockBookingRepo) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	args := m.Called(ctx, userID)
	bs, _ := args.Get(0).([]domain.Booking)
	return bs, args.Error(1)
}

func (m *mockBookingRepo) List(ctx context.Context, offset, limit int, f domain.BookingFilter) ([]domain.Booking, int64, error) {
	args := m.Called(ctx, offset, limit, f)
	bs, _ := args.Get(0).([]domain.Booking)
	return bs, args.Get(1).(int64), args.Error(2)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return m.Called(ctx, id, status).Error(0)
}

func (m *mockBookingRepo) Stats(ctx context.Context) (*domain.BookingStats, error) {
	args := m.Called(ctx)
	s, _ := args.Get(0).(*domain.BookingStats)
	return s, args.Error(1)
}
