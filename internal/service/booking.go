package service

import (
	"context"
	"math"
	"time"

	"go.uber.org/zap"

	"event-booking-api/internal/domain"
	"event-booking-api/pkg/utils"
)

type BookingService struct {
	bookings domain.BookingRepository
	events   domain.EventRepository
	log      *zap.Logger
}

func NewBookingService(bookings domain.BookingRepository, events domain.EventRepository, log *zap.Logger) *BookingService {
	return &BookingService{bookings: bookings, events: events, log: log}
}

type CreateBookingInput struct {
	EventID     string  `json:"eventId" binding:"required"`
	TicketType  string  `json:"ticketType" binding:"required,min=2,max=50"`
	Quantity    int     `json:"quantity" binding:"required,min=1"`
	TotalAmount float64 `json:"totalAmount" binding:"omitempty,gte=0"`
}

type UpdateBookingInput struct {
	Status string `json:"status" binding:"required,oneof=PENDING CONFIRMED CANCELLED COMPLETED"`
}

type BookingPage struct {
	Bookings   []domain.Booking
	Page       int
	Limit      int
	Total      int64
	TotalPages int
}

// Create 容量与重复预订的原子校验在仓储事务里完成；
// 金额一律按活动价格重新计算，不信任客户端传值
func (s *BookingService) Create(ctx context.Context, in CreateBookingInput, requesterID string) (*domain.Booking, error) {
	event, err := s.events.FindByID(ctx, in.EventID)
	if err != nil {
		return nil, domain.Internal("find event", err)
	}
	if event == nil {
		return nil, domain.NotFound("event not found")
	}

	b := &domain.Booking{
		ID:          utils.NewID(),
		EventID:     in.EventID,
		UserID:      requesterID,
		TicketType:  in.TicketType,
		Quantity:    in.Quantity,
		TotalAmount: event.Price * float64(in.Quantity),
		Status:      domain.BookingStatusPending,
		BookingDate: time.Now(),
	}
	if err := s.bookings.Create(ctx, b); err != nil {
		return nil, err
	}

	s.log.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("event_id", b.EventID),
		zap.String("user_id", b.UserID),
		zap.Int("quantity", b.Quantity),
	)
	return s.refetch(ctx, b.ID)
}

// refetch 写后重读带关联投影；repo 错误在这里统一打 Internal 标签
func (s *BookingService) refetch(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("find booking", err)
	}
	return b, nil
}

func (s *BookingService) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	b, err := s.bookings.FindByID(ctx, id)
	if err != nil {
		return nil, domain.Internal("find booking", err)
	}
	if b == nil {
		return nil, domain.NotFound("booking not found")
	}
	return b, nil
}

// GetForRequester 读单条也走属主/主办方校验；admin 直读
func (s *BookingService) GetForRequester(ctx context.Context, id, requesterID string, admin bool) (*domain.Booking, error) {
	if admin {
		return s.GetByID(ctx, id)
	}
	if err := s.authorize(ctx, id, requesterID, "view"); err != nil {
		return nil, err
	}
	return s.refetch(ctx, id)
}

func (s *BookingService) ListByUser(ctx context.Context, userID string) ([]domain.Booking, error) {
	return s.bookings.ListByUser(ctx, userID)
}

func (s *BookingService) List(ctx context.Context, page, limit int, f domain.BookingFilter) (*BookingPage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	bookings, total, err := s.bookings.List(ctx, (page-1)*limit, limit, f)
	if err != nil {
		return nil, domain.Internal("list bookings", err)
	}
	return &BookingPage{
		Bookings:   bookings,
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: int(math.Ceil(float64(total) / float64(limit))),
	}, nil
}

func (s *BookingService) Update(ctx context.Context, id string, in UpdateBookingInput, requesterID string) (*domain.Booking, error) {
	if err := s.authorize(ctx, id, requesterID, "update"); err != nil {
		return nil, err
	}
	if err := s.bookings.UpdateStatus(ctx, id, in.Status); err != nil {
		return nil, domain.Internal("update booking", err)
	}
	return s.refetch(ctx, id)
}

// Cancel 软取消：只改状态，行保留做审计；重复取消不报错
func (s *BookingService) Cancel(ctx context.Context, id, requesterID string) (*domain.Booking, error) {
	if err := s.authorize(ctx, id, requesterID, "cancel"); err != nil {
		return nil, err
	}
	if err := s.bookings.UpdateStatus(ctx, id, domain.BookingStatusCancelled); err != nil {
		return nil, domain.Internal("cancel booking", err)
	}
	s.log.Info("booking cancelled",
		zap.String("booking_id", id),
		zap.String("by", requesterID),
	)
	return s.refetch(ctx, id)
}

func (s *BookingService) Stats(ctx context.Context) (*domain.BookingStats, error) {
	return s.bookings.Stats(ctx)
}

// 本人或所订活动的主办方才能改/取消
func (s *BookingService) authorize(ctx context.Context, bookingID, requesterID, action string) error {
	b, err := s.bookings.FindByID(ctx, bookingID)
	if err != nil {
		return domain.Internal("find booking", err)
	}
	if b == nil {
		return domain.NotFound("booking not found")
	}
	if b.UserID == requesterID {
		return nil
	}
	event, err := s.events.FindByID(ctx, b.EventID)
	if err != nil {
		return domain.Internal("find event", err)
	}
	if event != nil && event.OrganizerID == requesterID {
		return nil
	}
	return domain.Forbidden("you can only " + action + " your own bookings or bookings for events you organize")
}
