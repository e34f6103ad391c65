package repo

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"event-booking-api/internal/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:          "b1",
		EventID:     "e1",
		UserID:      "u1",
		TicketType:  "GA",
		Quantity:    2,
		TotalAmount: 50,
		Status:      domain.BookingStatusPending,
		BookingDate: time.Now(),
	}
}

func TestBookingRepo_Create_LocksAndInserts(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewBookingRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "events" WHERE id = \$1.+FOR UPDATE`).
		WithArgs("e1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "capacity", "price"}).
			AddRow("e1", 100, 25))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(10))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec(`INSERT INTO "bookings"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := r.Create(context.Background(), testBooking())
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_Create_FullCapacity(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewBookingRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "events" WHERE id = \$1.+FOR UPDATE`).
		WithArgs("e1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "capacity", "price"}).
			AddRow("e1", 10, 25))
	// 已占 9，买 2 → 超容量
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(9))
	mock.ExpectRollback()

	err := r.Create(context.Background(), testBooking())
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	assert.Equal(t, "event is at full capacity", err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_Create_DuplicateActiveBooking(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewBookingRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "events" WHERE id = \$1.+FOR UPDATE`).
		WithArgs("e1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "capacity", "price"}).
			AddRow("e1", 100, 25))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(quantity\), 0\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(2))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectRollback()

	err := r.Create(context.Background(), testBooking())
	assert.True(t, domain.IsKind(err, domain.KindConflict))
	assert.Equal(t, "you already have a booking for this event", err.Error())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_Create_EventMissing(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewBookingRepo(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "events" WHERE id = \$1.+FOR UPDATE`).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "capacity", "price"}))
	mock.ExpectRollback()

	b := testBooking()
	b.EventID = "missing"
	err := r.Create(context.Background(), b)
	assert.True(t, domain.IsKind(err, domain.KindNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_FindByID_NotFoundIsNil(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewBookingRepo(db)

	mock.ExpectQuery(`SELECT \* FROM "bookings" WHERE id = \$1`).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	b, err := r.FindByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, b)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_UpdateStatus(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewBookingRepo(db)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "bookings" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := r.UpdateStatus(context.Background(), "b1", domain.BookingStatusCancelled)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepo_Stats(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewBookingRepo(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE status = \$1`).
		WithArgs(domain.BookingStatusConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE status = \$1`).
		WithArgs(domain.BookingStatusCancelled).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) FROM "bookings" WHERE status = \$1`).
		WithArgs(domain.BookingStatusConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(350.5))

	s, err := r.Stats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(12), s.TotalBookings)
	assert.Equal(t, int64(7), s.ConfirmedBookings)
	assert.Equal(t, int64(2), s.CancelledBookings)
	assert.Equal(t, 350.5, s.TotalRevenue)
	require.NoError(t, mock.ExpectationsWereMet())
}
