package repo

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"event-booking-api/internal/domain"
)

func TestDashboardRepo_MonthlyAnalytics(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewDashboardRepo(db)

	// 12 个月，每月三条聚合：事件数 / 预订数 / 确认营收
	for m := 0; m < 12; m++ {
		mock.ExpectQuery(`SELECT count\(\*\) FROM "events" WHERE created_at >= \$1 AND created_at < \$2`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE created_at >= \$1 AND created_at < \$2`).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) FROM "bookings"`).
			WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(120.5))
	}

	out, err := r.MonthlyAnalytics(context.Background(), 2026)
	require.NoError(t, err)
	require.Len(t, out, 12)
	assert.Equal(t, "Jan", out[0].Month)
	assert.Equal(t, "Dec", out[11].Month)
	assert.Equal(t, int64(2), out[0].Events)
	assert.Equal(t, int64(5), out[0].Bookings)
	assert.Equal(t, 120.5, out[0].Revenue)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepo_CategoryAnalytics(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewDashboardRepo(db)

	mock.ExpectQuery(`SELECT category, COUNT\(id\) AS events FROM "events" GROUP BY`).
		WillReturnRows(sqlmock.NewRows([]string{"category", "events"}).
			AddRow("music", 3).
			AddRow("tech", 1))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" JOIN events ON events\.id = bookings\.event_id WHERE events\.category = \$1`).
		WithArgs("music").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(bookings\.total_amount\), 0\) FROM "bookings" JOIN events`).
		WithArgs("music", domain.BookingStatusConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(400.0))

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" JOIN events ON events\.id = bookings\.event_id WHERE events\.category = \$1`).
		WithArgs("tech").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(bookings\.total_amount\), 0\) FROM "bookings" JOIN events`).
		WithArgs("tech", domain.BookingStatusConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(55.0))

	out, err := r.CategoryAnalytics(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "music", out[0].Category)
	assert.Equal(t, int64(3), out[0].Events)
	assert.Equal(t, int64(8), out[0].Bookings)
	assert.Equal(t, 400.0, out[0].Revenue)
	assert.Equal(t, "tech", out[1].Category)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepo_TopEvents_Admin(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewDashboardRepo(db)

	// 管理端口径：LEFT JOIN 只聚合 CONFIRMED 预订，按预订数倒序
	mock.ExpectQuery(`SELECT events\.title, events\.capacity, COUNT\(bookings\.id\) AS bookings, COALESCE\(SUM\(bookings\.total_amount\), 0\) AS revenue FROM "events" LEFT JOIN bookings ON bookings\.event_id = events\.id AND bookings\.status = \$1`).
		WithArgs(domain.BookingStatusConfirmed, 5).
		WillReturnRows(sqlmock.NewRows([]string{"title", "capacity", "bookings", "revenue"}).
			AddRow("Concert", 100, 50, 1250.0).
			AddRow("Workshop", 3, 1, 20.0).
			AddRow("Meetup", 0, 0, 0.0))

	out, err := r.TopEvents(context.Background(), domain.Scope{Admin: true}, 5)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "Concert", out[0].Title)
	assert.Equal(t, int64(50), out[0].Bookings)
	assert.Equal(t, 1250.0, out[0].Revenue)
	assert.Equal(t, 50, out[0].Attendance)
	assert.Equal(t, 33, out[1].Attendance) // 1/3，四舍五入
	assert.Equal(t, 0, out[2].Attendance)  // 容量 0 不除
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepo_TopEvents_UserScope(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewDashboardRepo(db)

	// 用户口径：按本人预订 JOIN，未来活动按日期升序
	mock.ExpectQuery(`LEFT JOIN bookings ON bookings\.event_id = events\.id AND bookings\.user_id = \$1 WHERE events\.date >= \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"title", "capacity", "bookings", "revenue"}).
			AddRow("Concert", 10, 1, 25.0))

	out, err := r.TopEvents(context.Background(), domain.Scope{UserID: "u1"}, 5)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].Bookings)
	assert.Equal(t, 10, out[0].Attendance)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardRepo_Stats_UserScope(t *testing.T) {
	db, mock := newMockDB(t)
	r := NewDashboardRepo(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "bookings" WHERE user_id = \$1 AND status = \$2`).
		WithArgs("u1", domain.BookingStatusConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "events" WHERE date >= \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(`SELECT COALESCE\(SUM\(total_amount\), 0\) FROM "bookings" WHERE user_id = \$1 AND status = \$2`).
		WithArgs("u1", domain.BookingStatusConfirmed).
		WillReturnRows(sqlmock.NewRows([]string{"coalesce"}).AddRow(90.0))

	out, err := r.Stats(context.Background(), domain.Scope{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), out.ActiveBookings)
	assert.Equal(t, int64(7), out.TotalEvents)
	assert.Equal(t, 90.0, out.TotalRevenue)
	assert.Equal(t, int64(0), out.NewUsers)
	require.NoError(t, mock.ExpectationsWereMet())
}
