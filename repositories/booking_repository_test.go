package repositories

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"resort-backend/models"
)

// sqlRecorder is a gorm logger that keeps every statement gorm renders.
type sqlRecorder struct {
	mu   sync.Mutex
	stmt []string
}

func (r *sqlRecorder) LogMode(logger.LogLevel) logger.Interface    { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})  {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{}) {}

func (r *sqlRecorder) Trace(_ context.Context, _ time.Time, fc func() (string, int64), _ error) {
	sql, _ := fc()
	r.mu.Lock()
	r.stmt = append(r.stmt, sql)
	r.mu.Unlock()
}

// take returns the statements recorded since the last call.
func (r *sqlRecorder) take() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := strings.Join(r.stmt, "\n")
	r.stmt = nil
	return out
}

// dryRunDB builds statements against the MySQL dialect without a server.
func dryRunDB(t *testing.T) (*gorm.DB, *sqlRecorder) {
	t.Helper()
	rec := &sqlRecorder{}
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "resort:resort@tcp(127.0.0.1:3306)/resort?parseTime=true",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db, rec
}

func assertSQL(t *testing.T, sql string, fragments ...string) {
	t.Helper()
	if sql == "" {
		t.Fatal("no statement recorded")
	}
	for _, f := range fragments {
		if !strings.Contains(sql, f) {
			t.Errorf("statement missing %q:\n%s", f, sql)
		}
	}
}

func TestBookingRepositorySQL(t *testing.T) {
	db, rec := dryRunDB(t)
	repo := NewBookingRepository(db)
	ctx := context.Background()
	start := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC)
	notCancelled := "status <> '" + models.StatusCancelled + "'"

	tests := []struct {
		name string
		run  func()
		want []string
	}{
		{
			"room overlap is half-open",
			func() { _, _ = repo.OverlappingRoomBookings(ctx, 7, start, end) },
			[]string{"FROM `room_bookings`", "room_id = 7", notCancelled,
				"check_in < '2025-03-12 00:00:00'", "check_out > '2025-03-10 00:00:00'", "ORDER BY check_in ASC"},
		},
		{
			"service overlap is half-open",
			func() { _, _ = repo.OverlappingServiceBookings(ctx, 3, start, end) },
			[]string{"FROM `service_bookings`", "service_id = 3", notCancelled,
				"start_time < '2025-03-12 00:00:00'", "end_time > '2025-03-10 00:00:00'"},
		},
		{
			"room lock",
			func() { _, _ = repo.LockRoom(ctx, 7) },
			[]string{"FROM `rooms`", "`rooms`.`id` = 7", "FOR UPDATE"},
		},
		{
			"service lock",
			func() { _, _ = repo.LockService(ctx, 3) },
			[]string{"FROM `services`", "`services`.`id` = 3", "FOR UPDATE"},
		},
		{
			"booking lock only when asked",
			func() { _, _ = repo.FindRoomBooking(ctx, 5, true) },
			[]string{"FROM `room_bookings`", "FOR UPDATE"},
		},
		{
			"room totals",
			func() { _, _ = repo.RoomBookingTotals(ctx) },
			[]string{"COUNT(*) AS total", "SUM(CASE WHEN status = 'cancelled' THEN 1 ELSE 0 END)",
				"SUM(CASE WHEN " + notCancelled + " THEN total_price ELSE 0 END)", "FROM `room_bookings`"},
		},
		{
			"service totals",
			func() { _, _ = repo.ServiceBookingTotals(ctx) },
			[]string{"COUNT(*) AS total", "FROM `service_bookings`"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec.take()
			tt.run()
			assertSQL(t, rec.take(), tt.want...)
		})
	}
}

func TestPlainBookingReadDoesNotLock(t *testing.T) {
	db, rec := dryRunDB(t)
	repo := NewBookingRepository(db)
	_, _ = repo.FindRoomBooking(context.Background(), 5, false)
	if sql := rec.take(); strings.Contains(sql, "FOR UPDATE") {
		t.Fatalf("read without forUpdate locked the row:\n%s", sql)
	}
}

func TestRoomReviewsQueryOrder(t *testing.T) {
	db, rec := dryRunDB(t)
	repo := NewReviewRepository(db)
	var list []models.Review
	_ = repo.roomReviewsQuery(context.Background(), 4).Find(&list).Error
	assertSQL(t, rec.take(), "FROM `reviews`", "room_id = 4", "ORDER BY created_at DESC,id DESC")
}
