package lifecycle

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dorm-management-backend/internal/db"
	"dorm-management-backend/internal/model"
	"dorm-management-backend/internal/store"
)

var testDBSeq atomic.Int64

// newTestStore opens a fresh in-memory sqlite database with the full
// schema. Each test gets its own named database so parallel tests cannot
// see each other's rows.
func newTestStore(t *testing.T) (store.Store, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:lifecycle_test_%d?mode=memory&cache=shared", testDBSeq.Add(1))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gormDB))

	t.Cleanup(func() {
		sqlDB, err := gormDB.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	return store.NewGormStore(gormDB), gormDB
}

func seedRoom(t *testing.T, gdb *gorm.DB, code string, capacity int, price int64) *model.Room {
	t.Helper()
	room := &model.Room{Code: code, Capacity: capacity, Price: decimal.NewFromInt(price), Active: true}
	require.NoError(t, gdb.Create(room).Error)
	return room
}

func seedStudent(t *testing.T, gdb *gorm.DB, name string) *model.Student {
	t.Helper()
	student := &model.Student{
		FullName: name,
		Birth:    time.Date(2003, time.May, 4, 0, 0, 0, 0, time.UTC),
		Gender:   "other",
		Phone:    fmt.Sprintf("09%09d", testDBSeq.Add(1)),
		Email:    fmt.Sprintf("%s.%d@dorm.test", name, testDBSeq.Add(1)),
	}
	require.NoError(t, gdb.Create(student).Error)
	return student
}

// fixedNow pins a service clock.
func fixedNow(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
