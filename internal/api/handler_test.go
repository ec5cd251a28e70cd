package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"dorm-management-backend/config"
	"dorm-management-backend/internal/db"
	"dorm-management-backend/internal/lifecycle"
	"dorm-management-backend/internal/model"
	"dorm-management-backend/internal/store"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var apiTestDBSeq atomic.Int64

// setupAPI wires the full router over a fresh in-memory database. Rate
// limits are set high enough to never trip during a test.
func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:api_test_%d?mode=memory&cache=shared", apiTestDBSeq.Add(1))
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

	s := store.NewGormStore(gormDB)
	h := NewHandler(
		lifecycle.NewRoomService(s),
		lifecycle.NewReservationService(s),
		lifecycle.NewContractService(s, 365),
		lifecycle.NewInvoiceService(s),
		lifecycle.NewStudentService(s),
	)
	router := NewRouter(h, &config.ServerConfig{
		RateLimitPerSec: 1000,
		RateLimitBurst:  1000,
		CacheTTLSeconds: 1,
	})
	return router, gormDB
}

func seedAPIStudent(t *testing.T, gdb *gorm.DB) *model.Student {
	t.Helper()
	seq := apiTestDBSeq.Add(1)
	student := &model.Student{
		FullName: "Test Resident",
		Birth:    time.Date(2003, time.May, 4, 0, 0, 0, 0, time.UTC),
		Gender:   "other",
		Phone:    fmt.Sprintf("08%09d", seq),
		Email:    fmt.Sprintf("resident.%d@dorm.test", seq),
	}
	require.NoError(t, gdb.Create(student).Error)
	return student
}

func seedAPIRoom(t *testing.T, gdb *gorm.DB, code string, capacity int) *model.Room {
	t.Helper()
	room := &model.Room{Code: code, Capacity: capacity, Price: decimal.NewFromInt(2_000_000), Active: true}
	require.NoError(t, gdb.Create(room).Error)
	return room
}

// doJSON performs a request with an optional JSON body and student
// identity header.
func doJSON(router *gin.Engine, method, path string, body any, studentID int64) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if studentID > 0 {
		req.Header.Set(studentIDHeader, fmt.Sprintf("%d", studentID))
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestStudentRoutesRequireIdentity(t *testing.T) {
	router, _ := setupAPI(t)

	w := doJSON(router, http.MethodPost, "/api/student/reservations", gin.H{"room_id": 1}, 0)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/api/student/me", nil, 0)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateReservationUnknownRoom(t *testing.T) {
	router, gdb := setupAPI(t)
	student := seedAPIStudent(t, gdb)

	w := doJSON(router, http.MethodPost, "/api/student/reservations", gin.H{"room_id": 9999}, student.ID)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDecideReservationConflicts(t *testing.T) {
	router, gdb := setupAPI(t)
	room := seedAPIRoom(t, gdb, "H-101", 2)
	student := seedAPIStudent(t, gdb)

	w := doJSON(router, http.MethodPost, "/api/student/reservations", gin.H{"room_id": room.ID}, student.ID)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Reservation model.Reservation `json:"reservation"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	decide := fmt.Sprintf("/api/admin/reservations/%d/status", created.Reservation.ID)

	w = doJSON(router, http.MethodPut, decide, gin.H{"new_status": "APPROVED"}, 0)
	assert.Equal(t, http.StatusOK, w.Code)

	// A decided reservation cannot be decided again.
	w = doJSON(router, http.MethodPut, decide, gin.H{"new_status": "APPROVED"}, 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodPut, decide, gin.H{"new_status": "SHIPPED"}, 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPathParametersAreValidated(t *testing.T) {
	router, gdb := setupAPI(t)
	student := seedAPIStudent(t, gdb)

	w := doJSON(router, http.MethodDelete, "/api/student/reservations/abc", nil, student.ID)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(router, http.MethodGet, "/api/rooms/-4", nil, 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetRoomReportsOccupancy(t *testing.T) {
	router, gdb := setupAPI(t)
	room := seedAPIRoom(t, gdb, "H-201", 2)

	w := doJSON(router, http.MethodGet, fmt.Sprintf("/api/rooms/%d", room.ID), nil, 0)
	require.Equal(t, http.StatusOK, w.Code)

	var avail lifecycle.RoomAvailability
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &avail))
	assert.Equal(t, room.Code, avail.Room.Code)
	assert.EqualValues(t, 0, avail.Occupied)

	w = doJSON(router, http.MethodGet, "/api/rooms/424242", nil, 0)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExpiringContractsQueryBound(t *testing.T) {
	router, _ := setupAPI(t)

	w := doJSON(router, http.MethodGet, "/api/admin/contracts/expiring?days=4000", nil, 0)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
