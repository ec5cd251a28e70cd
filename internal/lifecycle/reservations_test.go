package lifecycle

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dorm-management-backend/internal/model"
	"dorm-management-backend/internal/store"
)

func TestReservationCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending reservation", func(t *testing.T) {
		s, gdb := newTestStore(t)
		room := seedRoom(t, gdb, "R-101", 2, 2_000_000)
		student := seedStudent(t, gdb, "alice")

		svc := NewReservationService(s)
		r, err := svc.Create(ctx, student.ID, room.ID, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, model.ReservationPending, r.Status)
		assert.Equal(t, room.ID, r.RoomID)
		assert.Nil(t, r.StartDate)
		assert.False(t, r.BookingDate.IsZero())
	})

	t.Run("unknown room", func(t *testing.T) {
		s, gdb := newTestStore(t)
		student := seedStudent(t, gdb, "bob")

		_, err := NewReservationService(s).Create(ctx, student.ID, 9999, time.Time{})
		assert.ErrorIs(t, err, ErrRoomNotFound)
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("inactive room reads as absent", func(t *testing.T) {
		s, gdb := newTestStore(t)
		room := seedRoom(t, gdb, "R-102", 2, 2_000_000)
		require.NoError(t, gdb.Model(room).Update("active", false).Error)
		student := seedStudent(t, gdb, "carol")

		_, err := NewReservationService(s).Create(ctx, student.ID, room.ID, time.Time{})
		assert.ErrorIs(t, err, ErrRoomNotFound)
	})

	t.Run("unknown student", func(t *testing.T) {
		s, gdb := newTestStore(t)
		room := seedRoom(t, gdb, "R-103", 2, 2_000_000)

		_, err := NewReservationService(s).Create(ctx, 4242, room.ID, time.Time{})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("full room", func(t *testing.T) {
		s, gdb := newTestStore(t)
		room := seedRoom(t, gdb, "R-104", 1, 2_000_000)
		occupant := seedStudent(t, gdb, "dave")
		require.NoError(t, gdb.Create(&model.Reservation{
			StudentID:   occupant.ID,
			RoomID:      room.ID,
			BookingDate: time.Now(),
			Status:      model.ReservationApproved,
		}).Error)

		late := seedStudent(t, gdb, "erin")
		_, err := NewReservationService(s).Create(ctx, late.ID, room.ID, time.Time{})
		assert.ErrorIs(t, err, ErrRoomFull)
	})

	t.Run("one live reservation per student", func(t *testing.T) {
		s, gdb := newTestStore(t)
		roomA := seedRoom(t, gdb, "R-105", 2, 2_000_000)
		roomB := seedRoom(t, gdb, "R-106", 2, 2_000_000)
		student := seedStudent(t, gdb, "frank")

		svc := NewReservationService(s)
		_, err := svc.Create(ctx, student.ID, roomA.ID, time.Time{})
		require.NoError(t, err)

		_, err = svc.Create(ctx, student.ID, roomB.ID, time.Time{})
		assert.ErrorIs(t, err, ErrDuplicateReservation)
	})

	t.Run("rejected reservation does not block a new one", func(t *testing.T) {
		s, gdb := newTestStore(t)
		room := seedRoom(t, gdb, "R-107", 2, 2_000_000)
		student := seedStudent(t, gdb, "grace")
		require.NoError(t, gdb.Create(&model.Reservation{
			StudentID:   student.ID,
			RoomID:      room.ID,
			BookingDate: time.Now(),
			Status:      model.ReservationRejected,
		}).Error)

		_, err := NewReservationService(s).Create(ctx, student.ID, room.ID, time.Time{})
		assert.NoError(t, err)
	})
}

func TestReservationCancel(t *testing.T) {
	ctx := context.Background()

	t.Run("owner cancels pending", func(t *testing.T) {
		s, gdb := newTestStore(t)
		room := seedRoom(t, gdb, "R-201", 2, 2_000_000)
		student := seedStudent(t, gdb, "alice")

		svc := NewReservationService(s)
		r, err := svc.Create(ctx, student.ID, room.ID, time.Time{})
		require.NoError(t, err)

		require.NoError(t, svc.Cancel(ctx, r.ID, student.ID))

		var count int64
		gdb.Model(&model.Reservation{}).Count(&count)
		assert.Zero(t, count)
	})

	t.Run("not the owner", func(t *testing.T) {
		s, gdb := newTestStore(t)
		room := seedRoom(t, gdb, "R-202", 2, 2_000_000)
		owner := seedStudent(t, gdb, "bob")
		other := seedStudent(t, gdb, "mallory")

		svc := NewReservationService(s)
		r, err := svc.Create(ctx, owner.ID, room.ID, time.Time{})
		require.NoError(t, err)

		assert.ErrorIs(t, svc.Cancel(ctx, r.ID, other.ID), ErrNotFound)
	})

	t.Run("approved reservation cannot be canceled", func(t *testing.T) {
		s, gdb := newTestStore(t)
		room := seedRoom(t, gdb, "R-203", 2, 2_000_000)
		student := seedStudent(t, gdb, "carol")
		r := &model.Reservation{
			StudentID:   student.ID,
			RoomID:      room.ID,
			BookingDate: time.Now(),
			Status:      model.ReservationApproved,
		}
		require.NoError(t, gdb.Create(r).Error)

		assert.ErrorIs(t, NewReservationService(s).Cancel(ctx, r.ID, student.ID), ErrInvalidState)
	})

	t.Run("absent reservation", func(t *testing.T) {
		s, gdb := newTestStore(t)
		student := seedStudent(t, gdb, "dave")
		assert.ErrorIs(t, NewReservationService(s).Cancel(ctx, 777, student.ID), ErrNotFound)
	})
}

func TestReservationList(t *testing.T) {
	ctx := context.Background()
	s, gdb := newTestStore(t)
	room := seedRoom(t, gdb, "R-301", 4, 2_000_000)
	base := time.Date(2025, time.March, 1, 12, 0, 0, 0, time.UTC)

	// Three reservations booked out of id order.
	bookings := []time.Time{base.Add(2 * time.Hour), base, base.Add(time.Hour)}
	var students []*model.Student
	for i, booked := range bookings {
		student := seedStudent(t, gdb, "lister")
		students = append(students, student)
		status := model.ReservationPending
		if i == 0 {
			status = model.ReservationApproved
		}
		require.NoError(t, gdb.Create(&model.Reservation{
			StudentID:   student.ID,
			RoomID:      room.ID,
			BookingDate: booked,
			Status:      status,
		}).Error)
	}

	svc := NewReservationService(s)

	t.Run("booking order ascending by default", func(t *testing.T) {
		got, err := svc.List(ctx, store.ReservationFilter{})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.True(t, got[0].BookingDate.Before(got[1].BookingDate))
		assert.True(t, got[1].BookingDate.Before(got[2].BookingDate))
	})

	t.Run("status filter", func(t *testing.T) {
		approved := model.ReservationApproved
		got, err := svc.List(ctx, store.ReservationFilter{Status: &approved})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, students[0].ID, got[0].StudentID)
	})

	t.Run("unknown status is rejected", func(t *testing.T) {
		bogus := model.ReservationStatus("SHIPPED")
		_, err := svc.List(ctx, store.ReservationFilter{Status: &bogus})
		assert.ErrorIs(t, err, ErrInvalidArgument)
	})

	t.Run("descending order", func(t *testing.T) {
		got, err := svc.List(ctx, store.ReservationFilter{Order: store.OrderDesc})
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.True(t, got[0].BookingDate.After(got[2].BookingDate))
	})
}
