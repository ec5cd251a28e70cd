package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dorm-management-backend/internal/model"
	"dorm-management-backend/internal/store"
)

// ReservationService creates and cancels student reservations. The
// one-live-reservation-per-student and capacity invariants are enforced
// here, inside a single transaction per operation.
type ReservationService struct {
	store store.Store
	now   func() time.Time
}

// NewReservationService creates a reservation manager over the given store.
func NewReservationService(s store.Store) *ReservationService {
	return &ReservationService{store: s, now: time.Now}
}

// WithNow overrides the service clock. Tests use it to pin "today".
func (s *ReservationService) WithNow(now func() time.Time) *ReservationService {
	s.now = now
	return s
}

// Create inserts a PENDING reservation for the student. The room must
// exist, be active and have free capacity, and the student must not
// already hold a PENDING or APPROVED reservation. Occupancy is not
// touched: it is derived from reservation status alone.
func (s *ReservationService) Create(ctx context.Context, studentID, roomID int64, bookingDate time.Time) (*model.Reservation, error) {
	if bookingDate.IsZero() {
		bookingDate = s.now()
	}

	var created *model.Reservation
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		if _, err := tx.GetStudent(ctx, studentID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: student %d", ErrNotFound, studentID)
			}
			return err
		}

		room, err := tx.GetRoom(ctx, roomID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrRoomNotFound
		}
		if err != nil {
			return err
		}
		if !room.Active {
			return ErrRoomNotFound
		}

		approved, err := tx.CountApprovedReservations(ctx, roomID)
		if err != nil {
			return err
		}
		if approved >= int64(room.Capacity) {
			return ErrRoomFull
		}

		existing, err := tx.FindLiveReservationByStudent(ctx, studentID)
		if err != nil {
			return err
		}
		if existing != nil {
			return ErrDuplicateReservation
		}

		r := &model.Reservation{
			StudentID:   studentID,
			RoomID:      roomID,
			BookingDate: bookingDate,
			Status:      model.ReservationPending,
		}
		if err := tx.CreateReservation(ctx, r); err != nil {
			return fmt.Errorf("create reservation: %w", err)
		}
		created = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Cancel deletes the student's own PENDING reservation. Approved and
// rejected reservations are immutable history and cannot be canceled.
func (s *ReservationService) Cancel(ctx context.Context, reservationID, studentID int64) error {
	return s.store.Transaction(ctx, func(tx store.Store) error {
		r, err := tx.GetReservation(ctx, reservationID)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: reservation %d", ErrNotFound, reservationID)
		}
		if err != nil {
			return err
		}
		if r.StudentID != studentID {
			// Not owned by the caller reads the same as absent.
			return fmt.Errorf("%w: reservation %d", ErrNotFound, reservationID)
		}
		if r.Status != model.ReservationPending {
			return fmt.Errorf("%w: reservation is %s", ErrInvalidState, r.Status)
		}
		return tx.DeleteReservation(ctx, reservationID)
	})
}

// List is a read-only projection over reservations, booking order by
// default, ties broken by id.
func (s *ReservationService) List(ctx context.Context, f store.ReservationFilter) ([]model.Reservation, error) {
	if f.Status != nil && !f.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown reservation status %q", ErrInvalidArgument, *f.Status)
	}
	return s.store.ListReservations(ctx, f)
}
