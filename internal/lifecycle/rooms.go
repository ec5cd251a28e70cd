package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"dorm-management-backend/internal/model"
	"dorm-management-backend/internal/store"
)

// RoomAvailability pairs a room with its derived occupancy.
type RoomAvailability struct {
	Room     model.Room `json:"room"`
	Occupied int64      `json:"occupied"`
}

// RoomService is the room registry: inventory CRUD plus the derived
// availability reads the reservation manager depends on.
type RoomService struct {
	store store.Store
}

// NewRoomService creates a room registry over the given store.
func NewRoomService(s store.Store) *RoomService {
	return &RoomService{store: s}
}

// GetAvailable returns an active room together with its current approved
// occupancy. Unknown or deactivated rooms report ErrRoomNotFound.
func (s *RoomService) GetAvailable(ctx context.Context, roomID int64) (*RoomAvailability, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch room %d: %w", roomID, err)
	}
	if !room.Active {
		return nil, ErrRoomNotFound
	}

	occupied, err := s.store.CountApprovedReservations(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("count occupancy for room %d: %w", roomID, err)
	}
	return &RoomAvailability{Room: *room, Occupied: occupied}, nil
}

// HasCapacity reports whether the room can take one more approved
// reservation. Pure read, no side effects.
func (s *RoomService) HasCapacity(ctx context.Context, roomID int64) (bool, error) {
	avail, err := s.GetAvailable(ctx, roomID)
	if err != nil {
		return false, err
	}
	return avail.Occupied < int64(avail.Room.Capacity), nil
}

// List returns rooms ordered by id, optionally only active ones.
func (s *RoomService) List(ctx context.Context, activeOnly bool) ([]model.Room, error) {
	return s.store.ListRooms(ctx, activeOnly)
}

// Get returns a room regardless of its active flag (admin view).
func (s *RoomService) Get(ctx context.Context, roomID int64) (*model.Room, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	return room, err
}

// Create registers a new active room.
func (s *RoomService) Create(ctx context.Context, code string, capacity int, price decimal.Decimal) (*model.Room, error) {
	if code == "" || capacity <= 0 || price.IsNegative() {
		return nil, fmt.Errorf("%w: room needs a code, positive capacity and non-negative price", ErrInvalidArgument)
	}
	room := &model.Room{Code: code, Capacity: capacity, Price: price, Active: true}
	if err := s.store.CreateRoom(ctx, room); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, fmt.Errorf("%w: room code %q already exists", ErrInvalidArgument, code)
		}
		return nil, fmt.Errorf("create room: %w", err)
	}
	return room, nil
}

// RoomUpdate carries the mutable room fields; nil fields stay untouched.
type RoomUpdate struct {
	Code     *string
	Capacity *int
	Price    *decimal.Decimal
}

// Update mutates a room. Capacity can never drop below the room's current
// approved occupancy: the derived count is the source of truth.
func (s *RoomService) Update(ctx context.Context, roomID int64, upd RoomUpdate) (*model.Room, error) {
	var updated *model.Room
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		room, err := tx.GetRoom(ctx, roomID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrRoomNotFound
		}
		if err != nil {
			return err
		}

		if upd.Code != nil {
			room.Code = *upd.Code
		}
		if upd.Capacity != nil {
			if *upd.Capacity <= 0 {
				return fmt.Errorf("%w: capacity must be positive", ErrInvalidArgument)
			}
			occupied, err := tx.CountApprovedReservations(ctx, roomID)
			if err != nil {
				return err
			}
			if int64(*upd.Capacity) < occupied {
				return fmt.Errorf("%w: capacity %d below current occupancy %d", ErrInvalidArgument, *upd.Capacity, occupied)
			}
			room.Capacity = *upd.Capacity
		}
		if upd.Price != nil {
			if upd.Price.IsNegative() {
				return fmt.Errorf("%w: price must not be negative", ErrInvalidArgument)
			}
			room.Price = *upd.Price
		}

		if err := tx.SaveRoom(ctx, room); err != nil {
			return err
		}
		updated = room
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// SetActive flips the room's active flag. Deactivated rooms disappear from
// availability reads but keep their history.
func (s *RoomService) SetActive(ctx context.Context, roomID int64, active bool) (*model.Room, error) {
	room, err := s.store.GetRoom(ctx, roomID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrRoomNotFound
	}
	if err != nil {
		return nil, err
	}
	room.Active = active
	if err := s.store.SaveRoom(ctx, room); err != nil {
		return nil, err
	}
	return room, nil
}
