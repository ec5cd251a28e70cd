package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dorm-management-backend/internal/model"
	"dorm-management-backend/internal/store"
)

// contractTermMonths is the length of a freshly created contract.
const contractTermMonths = 12

// ContractService drives the terminal PENDING -> APPROVED/REJECTED
// transition and manages the contracts approval creates.
type ContractService struct {
	store           store.Store
	maxExpiringDays int
	now             func() time.Time
}

// NewContractService creates an approval/contract engine. maxExpiringDays
// bounds the ExpiringWithin query (policy, usually 365).
func NewContractService(s store.Store, maxExpiringDays int) *ContractService {
	return &ContractService{store: s, maxExpiringDays: maxExpiringDays, now: time.Now}
}

// WithNow overrides the service clock. Tests use it to pin "today".
func (s *ContractService) WithNow(now func() time.Time) *ContractService {
	s.now = now
	return s
}

// Approve transitions a PENDING reservation to APPROVED and creates its
// contract. Capacity is re-validated at decision time under a row lock on
// the room: approvals since the booking may have filled it. The contract
// runs from the first day of next month for twelve calendar months.
func (s *ContractService) Approve(ctx context.Context, reservationID int64) (*model.Contract, error) {
	var contract *model.Contract
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		r, err := tx.GetReservation(ctx, reservationID)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: reservation %d", ErrNotFound, reservationID)
		}
		if err != nil {
			return err
		}
		if r.Status != model.ReservationPending {
			return fmt.Errorf("%w: reservation already %s", ErrInvalidState, r.Status)
		}

		room, err := tx.GetRoomForUpdate(ctx, r.RoomID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrRoomNotFound
		}
		if err != nil {
			return err
		}

		approved, err := tx.CountApprovedReservations(ctx, r.RoomID)
		if err != nil {
			return err
		}
		if approved >= int64(room.Capacity) {
			return ErrRoomFull
		}

		startDate := FirstOfNextMonth(s.now())
		endDate := AddMonths(startDate, contractTermMonths)

		r.Status = model.ReservationApproved
		r.StartDate = &startDate
		if err := tx.SaveReservation(ctx, r); err != nil {
			return err
		}

		c := &model.Contract{
			ReservationID: r.ID,
			StartDate:     startDate,
			EndDate:       endDate,
			Status:        model.ContractActive,
		}
		if err := tx.CreateContract(ctx, c); err != nil {
			return fmt.Errorf("create contract: %w", err)
		}
		contract = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return contract, nil
}

// Reject transitions a PENDING reservation to REJECTED. No contract is
// created and any move-in date is cleared.
func (s *ContractService) Reject(ctx context.Context, reservationID int64) (*model.Reservation, error) {
	var rejected *model.Reservation
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		r, err := tx.GetReservation(ctx, reservationID)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: reservation %d", ErrNotFound, reservationID)
		}
		if err != nil {
			return err
		}
		if r.Status != model.ReservationPending {
			return fmt.Errorf("%w: reservation already %s", ErrInvalidState, r.Status)
		}

		r.Status = model.ReservationRejected
		r.StartDate = nil
		if err := tx.SaveReservation(ctx, r); err != nil {
			return err
		}
		rejected = r
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rejected, nil
}

// Extend moves an ACTIVE contract's end date to a strictly later day and
// returns the old and new end dates for the audit trail.
func (s *ContractService) Extend(ctx context.Context, contractID int64, newEnd time.Time) (oldEnd, appliedEnd time.Time, err error) {
	newEnd = DateOnly(newEnd)
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		c, err := tx.GetContract(ctx, contractID)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: contract %d", ErrNotFound, contractID)
		}
		if err != nil {
			return err
		}
		if c.Status != model.ContractActive {
			return fmt.Errorf("%w: only active contracts can be extended", ErrInvalidState)
		}
		if !newEnd.After(DateOnly(c.EndDate)) {
			return ErrInvalidRange
		}

		oldEnd = c.EndDate
		c.EndDate = newEnd
		if err := tx.SaveContract(ctx, c); err != nil {
			return err
		}
		appliedEnd = c.EndDate
		return nil
	})
	return oldEnd, appliedEnd, err
}

// ExpiringWithin lists ACTIVE contracts ending within [today, today+days]
// inclusive. days must be within the policy bound.
func (s *ContractService) ExpiringWithin(ctx context.Context, days int) ([]model.Contract, error) {
	if days < 1 || days > s.maxExpiringDays {
		return nil, fmt.Errorf("%w: days must be between 1 and %d", ErrInvalidArgument, s.maxExpiringDays)
	}
	today := DateOnly(s.now())
	deadline := today.AddDate(0, 0, days)
	return s.store.ListContractsExpiringBetween(ctx, today, deadline)
}

// Get returns a contract with its reservation preloaded.
func (s *ContractService) Get(ctx context.Context, contractID int64) (*model.Contract, error) {
	c, err := s.store.GetContract(ctx, contractID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: contract %d", ErrNotFound, contractID)
	}
	return c, err
}

// ListByStudent returns all contracts reached through the student's
// reservations.
func (s *ContractService) ListByStudent(ctx context.Context, studentID int64) ([]model.Contract, error) {
	return s.store.ListContractsByStudent(ctx, studentID)
}
