package lifecycle

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"dorm-management-backend/internal/model"
	"dorm-management-backend/internal/store"
)

// InvoiceService generates the monthly invoices and tracks payment.
type InvoiceService struct {
	store store.Store
	now   func() time.Time
}

// NewInvoiceService creates an invoice generator over the given store.
func NewInvoiceService(s store.Store) *InvoiceService {
	return &InvoiceService{store: s, now: time.Now}
}

// WithNow overrides the service clock. Tests use it to pin "today".
func (s *InvoiceService) WithNow(now func() time.Time) *InvoiceService {
	s.now = now
	return s
}

// Generate emits one UNPAID invoice per ACTIVE contract covering today
// that has no invoice yet for (month, year). The amount is the room price
// split evenly across the room's current active occupants; the divisor is
// recomputed every run since occupancy shifts between months. Rooms with
// zero occupants are skipped. The whole batch is one transaction, and the
// unique index on (contract, month, year) makes re-runs and concurrent
// runs converge on the same invoice set.
func (s *InvoiceService) Generate(ctx context.Context, month, year int) ([]model.Invoice, error) {
	if month < 1 || month > 12 {
		return nil, fmt.Errorf("%w: month %d out of range", ErrInvalidArgument, month)
	}
	if year < 1970 {
		return nil, fmt.Errorf("%w: year %d out of range", ErrInvalidArgument, year)
	}

	today := DateOnly(s.now())
	var created []model.Invoice

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		contracts, err := tx.ListActiveContractsCovering(ctx, today)
		if err != nil {
			return err
		}

		rooms := make(map[int64]*model.Room)
		for _, c := range contracts {
			exists, err := tx.InvoiceExists(ctx, c.ID, month, year)
			if err != nil {
				return err
			}
			if exists {
				continue
			}

			roomID := c.Reservation.RoomID
			occupants, err := tx.CountActiveOccupants(ctx, roomID)
			if err != nil {
				return err
			}
			if occupants == 0 {
				// Vacated or orphaned room: nothing to bill, never a
				// division by zero.
				continue
			}

			room, ok := rooms[roomID]
			if !ok {
				room, err = tx.GetRoom(ctx, roomID)
				if err != nil {
					return err
				}
				rooms[roomID] = room
			}

			inv := model.Invoice{
				ContractID: c.ID,
				Amount:     room.Price.Div(decimal.NewFromInt(occupants)).Round(2),
				Month:      month,
				Year:       year,
				Status:     model.InvoiceUnpaid,
			}
			// Savepoint per insert: a concurrent run may have billed this
			// contract between our pre-check and the insert, and the
			// unique-index violation must not poison the batch.
			err = tx.Transaction(ctx, func(itx store.Store) error {
				return itx.CreateInvoice(ctx, &inv)
			})
			if errors.Is(err, store.ErrDuplicate) {
				continue
			}
			if err != nil {
				return fmt.Errorf("create invoice for contract %d: %w", c.ID, err)
			}
			created = append(created, inv)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Pay marks the student's own UNPAID invoice as PAID, once. Invoices not
// reachable through the student's reservation chain read as absent.
func (s *InvoiceService) Pay(ctx context.Context, invoiceID, studentID int64) (*model.Invoice, error) {
	var paid *model.Invoice
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		inv, err := tx.GetStudentInvoice(ctx, invoiceID, studentID)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: invoice %d", ErrNotFound, invoiceID)
		}
		if err != nil {
			return err
		}
		if inv.Status == model.InvoicePaid {
			return ErrAlreadyPaid
		}

		now := s.now()
		inv.Status = model.InvoicePaid
		inv.PaidAt = &now
		if err := tx.SaveInvoice(ctx, inv); err != nil {
			return err
		}
		paid = inv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return paid, nil
}

// Stats aggregates the filtered invoice set. Paid and unpaid always sum
// to the total.
type Stats struct {
	TotalInvoices int             `json:"total_invoices"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	UnpaidAmount  decimal.Decimal `json:"unpaid_amount"`
}

// Stats computes revenue totals over invoices matching the optional month
// and year filters.
func (s *InvoiceService) Stats(ctx context.Context, month, year *int) (*Stats, error) {
	if month != nil && (*month < 1 || *month > 12) {
		return nil, fmt.Errorf("%w: month %d out of range", ErrInvalidArgument, *month)
	}

	invoices, err := s.store.ListInvoices(ctx, store.InvoiceFilter{Month: month, Year: year})
	if err != nil {
		return nil, err
	}

	stats := &Stats{TotalInvoices: len(invoices)}
	for _, inv := range invoices {
		stats.TotalAmount = stats.TotalAmount.Add(inv.Amount)
		if inv.Status == model.InvoicePaid {
			stats.PaidAmount = stats.PaidAmount.Add(inv.Amount)
		} else {
			stats.UnpaidAmount = stats.UnpaidAmount.Add(inv.Amount)
		}
	}
	return stats, nil
}

// List returns invoices matching the filter (admin view).
func (s *InvoiceService) List(ctx context.Context, f store.InvoiceFilter) ([]model.Invoice, error) {
	if f.Month != nil && (*f.Month < 1 || *f.Month > 12) {
		return nil, fmt.Errorf("%w: month %d out of range", ErrInvalidArgument, *f.Month)
	}
	return s.store.ListInvoices(ctx, f)
}

// ListByStudent returns the invoices reachable through the student's own
// reservation chain.
func (s *InvoiceService) ListByStudent(ctx context.Context, studentID int64) ([]model.Invoice, error) {
	return s.store.ListStudentInvoices(ctx, studentID)
}
