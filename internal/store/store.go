package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"dorm-management-backend/internal/model"
)

// Sentinel errors the lifecycle layer matches on. They alias GORM's so the
// rest of the codebase never has to import the ORM.
var (
	ErrNotFound  = gorm.ErrRecordNotFound
	ErrDuplicate = gorm.ErrDuplicatedKey
)

// Store defines the persistence collaborator the lifecycle services run
// against. Transaction hands the callback a Store scoped to one database
// transaction; every multi-entity operation goes through it.
type Store interface {
	Transaction(ctx context.Context, fn func(tx Store) error) error

	// Rooms
	CreateRoom(ctx context.Context, room *model.Room) error
	SaveRoom(ctx context.Context, room *model.Room) error
	GetRoom(ctx context.Context, id int64) (*model.Room, error)
	GetRoomForUpdate(ctx context.Context, id int64) (*model.Room, error)
	ListRooms(ctx context.Context, activeOnly bool) ([]model.Room, error)
	CountApprovedReservations(ctx context.Context, roomID int64) (int64, error)
	CountActiveOccupants(ctx context.Context, roomID int64) (int64, error)

	// Students
	GetStudent(ctx context.Context, id int64) (*model.Student, error)
	CreateStudent(ctx context.Context, student *model.Student) error
	SaveStudent(ctx context.Context, student *model.Student) error

	// Reservations
	CreateReservation(ctx context.Context, r *model.Reservation) error
	SaveReservation(ctx context.Context, r *model.Reservation) error
	DeleteReservation(ctx context.Context, id int64) error
	GetReservation(ctx context.Context, id int64) (*model.Reservation, error)
	FindLiveReservationByStudent(ctx context.Context, studentID int64) (*model.Reservation, error)
	ListReservations(ctx context.Context, f ReservationFilter) ([]model.Reservation, error)

	// Contracts
	CreateContract(ctx context.Context, c *model.Contract) error
	SaveContract(ctx context.Context, c *model.Contract) error
	GetContract(ctx context.Context, id int64) (*model.Contract, error)
	ListContractsByStudent(ctx context.Context, studentID int64) ([]model.Contract, error)
	ListActiveContractsCovering(ctx context.Context, day time.Time) ([]model.Contract, error)
	ListContractsExpiringBetween(ctx context.Context, from, to time.Time) ([]model.Contract, error)

	// Invoices
	CreateInvoice(ctx context.Context, inv *model.Invoice) error
	SaveInvoice(ctx context.Context, inv *model.Invoice) error
	GetInvoice(ctx context.Context, id int64) (*model.Invoice, error)
	GetStudentInvoice(ctx context.Context, invoiceID, studentID int64) (*model.Invoice, error)
	InvoiceExists(ctx context.Context, contractID int64, month, year int) (bool, error)
	ListInvoices(ctx context.Context, f InvoiceFilter) ([]model.Invoice, error)
	ListStudentInvoices(ctx context.Context, studentID int64) ([]model.Invoice, error)
}

// gormStore implements the Store interface using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// Transaction runs fn against a transaction-scoped store. Any error rolls
// the whole unit back.
func (s *gormStore) Transaction(ctx context.Context, fn func(tx Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&gormStore{db: tx})
	})
}

// --- Rooms ---

func (s *gormStore) CreateRoom(ctx context.Context, room *model.Room) error {
	return s.db.WithContext(ctx).Create(room).Error
}

func (s *gormStore) SaveRoom(ctx context.Context, room *model.Room) error {
	return s.db.WithContext(ctx).Save(room).Error
}

func (s *gormStore) GetRoom(ctx context.Context, id int64) (*model.Room, error) {
	var room model.Room
	if err := s.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

// GetRoomForUpdate fetches a room under a row lock so that concurrent
// approvals serialize on the capacity check. sqlite has no FOR UPDATE;
// its single-writer transactions give the same guarantee.
func (s *gormStore) GetRoomForUpdate(ctx context.Context, id int64) (*model.Room, error) {
	tx := s.db.WithContext(ctx)
	if s.db.Dialector.Name() != "sqlite" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var room model.Room
	if err := tx.First(&room, id).Error; err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *gormStore) ListRooms(ctx context.Context, activeOnly bool) ([]model.Room, error) {
	q := s.db.WithContext(ctx).Order("id ASC")
	if activeOnly {
		q = q.Where("active = ?", true)
	}
	var rooms []model.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (s *gormStore) CountApprovedReservations(ctx context.Context, roomID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Where("room_id = ? AND status = ?", roomID, model.ReservationApproved).
		Count(&count).Error
	return count, err
}

// CountActiveOccupants counts APPROVED reservations on a room whose
// contract is still ACTIVE. This is the invoice-splitting divisor.
func (s *gormStore) CountActiveOccupants(ctx context.Context, roomID int64) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Reservation{}).
		Joins("JOIN contracts ON contracts.reservation_id = reservations.id").
		Where("reservations.room_id = ? AND reservations.status = ? AND contracts.status = ?",
			roomID, model.ReservationApproved, model.ContractActive).
		Count(&count).Error
	return count, err
}

// --- Students ---

func (s *gormStore) GetStudent(ctx context.Context, id int64) (*model.Student, error) {
	var student model.Student
	if err := s.db.WithContext(ctx).First(&student, id).Error; err != nil {
		return nil, err
	}
	return &student, nil
}

func (s *gormStore) CreateStudent(ctx context.Context, student *model.Student) error {
	return s.db.WithContext(ctx).Create(student).Error
}

func (s *gormStore) SaveStudent(ctx context.Context, student *model.Student) error {
	return s.db.WithContext(ctx).Save(student).Error
}

// --- Reservations ---

func (s *gormStore) CreateReservation(ctx context.Context, r *model.Reservation) error {
	return s.db.WithContext(ctx).Create(r).Error
}

func (s *gormStore) SaveReservation(ctx context.Context, r *model.Reservation) error {
	return s.db.WithContext(ctx).Save(r).Error
}

func (s *gormStore) DeleteReservation(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&model.Reservation{}, id).Error
}

func (s *gormStore) GetReservation(ctx context.Context, id int64) (*model.Reservation, error) {
	var r model.Reservation
	if err := s.db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// FindLiveReservationByStudent returns the student's PENDING or APPROVED
// reservation, or (nil, nil) when the student has none.
func (s *gormStore) FindLiveReservationByStudent(ctx context.Context, studentID int64) (*model.Reservation, error) {
	var r model.Reservation
	err := s.db.WithContext(ctx).
		Where("student_id = ? AND status IN ?", studentID,
			[]model.ReservationStatus{model.ReservationPending, model.ReservationApproved}).
		First(&r).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *gormStore) ListReservations(ctx context.Context, f ReservationFilter) ([]model.Reservation, error) {
	q := s.db.WithContext(ctx).Model(&model.Reservation{}).Preload("Student")
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	if f.RoomID != nil {
		q = q.Where("room_id = ?", *f.RoomID)
	}
	if f.StudentID != nil {
		q = q.Where("student_id = ?", *f.StudentID)
	}

	column := "booking_date"
	if f.SortKey == SortByStartDate {
		column = "start_date"
	}
	direction := "ASC"
	if f.Order == OrderDesc {
		direction = "DESC"
	}
	q = q.Order(fmt.Sprintf("%s %s", column, direction)).Order("id ASC")

	var reservations []model.Reservation
	if err := q.Find(&reservations).Error; err != nil {
		return nil, err
	}
	return reservations, nil
}

// --- Contracts ---

func (s *gormStore) CreateContract(ctx context.Context, c *model.Contract) error {
	return s.db.WithContext(ctx).Create(c).Error
}

func (s *gormStore) SaveContract(ctx context.Context, c *model.Contract) error {
	return s.db.WithContext(ctx).Save(c).Error
}

func (s *gormStore) GetContract(ctx context.Context, id int64) (*model.Contract, error) {
	var c model.Contract
	if err := s.db.WithContext(ctx).Preload("Reservation").First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (s *gormStore) ListContractsByStudent(ctx context.Context, studentID int64) ([]model.Contract, error) {
	var contracts []model.Contract
	err := s.db.WithContext(ctx).
		Preload("Reservation").
		Joins("JOIN reservations ON reservations.id = contracts.reservation_id").
		Where("reservations.student_id = ?", studentID).
		Order("contracts.id ASC").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// ListActiveContractsCovering returns the ACTIVE contracts whose
// [start_date, end_date] range includes the given day, reservation
// preloaded, ordered by id for deterministic batch runs.
func (s *gormStore) ListActiveContractsCovering(ctx context.Context, day time.Time) ([]model.Contract, error) {
	var contracts []model.Contract
	err := s.db.WithContext(ctx).
		Preload("Reservation").
		Where("status = ? AND start_date <= ? AND end_date >= ?", model.ContractActive, day, day).
		Order("id ASC").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

func (s *gormStore) ListContractsExpiringBetween(ctx context.Context, from, to time.Time) ([]model.Contract, error) {
	var contracts []model.Contract
	err := s.db.WithContext(ctx).
		Preload("Reservation").
		Preload("Reservation.Student").
		Where("status = ? AND end_date >= ? AND end_date <= ?", model.ContractActive, from, to).
		Order("end_date ASC").
		Order("id ASC").
		Find(&contracts).Error
	if err != nil {
		return nil, err
	}
	return contracts, nil
}

// --- Invoices ---

func (s *gormStore) CreateInvoice(ctx context.Context, inv *model.Invoice) error {
	return s.db.WithContext(ctx).Create(inv).Error
}

func (s *gormStore) SaveInvoice(ctx context.Context, inv *model.Invoice) error {
	return s.db.WithContext(ctx).Save(inv).Error
}

func (s *gormStore) GetInvoice(ctx context.Context, id int64) (*model.Invoice, error) {
	var inv model.Invoice
	if err := s.db.WithContext(ctx).First(&inv, id).Error; err != nil {
		return nil, err
	}
	return &inv, nil
}

// GetStudentInvoice resolves an invoice through the contract->reservation
// chain so a student can only ever see their own invoices.
func (s *gormStore) GetStudentInvoice(ctx context.Context, invoiceID, studentID int64) (*model.Invoice, error) {
	var inv model.Invoice
	err := s.db.WithContext(ctx).
		Joins("JOIN contracts ON contracts.id = invoices.contract_id").
		Joins("JOIN reservations ON reservations.id = contracts.reservation_id").
		Where("invoices.id = ? AND reservations.student_id = ?", invoiceID, studentID).
		First(&inv).Error
	if err != nil {
		return nil, err
	}
	return &inv, nil
}

func (s *gormStore) InvoiceExists(ctx context.Context, contractID int64, month, year int) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.Invoice{}).
		Where("contract_id = ? AND month = ? AND year = ?", contractID, month, year).
		Count(&count).Error
	return count > 0, err
}

func (s *gormStore) ListInvoices(ctx context.Context, f InvoiceFilter) ([]model.Invoice, error) {
	q := s.db.WithContext(ctx).Model(&model.Invoice{}).Order("id ASC")
	if f.Month != nil {
		q = q.Where("month = ?", *f.Month)
	}
	if f.Year != nil {
		q = q.Where("year = ?", *f.Year)
	}
	if f.Status != nil {
		q = q.Where("status = ?", *f.Status)
	}
	var invoices []model.Invoice
	if err := q.Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (s *gormStore) ListStudentInvoices(ctx context.Context, studentID int64) ([]model.Invoice, error) {
	var invoices []model.Invoice
	err := s.db.WithContext(ctx).
		Joins("JOIN contracts ON contracts.id = invoices.contract_id").
		Joins("JOIN reservations ON reservations.id = contracts.reservation_id").
		Where("reservations.student_id = ?", studentID).
		Order("invoices.id ASC").
		Find(&invoices).Error
	if err != nil {
		return nil, err
	}
	return invoices, nil
}
