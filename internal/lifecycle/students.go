package lifecycle

import (
	"context"
	"errors"
	"fmt"

	"dorm-management-backend/internal/model"
	"dorm-management-backend/internal/store"
)

// StudentService exposes the resident profile reads and updates. Identity
// is established upstream; this only works with the id it is given.
type StudentService struct {
	store store.Store
}

// NewStudentService creates a student profile service.
func NewStudentService(s store.Store) *StudentService {
	return &StudentService{store: s}
}

// Get returns a student profile.
func (s *StudentService) Get(ctx context.Context, studentID int64) (*model.Student, error) {
	student, err := s.store.GetStudent(ctx, studentID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, fmt.Errorf("%w: student %d", ErrNotFound, studentID)
	}
	return student, err
}

// ProfileUpdate carries the mutable profile fields; nil fields stay
// untouched.
type ProfileUpdate struct {
	FullName *string
	Phone    *string
	Email    *string
}

// UpdateProfile mutates the student's own profile.
func (s *StudentService) UpdateProfile(ctx context.Context, studentID int64, upd ProfileUpdate) (*model.Student, error) {
	var updated *model.Student
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		student, err := tx.GetStudent(ctx, studentID)
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("%w: student %d", ErrNotFound, studentID)
		}
		if err != nil {
			return err
		}

		if upd.FullName != nil {
			student.FullName = *upd.FullName
		}
		if upd.Phone != nil {
			student.Phone = *upd.Phone
		}
		if upd.Email != nil {
			if *upd.Email == "" {
				return fmt.Errorf("%w: email must not be empty", ErrInvalidArgument)
			}
			student.Email = *upd.Email
		}

		if err := tx.SaveStudent(ctx, student); err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				return fmt.Errorf("%w: email or phone already in use", ErrInvalidArgument)
			}
			return err
		}
		updated = student
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
