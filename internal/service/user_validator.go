package service

import (
	"context"

	"catalog/internal/errors"
	"catalog/internal/repository"
)

const emailTakenMessage = "Email already registered"

// UserValidator checks cross-record user invariants before service calls.
// The email check is read-then-decide; the unique index on users.email is
// the backstop against a concurrent duplicate registration.
type UserValidator struct {
	userRepo repository.UserRepository
}

// NewUserValidator creates a validator over the user repository.
func NewUserValidator(userRepo repository.UserRepository) *UserValidator {
	return &UserValidator{userRepo: userRepo}
}

// ValidateInsert rejects a candidate email already held by any existing user.
func (v *UserValidator) ValidateInsert(ctx context.Context, email string) error {
	existing, err := v.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == errors.ErrResourceNotFound {
			return nil
		}
		return err
	}
	if existing != nil {
		return errors.NewValidationError(errors.FieldMessage{
			FieldName: "email",
			Message:   emailTakenMessage,
		})
	}
	return nil
}

// ValidateUpdate rejects a candidate email held by a different user. The
// record whose id matches the path id is excluded, and only that one.
func (v *UserValidator) ValidateUpdate(ctx context.Context, id uint, email string) error {
	existing, err := v.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == errors.ErrResourceNotFound {
			return nil
		}
		return err
	}
	if existing != nil && existing.ID != id {
		return errors.NewValidationError(errors.FieldMessage{
			FieldName: "email",
			Message:   emailTakenMessage,
		})
	}
	return nil
}
