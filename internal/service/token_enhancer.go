package service

import (
	"context"
	"errors"
	"fmt"

	apperrors "catalog/internal/errors"
	"catalog/internal/repository"
)

// ErrUnknownSubject fails the token-issuance flow when the authenticated
// subject has no matching user.
var ErrUnknownSubject = errors.New("unknown credential subject")

// TokenEnhancer attaches denormalized user display fields to an access token
// payload before it is signed. Runs synchronously, once per issuance.
type TokenEnhancer struct {
	userRepo repository.UserRepository
}

// NewTokenEnhancer creates an enhancer over the user repository.
func NewTokenEnhancer(userRepo repository.UserRepository) *TokenEnhancer {
	return &TokenEnhancer{userRepo: userRepo}
}

// Enhance looks up the subject's user record and returns the additional
// claims to embed in the token.
func (e *TokenEnhancer) Enhance(ctx context.Context, email string) (map[string]interface{}, error) {
	user, err := e.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == apperrors.ErrResourceNotFound {
			return nil, fmt.Errorf("%w: %s", ErrUnknownSubject, email)
		}
		return nil, err
	}

	return map[string]interface{}{
		"userId":        user.ID,
		"userFirstName": user.FirstName,
		"userLastName":  user.LastName,
	}, nil
}
