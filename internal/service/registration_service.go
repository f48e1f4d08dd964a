package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/openbracket/tourneyops/internal/model"
	"github.com/openbracket/tourneyops/internal/store"
)

// RegistrationService appends to and reads the signup ledger.
type RegistrationService struct {
	store *store.Store
}

// NewRegistrationService constructs a RegistrationService.
func NewRegistrationService(st *store.Store) *RegistrationService {
	return &RegistrationService{store: st}
}

// Register records a user's signup for an event. Each user registers at
// most once per event; the second attempt surfaces store.ErrDuplicate.
func (s *RegistrationService) Register(ctx context.Context, eventID string, req model.RegisterRequest) (*model.Registration, error) {
	if req.UserID == "" {
		return nil, fmt.Errorf("%w: user_id is required", ErrValidation)
	}
	if _, err := s.store.Events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if _, err := s.store.Users.GetByID(ctx, req.UserID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fmt.Errorf("%w: user does not exist", ErrValidation)
		}
		return nil, fmt.Errorf("get user: %w", err)
	}

	reg, err := s.store.Registrations.Create(ctx, eventID, req.UserID)
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, store.ErrDuplicate
		}
		return nil, fmt.Errorf("create registration: %w", err)
	}
	return reg, nil
}

// ListByEvent returns the event's registrations in signup order.
func (s *RegistrationService) ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	if _, err := s.store.Events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return s.store.Registrations.ListByEvent(ctx, eventID)
}
