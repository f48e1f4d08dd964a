package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openbracket/tourneyops/internal/model"
	"github.com/openbracket/tourneyops/internal/store"
)

// DivisionService orchestrates division CRUD. Capacity rules live in the
// assignment engine; this service only guards structural validity.
type DivisionService struct {
	store *store.Store
}

// NewDivisionService constructs a DivisionService.
func NewDivisionService(st *store.Store) *DivisionService {
	return &DivisionService{store: st}
}

// Create adds a division to an existing event. A nil capacity means the
// division is unbounded.
func (s *DivisionService) Create(ctx context.Context, eventID string, req model.CreateDivisionRequest) (*model.Division, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: division name is required", ErrValidation)
	}
	if req.Capacity != nil && *req.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity must not be negative", ErrValidation)
	}
	if _, err := s.store.Events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return s.store.Divisions.Create(ctx, eventID, req.Name, req.Capacity)
}

// ListByEvent returns the event's divisions in creation order.
func (s *DivisionService) ListByEvent(ctx context.Context, eventID string) ([]model.Division, error) {
	if _, err := s.store.Events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return s.store.Divisions.ListByEvent(ctx, eventID)
}

// Delete removes a division. The division must belong to the event; a
// mismatch is treated as not found.
func (s *DivisionService) Delete(ctx context.Context, eventID, divisionID string) error {
	div, err := s.store.Divisions.GetByID(ctx, divisionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound
		}
		return fmt.Errorf("get division: %w", err)
	}
	if div.EventID != eventID {
		return store.ErrNotFound
	}
	return s.store.Divisions.Delete(ctx, divisionID)
}
