package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/openbracket/tourneyops/internal/model"
	"github.com/openbracket/tourneyops/internal/store"
)

// EventService orchestrates event CRUD.
type EventService struct {
	store *store.Store
}

// NewEventService constructs an EventService.
func NewEventService(st *store.Store) *EventService {
	return &EventService{store: st}
}

// Create validates the request and delegates to the store.
func (s *EventService) Create(ctx context.Context, req model.CreateEventRequest) (*model.Event, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: event name is required", ErrValidation)
	}
	return s.store.Events.Create(ctx, req.Name, strings.TrimSpace(req.Description))
}

// List returns all events, newest first.
func (s *EventService) List(ctx context.Context) ([]model.Event, error) {
	return s.store.Events.List(ctx)
}

// Get returns a single event by ID.
func (s *EventService) Get(ctx context.Context, id string) (*model.Event, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrValidation)
	}
	ev, err := s.store.Events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return ev, nil
}
