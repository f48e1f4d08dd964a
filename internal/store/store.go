// Package store defines the persistence interfaces the portal runs on and
// provides two implementations: PostgreSQL (pgx, no ORM) and an in-memory
// fallback. The backend is selected once at process start; callers only see
// the interfaces.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/openbracket/tourneyops/internal/model"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when a write would violate a uniqueness rule,
// such as registering the same user twice for one event.
var ErrDuplicate = errors.New("duplicate record")

// EventStore handles persistence for events.
type EventStore interface {
	Create(ctx context.Context, name, description string) (*model.Event, error)
	List(ctx context.Context) ([]model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
}

// DivisionStore handles persistence for divisions. Capacity is re-read on
// every engine call; implementations must not serve stale values.
type DivisionStore interface {
	Create(ctx context.Context, eventID, name string, capacity *int) (*model.Division, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.Division, error)
	GetByID(ctx context.Context, id string) (*model.Division, error)
	Delete(ctx context.Context, id string) error
}

// RegistrationLedger is the append-only signup record. ListByEvent returns
// registrations in signup order (created_at ascending), which is the
// ordering key for automatic assignment.
type RegistrationLedger interface {
	Create(ctx context.Context, eventID, userID string) (*model.Registration, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error)
	Delete(ctx context.Context, id string) error
}

// AssignmentStore handles persistence for division assignments.
// ListByDivision returns rows most-recent-first.
type AssignmentStore interface {
	ListByDivision(ctx context.Context, eventID, divisionID string) ([]model.Assignment, error)
	CountAssigned(ctx context.Context, eventID, divisionID string) (int, error)
	Create(ctx context.Context, eventID, divisionID, userID string, status model.AssignmentStatus) (*model.Assignment, error)
	GetByID(ctx context.Context, id string) (*model.Assignment, error)
	Delete(ctx context.Context, id string) error
}

// UserDirectory resolves user ids to display identities.
type UserDirectory interface {
	Create(ctx context.Context, name, email string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
}

// BagDesignStore handles persistence for sponsor bag designs.
type BagDesignStore interface {
	Create(ctx context.Context, eventID, name, imageURL string) (*model.BagDesign, error)
	ListByEvent(ctx context.Context, eventID string) ([]model.BagDesign, error)
	GetByID(ctx context.Context, id string) (*model.BagDesign, error)
	SetApproved(ctx context.Context, id string, at time.Time) error
}

// Store aggregates all persistence interfaces behind one handle.
type Store struct {
	Events        EventStore
	Divisions     DivisionStore
	Registrations RegistrationLedger
	Assignments   AssignmentStore
	Users         UserDirectory
	BagDesigns    BagDesignStore
}
