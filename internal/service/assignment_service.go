package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/openbracket/tourneyops/internal/model"
	"github.com/openbracket/tourneyops/internal/store"
)

// AssignmentService is the division capacity and waitlist engine. It decides
// whether a new assignment is assigned or waitlisted, auto-selects the next
// registrant in signup order when the caller names none, and scopes every
// mutation to the (event, division) pair in the request path.
//
// Capacity is best-effort under concurrency: the occupancy count and the
// insert are separate store calls, so two concurrent Assign calls on the
// same division can both observe a free slot. The odd overbooked slot is
// resolved by an organizer, not by the engine.
type AssignmentService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewAssignmentService constructs an AssignmentService.
func NewAssignmentService(st *store.Store, logger *zap.Logger) *AssignmentService {
	return &AssignmentService{store: st, logger: logger}
}

// List returns every assignment in the division, most recent first, each
// enriched with the user's display identity.
func (s *AssignmentService) List(ctx context.Context, eventID, divisionID string) ([]model.EnrichedAssignment, error) {
	if _, err := s.division(ctx, eventID, divisionID); err != nil {
		return nil, err
	}

	assignments, err := s.store.Assignments.ListByDivision(ctx, eventID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	enriched := make([]model.EnrichedAssignment, len(assignments))
	for i, a := range assignments {
		enriched[i] = s.enrich(ctx, a)
	}
	return enriched, nil
}

// Assign places one registrant into the division. When userID is empty, the
// earliest-registered user without an assignment in this division is
// selected (FIFO fairness). The status is decided by the occupancy snapshot
// taken at the start of the call and is final: assigned while the division
// has room, waitlisted once it is full.
func (s *AssignmentService) Assign(ctx context.Context, eventID, divisionID, userID string) (*model.EnrichedAssignment, error) {
	div, err := s.division(ctx, eventID, divisionID)
	if err != nil {
		return nil, err
	}

	assignedCount, err := s.store.Assignments.CountAssigned(ctx, eventID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("count assigned: %w", err)
	}
	status := model.StatusAssigned
	if div.Bounded() && assignedCount >= *div.Capacity {
		status = model.StatusWaitlisted
	}

	if userID == "" {
		userID, err = s.nextCandidate(ctx, eventID, divisionID)
		if err != nil {
			return nil, err
		}
	} else {
		taken, err := s.assignedUserSet(ctx, eventID, divisionID)
		if err != nil {
			return nil, err
		}
		if taken[userID] {
			return nil, store.ErrDuplicate
		}
	}

	a, err := s.store.Assignments.Create(ctx, eventID, divisionID, userID, status)
	if err != nil {
		return nil, fmt.Errorf("create assignment: %w", err)
	}

	s.logger.Info("assignment created",
		zap.String("event_id", eventID),
		zap.String("division_id", divisionID),
		zap.String("user_id", userID),
		zap.String("status", string(a.Status)),
	)

	enriched := s.enrich(ctx, *a)
	return &enriched, nil
}

// Unassign removes one assignment. The assignment must belong to the given
// event and division; a mismatch is indistinguishable from non-existence, so
// an id cannot be deleted through another division's path. No waitlisted row
// is promoted into the freed slot; promotion is an explicit operation.
func (s *AssignmentService) Unassign(ctx context.Context, eventID, divisionID, assignmentID string) error {
	a, err := s.store.Assignments.GetByID(ctx, assignmentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return store.ErrNotFound
		}
		return fmt.Errorf("get assignment: %w", err)
	}
	if a.EventID != eventID || a.DivisionID != divisionID {
		return store.ErrNotFound
	}

	if err := s.store.Assignments.Delete(ctx, assignmentID); err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}

	s.logger.Info("assignment removed",
		zap.String("event_id", eventID),
		zap.String("division_id", divisionID),
		zap.String("assignment_id", assignmentID),
	)
	return nil
}

// PromoteNext moves the oldest waitlisted registrant into an open slot. The
// capacity check is re-applied first; promoting into a full division fails.
// The status change is delete + recreate, so the promoted row gets a new id.
func (s *AssignmentService) PromoteNext(ctx context.Context, eventID, divisionID string) (*model.EnrichedAssignment, error) {
	div, err := s.division(ctx, eventID, divisionID)
	if err != nil {
		return nil, err
	}

	assignedCount, err := s.store.Assignments.CountAssigned(ctx, eventID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("count assigned: %w", err)
	}
	if div.Bounded() && assignedCount >= *div.Capacity {
		return nil, fmt.Errorf("%w: division is at capacity", ErrValidation)
	}

	assignments, err := s.store.Assignments.ListByDivision(ctx, eventID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}

	// The list is most-recent-first, so the last waitlisted row is the
	// oldest one.
	var oldest *model.Assignment
	for i := len(assignments) - 1; i >= 0; i-- {
		if assignments[i].Status == model.StatusWaitlisted {
			oldest = &assignments[i]
			break
		}
	}
	if oldest == nil {
		return nil, fmt.Errorf("%w: no waitlisted assignment", store.ErrNotFound)
	}

	if err := s.store.Assignments.Delete(ctx, oldest.ID); err != nil {
		return nil, fmt.Errorf("delete waitlisted assignment: %w", err)
	}
	promoted, err := s.store.Assignments.Create(ctx, eventID, divisionID, oldest.UserID, model.StatusAssigned)
	if err != nil {
		return nil, fmt.Errorf("recreate assignment: %w", err)
	}

	s.logger.Info("assignment promoted",
		zap.String("event_id", eventID),
		zap.String("division_id", divisionID),
		zap.String("user_id", promoted.UserID),
	)

	enriched := s.enrich(ctx, *promoted)
	return &enriched, nil
}

// division loads the division and verifies it belongs to the event. A
// division reached through the wrong event is treated as not found.
func (s *AssignmentService) division(ctx context.Context, eventID, divisionID string) (*model.Division, error) {
	div, err := s.store.Divisions.GetByID(ctx, divisionID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get division: %w", err)
	}
	if div.EventID != eventID {
		return nil, store.ErrNotFound
	}
	return div, nil
}

// nextCandidate picks the earliest-registered user without an assignment in
// this division. The registration list and the current assignment set are
// independent reads and are fetched concurrently.
func (s *AssignmentService) nextCandidate(ctx context.Context, eventID, divisionID string) (string, error) {
	var (
		regs  []model.Registration
		taken map[string]bool
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		regs, err = s.store.Registrations.ListByEvent(gctx, eventID)
		if err != nil {
			return fmt.Errorf("list registrations: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		taken, err = s.assignedUserSet(gctx, eventID, divisionID)
		return err
	})
	if err := g.Wait(); err != nil {
		return "", err
	}

	for _, reg := range regs {
		if !taken[reg.UserID] {
			return reg.UserID, nil
		}
	}
	return "", fmt.Errorf("%w: no available registrations", ErrValidation)
}

// assignedUserSet returns the user ids already present in the division,
// regardless of status.
func (s *AssignmentService) assignedUserSet(ctx context.Context, eventID, divisionID string) (map[string]bool, error) {
	assignments, err := s.store.Assignments.ListByDivision(ctx, eventID, divisionID)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	taken := make(map[string]bool, len(assignments))
	for _, a := range assignments {
		taken[a.UserID] = true
	}
	return taken, nil
}

// enrich joins the assignment with the user's display identity. A failed
// lookup yields a nil user instead of failing the caller's operation.
func (s *AssignmentService) enrich(ctx context.Context, a model.Assignment) model.EnrichedAssignment {
	user, err := s.store.Users.GetByID(ctx, a.UserID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			s.logger.Warn("user lookup failed",
				zap.String("user_id", a.UserID),
				zap.Error(err),
			)
		}
		user = nil
	}
	return model.EnrichedAssignment{Assignment: a, User: user}
}
