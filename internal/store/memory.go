package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/openbracket/tourneyops/internal/model"
)

// NewMemory returns a Store backed by process memory. It implements the
// same contracts as the PostgreSQL store, including uniqueness rules and
// result ordering, and is safe for concurrent use. Data does not survive a
// restart; it is the fallback backend for development and tests.
func NewMemory() *Store {
	return &Store{
		Events:        &memEventStore{events: make(map[string]model.Event)},
		Divisions:     &memDivisionStore{divisions: make(map[string]model.Division)},
		Registrations: &memRegistrationLedger{byID: make(map[string]memRecord[model.Registration])},
		Assignments:   &memAssignmentStore{byID: make(map[string]memRecord[model.Assignment])},
		Users:         &memUserDirectory{users: make(map[string]model.User), emails: make(map[string]bool)},
		BagDesigns:    &memBagDesignStore{designs: make(map[string]model.BagDesign)},
	}
}

// memRecord tags a row with a monotonic insertion sequence so ordering by
// created_at has a deterministic tie-break, matching what a single database
// would do with its own clock.
type memRecord[T any] struct {
	row T
	seq uint64
}

// ─── Events ───────────────────────────────────────────────────────────────────

type memEventStore struct {
	mu     sync.RWMutex
	events map[string]model.Event
	order  []string
}

func (s *memEventStore) Create(_ context.Context, name, description string) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev := model.Event{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	s.events[ev.ID] = ev
	s.order = append(s.order, ev.ID)
	return &ev, nil
}

func (s *memEventStore) List(_ context.Context) ([]model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// Newest first, matching the SQL ORDER BY created_at DESC.
	events := make([]model.Event, 0, len(s.order))
	for i := len(s.order) - 1; i >= 0; i-- {
		events = append(events, s.events[s.order[i]])
	}
	return events, nil
}

func (s *memEventStore) GetByID(_ context.Context, id string) (*model.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ev, ok := s.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &ev, nil
}

// ─── Divisions ────────────────────────────────────────────────────────────────

type memDivisionStore struct {
	mu        sync.RWMutex
	divisions map[string]model.Division
	order     []string
}

func (s *memDivisionStore) Create(_ context.Context, eventID, name string, capacity *int) (*model.Division, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := model.Division{
		ID:        uuid.New().String(),
		EventID:   eventID,
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	if capacity != nil {
		c := *capacity
		d.Capacity = &c
	}
	s.divisions[d.ID] = d
	s.order = append(s.order, d.ID)
	return &d, nil
}

func (s *memDivisionStore) ListByEvent(_ context.Context, eventID string) ([]model.Division, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var divisions []model.Division
	for _, id := range s.order {
		if d, ok := s.divisions[id]; ok && d.EventID == eventID {
			divisions = append(divisions, d)
		}
	}
	return divisions, nil
}

func (s *memDivisionStore) GetByID(_ context.Context, id string) (*model.Division, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.divisions[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (s *memDivisionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.divisions[id]; !ok {
		return ErrNotFound
	}
	delete(s.divisions, id)
	return nil
}

// ─── Registrations ────────────────────────────────────────────────────────────

type memRegistrationLedger struct {
	mu   sync.RWMutex
	byID map[string]memRecord[model.Registration]
	seq  uint64
}

func (s *memRegistrationLedger) Create(_ context.Context, eventID, userID string) (*model.Registration, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.byID {
		if rec.row.EventID == eventID && rec.row.UserID == userID {
			return nil, ErrDuplicate
		}
	}

	reg := model.Registration{
		ID:        uuid.New().String(),
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	s.seq++
	s.byID[reg.ID] = memRecord[model.Registration]{row: reg, seq: s.seq}
	return &reg, nil
}

func (s *memRegistrationLedger) ListByEvent(_ context.Context, eventID string) ([]model.Registration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recs []memRecord[model.Registration]
	for _, rec := range s.byID {
		if rec.row.EventID == eventID {
			recs = append(recs, rec)
		}
	}
	// Signup order: created_at ascending, insertion sequence as tie-break.
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].row.CreatedAt.Equal(recs[j].row.CreatedAt) {
			return recs[i].row.CreatedAt.Before(recs[j].row.CreatedAt)
		}
		return recs[i].seq < recs[j].seq
	})

	regs := make([]model.Registration, len(recs))
	for i, rec := range recs {
		regs[i] = rec.row
	}
	return regs, nil
}

func (s *memRegistrationLedger) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

// ─── Assignments ──────────────────────────────────────────────────────────────

type memAssignmentStore struct {
	mu   sync.RWMutex
	byID map[string]memRecord[model.Assignment]
	seq  uint64
}

func (s *memAssignmentStore) ListByDivision(_ context.Context, eventID, divisionID string) ([]model.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var recs []memRecord[model.Assignment]
	for _, rec := range s.byID {
		if rec.row.EventID == eventID && rec.row.DivisionID == divisionID {
			recs = append(recs, rec)
		}
	}
	// Most recent first, insertion sequence as tie-break.
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].row.CreatedAt.Equal(recs[j].row.CreatedAt) {
			return recs[i].row.CreatedAt.After(recs[j].row.CreatedAt)
		}
		return recs[i].seq > recs[j].seq
	})

	assignments := make([]model.Assignment, len(recs))
	for i, rec := range recs {
		assignments[i] = rec.row
	}
	return assignments, nil
}

func (s *memAssignmentStore) CountAssigned(_ context.Context, eventID, divisionID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, rec := range s.byID {
		if rec.row.EventID == eventID && rec.row.DivisionID == divisionID && rec.row.Status == model.StatusAssigned {
			count++
		}
	}
	return count, nil
}

func (s *memAssignmentStore) Create(_ context.Context, eventID, divisionID, userID string, status model.AssignmentStatus) (*model.Assignment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rec := range s.byID {
		if rec.row.EventID == eventID && rec.row.DivisionID == divisionID && rec.row.UserID == userID {
			return nil, ErrDuplicate
		}
	}

	a := model.Assignment{
		ID:         uuid.New().String(),
		EventID:    eventID,
		DivisionID: divisionID,
		UserID:     userID,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}
	s.seq++
	s.byID[a.ID] = memRecord[model.Assignment]{row: a, seq: s.seq}
	return &a, nil
}

func (s *memAssignmentStore) GetByID(_ context.Context, id string) (*model.Assignment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	a := rec.row
	return &a, nil
}

func (s *memAssignmentStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return ErrNotFound
	}
	delete(s.byID, id)
	return nil
}

// ─── Users ────────────────────────────────────────────────────────────────────

type memUserDirectory struct {
	mu     sync.RWMutex
	users  map[string]model.User
	emails map[string]bool
}

func (s *memUserDirectory) Create(_ context.Context, name, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.emails[email] {
		return nil, ErrDuplicate
	}

	u := model.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	s.users[u.ID] = u
	s.emails[email] = true
	return &u, nil
}

func (s *memUserDirectory) GetByID(_ context.Context, id string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

// ─── Bag designs ──────────────────────────────────────────────────────────────

type memBagDesignStore struct {
	mu      sync.RWMutex
	designs map[string]model.BagDesign
	order   []string
}

func (s *memBagDesignStore) Create(_ context.Context, eventID, name, imageURL string) (*model.BagDesign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d := model.BagDesign{
		ID:        uuid.New().String(),
		EventID:   eventID,
		Name:      name,
		ImageURL:  imageURL,
		CreatedAt: time.Now().UTC(),
	}
	s.designs[d.ID] = d
	s.order = append(s.order, d.ID)
	return &d, nil
}

func (s *memBagDesignStore) ListByEvent(_ context.Context, eventID string) ([]model.BagDesign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var designs []model.BagDesign
	for i := len(s.order) - 1; i >= 0; i-- {
		if d, ok := s.designs[s.order[i]]; ok && d.EventID == eventID {
			designs = append(designs, d)
		}
	}
	return designs, nil
}

func (s *memBagDesignStore) GetByID(_ context.Context, id string) (*model.BagDesign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.designs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &d, nil
}

func (s *memBagDesignStore) SetApproved(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.designs[id]
	if !ok {
		return ErrNotFound
	}
	d.Approved = true
	d.ApprovedAt = &at
	s.designs[id] = d
	return nil
}
