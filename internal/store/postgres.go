package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openbracket/tourneyops/internal/model"
)

// uniqueViolation is the PostgreSQL error code for unique_violation.
const uniqueViolation = "23505"

// NewPostgres returns a Store backed by PostgreSQL. Queries use pgx
// directly (no ORM) for transparency and performance.
func NewPostgres(pool *pgxpool.Pool) *Store {
	return &Store{
		Events:        &pgEventStore{db: pool},
		Divisions:     &pgDivisionStore{db: pool},
		Registrations: &pgRegistrationLedger{db: pool},
		Assignments:   &pgAssignmentStore{db: pool},
		Users:         &pgUserDirectory{db: pool},
		BagDesigns:    &pgBagDesignStore{db: pool},
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// ─── Events ───────────────────────────────────────────────────────────────────

type pgEventStore struct {
	db *pgxpool.Pool
}

func (s *pgEventStore) Create(ctx context.Context, name, description string) (*model.Event, error) {
	ev := &model.Event{
		ID:          uuid.New().String(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO events (id, name, description, created_at)
		 VALUES ($1, $2, $3, $4)`,
		ev.ID, ev.Name, ev.Description, ev.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return ev, nil
}

func (s *pgEventStore) List(ctx context.Context) ([]model.Event, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, name, description, created_at
		 FROM events
		 ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()

	var events []model.Event
	for rows.Next() {
		var e model.Event
		if err := rows.Scan(&e.ID, &e.Name, &e.Description, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (s *pgEventStore) GetByID(ctx context.Context, id string) (*model.Event, error) {
	var e model.Event
	err := s.db.QueryRow(ctx,
		`SELECT id, name, description, created_at
		 FROM events WHERE id = $1`,
		id,
	).Scan(&e.ID, &e.Name, &e.Description, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &e, nil
}

// ─── Divisions ────────────────────────────────────────────────────────────────

type pgDivisionStore struct {
	db *pgxpool.Pool
}

func (s *pgDivisionStore) Create(ctx context.Context, eventID, name string, capacity *int) (*model.Division, error) {
	d := &model.Division{
		ID:        uuid.New().String(),
		EventID:   eventID,
		Name:      name,
		Capacity:  capacity,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO divisions (id, event_id, name, capacity, created_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		d.ID, d.EventID, d.Name, d.Capacity, d.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert division: %w", err)
	}
	return d, nil
}

func (s *pgDivisionStore) ListByEvent(ctx context.Context, eventID string) ([]model.Division, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, event_id, name, capacity, created_at
		 FROM divisions
		 WHERE event_id = $1
		 ORDER BY created_at ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list divisions: %w", err)
	}
	defer rows.Close()

	var divisions []model.Division
	for rows.Next() {
		var d model.Division
		if err := rows.Scan(&d.ID, &d.EventID, &d.Name, &d.Capacity, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan division: %w", err)
		}
		divisions = append(divisions, d)
	}
	return divisions, rows.Err()
}

func (s *pgDivisionStore) GetByID(ctx context.Context, id string) (*model.Division, error) {
	var d model.Division
	err := s.db.QueryRow(ctx,
		`SELECT id, event_id, name, capacity, created_at
		 FROM divisions WHERE id = $1`,
		id,
	).Scan(&d.ID, &d.EventID, &d.Name, &d.Capacity, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get division: %w", err)
	}
	return &d, nil
}

func (s *pgDivisionStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM divisions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete division: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ─── Registrations ────────────────────────────────────────────────────────────

type pgRegistrationLedger struct {
	db *pgxpool.Pool
}

func (s *pgRegistrationLedger) Create(ctx context.Context, eventID, userID string) (*model.Registration, error) {
	reg := &model.Registration{
		ID:        uuid.New().String(),
		EventID:   eventID,
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO registrations (id, event_id, user_id, created_at)
		 VALUES ($1, $2, $3, $4)`,
		reg.ID, reg.EventID, reg.UserID, reg.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert registration: %w", err)
	}
	return reg, nil
}

func (s *pgRegistrationLedger) ListByEvent(ctx context.Context, eventID string) ([]model.Registration, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, event_id, user_id, created_at
		 FROM registrations
		 WHERE event_id = $1
		 ORDER BY created_at ASC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer rows.Close()

	var regs []model.Registration
	for rows.Next() {
		var reg model.Registration
		if err := rows.Scan(&reg.ID, &reg.EventID, &reg.UserID, &reg.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		regs = append(regs, reg)
	}
	return regs, rows.Err()
}

func (s *pgRegistrationLedger) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM registrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ─── Assignments ──────────────────────────────────────────────────────────────

type pgAssignmentStore struct {
	db *pgxpool.Pool
}

func (s *pgAssignmentStore) ListByDivision(ctx context.Context, eventID, divisionID string) ([]model.Assignment, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, event_id, division_id, user_id, status, created_at
		 FROM assignments
		 WHERE event_id = $1 AND division_id = $2
		 ORDER BY created_at DESC`,
		eventID, divisionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.Assignment
	for rows.Next() {
		var a model.Assignment
		if err := rows.Scan(&a.ID, &a.EventID, &a.DivisionID, &a.UserID, &a.Status, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func (s *pgAssignmentStore) CountAssigned(ctx context.Context, eventID, divisionID string) (int, error) {
	var count int
	err := s.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM assignments
		 WHERE event_id = $1 AND division_id = $2 AND status = $3`,
		eventID, divisionID, model.StatusAssigned,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count assigned: %w", err)
	}
	return count, nil
}

func (s *pgAssignmentStore) Create(ctx context.Context, eventID, divisionID, userID string, status model.AssignmentStatus) (*model.Assignment, error) {
	a := &model.Assignment{
		ID:         uuid.New().String(),
		EventID:    eventID,
		DivisionID: divisionID,
		UserID:     userID,
		Status:     status,
		CreatedAt:  time.Now().UTC(),
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO assignments (id, event_id, division_id, user_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		a.ID, a.EventID, a.DivisionID, a.UserID, a.Status, a.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert assignment: %w", err)
	}
	return a, nil
}

func (s *pgAssignmentStore) GetByID(ctx context.Context, id string) (*model.Assignment, error) {
	var a model.Assignment
	err := s.db.QueryRow(ctx,
		`SELECT id, event_id, division_id, user_id, status, created_at
		 FROM assignments WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.EventID, &a.DivisionID, &a.UserID, &a.Status, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get assignment: %w", err)
	}
	return &a, nil
}

func (s *pgAssignmentStore) Delete(ctx context.Context, id string) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ─── Users ────────────────────────────────────────────────────────────────────

type pgUserDirectory struct {
	db *pgxpool.Pool
}

func (s *pgUserDirectory) Create(ctx context.Context, name, email string) (*model.User, error) {
	u := &model.User{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     email,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO users (id, name, email, created_at)
		 VALUES ($1, $2, $3, $4)`,
		u.ID, u.Name, u.Email, u.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return u, nil
}

func (s *pgUserDirectory) GetByID(ctx context.Context, id string) (*model.User, error) {
	var u model.User
	err := s.db.QueryRow(ctx,
		`SELECT id, name, email, created_at
		 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Name, &u.Email, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// ─── Bag designs ──────────────────────────────────────────────────────────────

type pgBagDesignStore struct {
	db *pgxpool.Pool
}

func (s *pgBagDesignStore) Create(ctx context.Context, eventID, name, imageURL string) (*model.BagDesign, error) {
	d := &model.BagDesign{
		ID:        uuid.New().String(),
		EventID:   eventID,
		Name:      name,
		ImageURL:  imageURL,
		CreatedAt: time.Now().UTC(),
	}
	_, err := s.db.Exec(ctx,
		`INSERT INTO bag_designs (id, event_id, name, image_url, approved, created_at)
		 VALUES ($1, $2, $3, $4, FALSE, $5)`,
		d.ID, d.EventID, d.Name, d.ImageURL, d.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert bag design: %w", err)
	}
	return d, nil
}

func (s *pgBagDesignStore) ListByEvent(ctx context.Context, eventID string) ([]model.BagDesign, error) {
	rows, err := s.db.Query(ctx,
		`SELECT id, event_id, name, image_url, approved, approved_at, created_at
		 FROM bag_designs
		 WHERE event_id = $1
		 ORDER BY created_at DESC`,
		eventID,
	)
	if err != nil {
		return nil, fmt.Errorf("list bag designs: %w", err)
	}
	defer rows.Close()

	var designs []model.BagDesign
	for rows.Next() {
		var d model.BagDesign
		if err := rows.Scan(&d.ID, &d.EventID, &d.Name, &d.ImageURL, &d.Approved, &d.ApprovedAt, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan bag design: %w", err)
		}
		designs = append(designs, d)
	}
	return designs, rows.Err()
}

func (s *pgBagDesignStore) GetByID(ctx context.Context, id string) (*model.BagDesign, error) {
	var d model.BagDesign
	err := s.db.QueryRow(ctx,
		`SELECT id, event_id, name, image_url, approved, approved_at, created_at
		 FROM bag_designs WHERE id = $1`,
		id,
	).Scan(&d.ID, &d.EventID, &d.Name, &d.ImageURL, &d.Approved, &d.ApprovedAt, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get bag design: %w", err)
	}
	return &d, nil
}

func (s *pgBagDesignStore) SetApproved(ctx context.Context, id string, at time.Time) error {
	tag, err := s.db.Exec(ctx,
		`UPDATE bag_designs SET approved = TRUE, approved_at = $2 WHERE id = $1`,
		id, at,
	)
	if err != nil {
		return fmt.Errorf("approve bag design: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
