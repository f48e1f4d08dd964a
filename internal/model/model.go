// Package model defines the core domain types for the tournament operations
// portal.
package model

import "time"

// AssignmentStatus is the placement state of a registrant within a division.
type AssignmentStatus string

const (
	// StatusAssigned means the registrant holds a slot in the division.
	StatusAssigned AssignmentStatus = "assigned"
	// StatusWaitlisted means the division was at capacity when the
	// assignment was created.
	StatusWaitlisted AssignmentStatus = "waitlisted"
)

// Event represents a tournament event run through the portal.
type Event struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// Division is a capacity-bounded bracket within an event. A nil Capacity
// means the division is unbounded.
type Division struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	Name      string    `json:"name"`
	Capacity  *int      `json:"capacity"`
	CreatedAt time.Time `json:"created_at"`
}

// Bounded returns true when the division enforces a capacity limit.
func (d *Division) Bounded() bool {
	return d.Capacity != nil
}

// Registration records a user's intent to participate in an event.
// CreatedAt is the signup-order key used by automatic assignment.
type Registration struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Assignment places one registrant into one division with a status.
// Status is never mutated in place; reclassification is delete + recreate.
type Assignment struct {
	ID         string           `json:"id"`
	EventID    string           `json:"event_id"`
	DivisionID string           `json:"division_id"`
	UserID     string           `json:"user_id"`
	Status     AssignmentStatus `json:"status"`
	CreatedAt  time.Time        `json:"created_at"`
}

// EnrichedAssignment is an assignment joined with the user's display
// identity. User is nil when the directory lookup failed or the user no
// longer exists; the assignment itself is still returned.
type EnrichedAssignment struct {
	Assignment
	User *User `json:"user"`
}

// User is a portal account as seen by the user directory.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// BagDesign is a sponsor bag artwork submitted for an event. Approving a
// design is a one-way transition that triggers the production webhook.
type BagDesign struct {
	ID         string     `json:"id"`
	EventID    string     `json:"event_id"`
	Name       string     `json:"name"`
	ImageURL   string     `json:"image_url"`
	Approved   bool       `json:"approved"`
	ApprovedAt *time.Time `json:"approved_at"`
	CreatedAt  time.Time  `json:"created_at"`
}

// CreateEventRequest is the payload for creating a new event.
type CreateEventRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// CreateDivisionRequest is the payload for creating a division. Capacity is
// optional; absent means unbounded.
type CreateDivisionRequest struct {
	Name     string `json:"name" validate:"required"`
	Capacity *int   `json:"capacity" validate:"omitempty,gte=0"`
}

// RegisterRequest is the payload for registering a user for an event.
type RegisterRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// AssignRequest is the payload for creating an assignment. UserID is
// optional; when absent the engine auto-selects the earliest unplaced
// registrant.
type AssignRequest struct {
	UserID string `json:"userId"`
}

// CreateUserRequest is the payload for creating a directory user.
type CreateUserRequest struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

// CreateBagDesignRequest is the payload for submitting a bag design.
type CreateBagDesignRequest struct {
	Name     string `json:"name" validate:"required"`
	ImageURL string `json:"image_url" validate:"omitempty,url"`
}

// ErrorResponse is a standard JSON error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
}

// OKResponse acknowledges a successful deletion or transition.
type OKResponse struct {
	OK bool `json:"ok"`
}
