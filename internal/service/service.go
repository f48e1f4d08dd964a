// Package service implements business logic, validation, and orchestration
// between HTTP handlers and the store layer.
package service

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/openbracket/tourneyops/internal/store"
)

// ErrValidation marks failures caused by the caller's input: a missing
// required field, no eligible registration to auto-assign, an invalid
// transition. Handlers map it to 400.
var ErrValidation = errors.New("validation failed")

// Service aggregates all portal services behind one handle.
type Service struct {
	Events       *EventService
	Divisions    *DivisionService
	Registration *RegistrationService
	Users        *UserService
	Assignments  *AssignmentService
	Approvals    *ApprovalService
}

// New wires every service onto the shared store.
func New(st *store.Store, webhookURL string, logger *zap.Logger) *Service {
	return &Service{
		Events:       NewEventService(st),
		Divisions:    NewDivisionService(st),
		Registration: NewRegistrationService(st),
		Users:        NewUserService(st),
		Assignments:  NewAssignmentService(st, logger),
		Approvals: NewApprovalService(st, webhookURL, &http.Client{
			Timeout: 10 * time.Second,
		}, logger),
	}
}
