package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/openbracket/tourneyops/internal/model"
	"github.com/openbracket/tourneyops/internal/store"
)

// UserService manages directory users.
type UserService struct {
	store *store.Store
}

// NewUserService constructs a UserService.
func NewUserService(st *store.Store) *UserService {
	return &UserService{store: st}
}

// Create adds a user to the directory. Emails are unique and normalized to
// lower case.
func (s *UserService) Create(ctx context.Context, req model.CreateUserRequest) (*model.User, error) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrValidation)
	}
	if req.Email == "" {
		return nil, fmt.Errorf("%w: email is required", ErrValidation)
	}
	return s.store.Users.Create(ctx, req.Name, req.Email)
}
