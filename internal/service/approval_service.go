package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/openbracket/tourneyops/internal/model"
	"github.com/openbracket/tourneyops/internal/store"
)

// ApprovalService runs the bag-design approval workflow: a single
// unapproved→approved transition that notifies the production webhook.
// The webhook is best-effort; a delivery failure never rolls the approval
// back.
type ApprovalService struct {
	store      *store.Store
	webhookURL string
	client     *http.Client
	logger     *zap.Logger
}

// NewApprovalService constructs an ApprovalService. An empty webhookURL
// disables notifications.
func NewApprovalService(st *store.Store, webhookURL string, client *http.Client, logger *zap.Logger) *ApprovalService {
	return &ApprovalService{store: st, webhookURL: webhookURL, client: client, logger: logger}
}

// productionNotice is the webhook payload sent when a design is approved.
type productionNotice struct {
	DesignID   string    `json:"design_id"`
	EventID    string    `json:"event_id"`
	Name       string    `json:"name"`
	ImageURL   string    `json:"image_url"`
	ApprovedAt time.Time `json:"approved_at"`
}

// Submit records a new bag design for an event.
func (s *ApprovalService) Submit(ctx context.Context, eventID string, req model.CreateBagDesignRequest) (*model.BagDesign, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return nil, fmt.Errorf("%w: design name is required", ErrValidation)
	}
	if _, err := s.store.Events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return s.store.BagDesigns.Create(ctx, eventID, req.Name, req.ImageURL)
}

// ListByEvent returns the event's designs, newest first.
func (s *ApprovalService) ListByEvent(ctx context.Context, eventID string) ([]model.BagDesign, error) {
	if _, err := s.store.Events.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return s.store.BagDesigns.ListByEvent(ctx, eventID)
}

// Approve flips the design to approved and fires the production webhook.
// Approving an already-approved design fails; the transition happens once.
func (s *ApprovalService) Approve(ctx context.Context, designID string) (*model.BagDesign, error) {
	design, err := s.store.BagDesigns.GetByID(ctx, designID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, store.ErrNotFound
		}
		return nil, fmt.Errorf("get bag design: %w", err)
	}
	if design.Approved {
		return nil, fmt.Errorf("%w: design is already approved", ErrValidation)
	}

	now := time.Now().UTC()
	if err := s.store.BagDesigns.SetApproved(ctx, designID, now); err != nil {
		return nil, fmt.Errorf("approve bag design: %w", err)
	}
	design.Approved = true
	design.ApprovedAt = &now

	s.notifyProduction(ctx, design)

	s.logger.Info("bag design approved",
		zap.String("design_id", design.ID),
		zap.String("event_id", design.EventID),
	)
	return design, nil
}

// notifyProduction posts the approval notice to the production webhook.
// Failures are logged only; the approval has already committed.
func (s *ApprovalService) notifyProduction(ctx context.Context, design *model.BagDesign) {
	if s.webhookURL == "" {
		return
	}

	body, err := json.Marshal(productionNotice{
		DesignID:   design.ID,
		EventID:    design.EventID,
		Name:       design.Name,
		ImageURL:   design.ImageURL,
		ApprovedAt: *design.ApprovedAt,
	})
	if err != nil {
		s.logger.Error("marshal production notice", zap.Error(err))
		return
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.webhookURL, bytes.NewReader(body))
	if err != nil {
		s.logger.Error("build production webhook request", zap.Error(err))
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		s.logger.Warn("production webhook failed",
			zap.String("design_id", design.ID),
			zap.Error(err),
		)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		s.logger.Warn("production webhook rejected",
			zap.String("design_id", design.ID),
			zap.Int("status", resp.StatusCode),
		)
	}
}
