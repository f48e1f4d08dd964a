package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openbracket/tourneyops/internal/model"
	"github.com/openbracket/tourneyops/internal/store"
)

func setupApprovalTest(t *testing.T, webhookURL string) (*ApprovalService, *model.BagDesign) {
	t.Helper()
	ctx := context.Background()
	st := store.NewMemory()

	event, err := st.Events.Create(ctx, "Spring Open", "")
	require.NoError(t, err)

	svc := NewApprovalService(st, webhookURL, http.DefaultClient, zap.NewNop())
	design, err := svc.Submit(ctx, event.ID, model.CreateBagDesignRequest{
		Name:     "Sponsor Bag A",
		ImageURL: "https://cdn.example.com/bags/a.png",
	})
	require.NoError(t, err)

	return svc, design
}

func TestApprove_FiresProductionWebhook(t *testing.T) {
	var received productionNotice
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer hook.Close()

	svc, design := setupApprovalTest(t, hook.URL)

	approved, err := svc.Approve(context.Background(), design.ID)
	require.NoError(t, err)
	require.True(t, approved.Approved)
	require.NotNil(t, approved.ApprovedAt)

	require.Equal(t, design.ID, received.DesignID)
	require.Equal(t, design.EventID, received.EventID)
	require.Equal(t, "Sponsor Bag A", received.Name)
}

func TestApprove_SecondTransitionRejected(t *testing.T) {
	svc, design := setupApprovalTest(t, "")
	ctx := context.Background()

	_, err := svc.Approve(ctx, design.ID)
	require.NoError(t, err)

	_, err = svc.Approve(ctx, design.ID)
	require.ErrorIs(t, err, ErrValidation)
}

func TestApprove_WebhookFailureDoesNotRollBack(t *testing.T) {
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer hook.Close()

	svc, design := setupApprovalTest(t, hook.URL)

	approved, err := svc.Approve(context.Background(), design.ID)
	require.NoError(t, err)
	require.True(t, approved.Approved)
}

func TestApprove_UnknownDesign(t *testing.T) {
	svc, _ := setupApprovalTest(t, "")

	_, err := svc.Approve(context.Background(), "no-such-design")
	require.ErrorIs(t, err, store.ErrNotFound)
}
