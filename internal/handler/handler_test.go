package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/openbracket/tourneyops/internal/model"
	"github.com/openbracket/tourneyops/internal/service"
	"github.com/openbracket/tourneyops/internal/store"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	st := store.NewMemory()
	svc := service.New(st, "", zap.NewNop())
	return NewRouter(New(svc, zap.NewNop()), zap.NewNop())
}

func do(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&v))
	return v
}

// seedDivision creates an event, a division, and n registered users through
// the API. Returns the event, the division, and the user ids in signup order.
func seedDivision(t *testing.T, router chi.Router, capacity *int, n int) (model.Event, model.Division, []string) {
	t.Helper()

	rec := do(t, router, http.MethodPost, "/events", model.CreateEventRequest{Name: "Spring Open"})
	require.Equal(t, http.StatusCreated, rec.Code)
	event := decode[model.Event](t, rec)

	rec = do(t, router, http.MethodPost, "/events/"+event.ID+"/divisions", model.CreateDivisionRequest{
		Name:     "Open",
		Capacity: capacity,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	division := decode[model.Division](t, rec)

	users := make([]string, n)
	for i := range users {
		rec = do(t, router, http.MethodPost, "/users", model.CreateUserRequest{
			Name:  fmt.Sprintf("Player %d", i+1),
			Email: fmt.Sprintf("player%d@example.com", i+1),
		})
		require.Equal(t, http.StatusCreated, rec.Code)
		users[i] = decode[model.User](t, rec).ID

		rec = do(t, router, http.MethodPost, "/events/"+event.ID+"/registrations", model.RegisterRequest{UserID: users[i]})
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	return event, division, users
}

func TestCreateEvent_InvalidBody(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodPost, "/events", map[string]string{"name": ""})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/events", bytes.NewBufferString("{not json"))
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAssignmentFlow(t *testing.T) {
	router := newTestRouter(t)
	capacity := 1
	event, division, users := seedDivision(t, router, &capacity, 2)
	base := "/events/" + event.ID + "/divisions/" + division.ID + "/assignments"

	// First automatic assignment takes the slot.
	rec := do(t, router, http.MethodPost, base, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	first := decode[model.EnrichedAssignment](t, rec)
	require.Equal(t, users[0], first.UserID)
	require.Equal(t, model.StatusAssigned, first.Status)
	require.NotNil(t, first.User)

	// Second lands on the waitlist.
	rec = do(t, router, http.MethodPost, base, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	second := decode[model.EnrichedAssignment](t, rec)
	require.Equal(t, model.StatusWaitlisted, second.Status)

	// No registrants left to auto-select.
	rec = do(t, router, http.MethodPost, base, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	list := decode[[]model.EnrichedAssignment](t, rec)
	require.Len(t, list, 2)

	// Deletion requires the assignment id.
	rec = do(t, router, http.MethodDelete, base, nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodDelete, base+"?assignmentId=bogus", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodDelete, base+"?assignmentId="+first.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[model.OKResponse](t, rec).OK)

	// Explicit promotion moves the waitlisted entry into the freed slot.
	rec = do(t, router, http.MethodPost, base+"/promote", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	promoted := decode[model.EnrichedAssignment](t, rec)
	require.Equal(t, second.UserID, promoted.UserID)
	require.Equal(t, model.StatusAssigned, promoted.Status)
}

func TestAssignments_UnknownDivision(t *testing.T) {
	router := newTestRouter(t)
	event, _, _ := seedDivision(t, router, nil, 0)

	rec := do(t, router, http.MethodPost, "/events/"+event.ID+"/divisions/nope/assignments", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, router, http.MethodGet, "/events/"+event.ID+"/divisions/nope/assignments", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegister_DuplicateConflict(t *testing.T) {
	router := newTestRouter(t)
	event, _, users := seedDivision(t, router, nil, 1)

	rec := do(t, router, http.MethodPost, "/events/"+event.ID+"/registrations", model.RegisterRequest{UserID: users[0]})
	require.Equal(t, http.StatusConflict, rec.Code)
}

func TestBagDesignApproval(t *testing.T) {
	router := newTestRouter(t)
	event, _, _ := seedDivision(t, router, nil, 0)

	rec := do(t, router, http.MethodPost, "/events/"+event.ID+"/bag-designs", model.CreateBagDesignRequest{
		Name: "Sponsor Bag A",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	design := decode[model.BagDesign](t, rec)

	rec = do(t, router, http.MethodPost, "/bag-designs/"+design.ID+"/approve", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.True(t, decode[model.BagDesign](t, rec).Approved)

	// The transition only happens once.
	rec = do(t, router, http.MethodPost, "/bag-designs/"+design.ID+"/approve", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealth(t *testing.T) {
	router := newTestRouter(t)

	rec := do(t, router, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
