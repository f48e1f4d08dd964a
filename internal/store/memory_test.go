package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/openbracket/tourneyops/internal/model"
)

func TestMemoryRegistrationLedger_SignupOrder(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	for _, user := range []string{"u1", "u2", "u3"} {
		_, err := st.Registrations.Create(ctx, "ev1", user)
		require.NoError(t, err)
	}

	regs, err := st.Registrations.ListByEvent(ctx, "ev1")
	require.NoError(t, err)
	require.Len(t, regs, 3)
	require.Equal(t, "u1", regs[0].UserID)
	require.Equal(t, "u2", regs[1].UserID)
	require.Equal(t, "u3", regs[2].UserID)
	for i := 1; i < len(regs); i++ {
		require.False(t, regs[i].CreatedAt.Before(regs[i-1].CreatedAt))
	}
}

func TestMemoryRegistrationLedger_DuplicateSignup(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	_, err := st.Registrations.Create(ctx, "ev1", "u1")
	require.NoError(t, err)

	_, err = st.Registrations.Create(ctx, "ev1", "u1")
	require.ErrorIs(t, err, ErrDuplicate)

	// The same user can sign up for a different event.
	_, err = st.Registrations.Create(ctx, "ev2", "u1")
	require.NoError(t, err)
}

func TestMemoryAssignmentStore_ListMostRecentFirst(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	var created []string
	for _, user := range []string{"u1", "u2", "u3"} {
		a, err := st.Assignments.Create(ctx, "ev1", "div1", user, model.StatusAssigned)
		require.NoError(t, err)
		created = append(created, a.ID)
	}

	list, err := st.Assignments.ListByDivision(ctx, "ev1", "div1")
	require.NoError(t, err)
	require.Len(t, list, 3)
	require.Equal(t, created[2], list[0].ID)
	require.Equal(t, created[1], list[1].ID)
	require.Equal(t, created[0], list[2].ID)
}

func TestMemoryAssignmentStore_CountAssigned(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	_, err := st.Assignments.Create(ctx, "ev1", "div1", "u1", model.StatusAssigned)
	require.NoError(t, err)
	_, err = st.Assignments.Create(ctx, "ev1", "div1", "u2", model.StatusWaitlisted)
	require.NoError(t, err)
	_, err = st.Assignments.Create(ctx, "ev1", "div2", "u3", model.StatusAssigned)
	require.NoError(t, err)

	count, err := st.Assignments.CountAssigned(ctx, "ev1", "div1")
	require.NoError(t, err)
	require.Equal(t, 1, count, "waitlisted rows and other divisions do not count")
}

func TestMemoryAssignmentStore_DuplicatePlacement(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	_, err := st.Assignments.Create(ctx, "ev1", "div1", "u1", model.StatusAssigned)
	require.NoError(t, err)

	_, err = st.Assignments.Create(ctx, "ev1", "div1", "u1", model.StatusWaitlisted)
	require.ErrorIs(t, err, ErrDuplicate)

	// A different division in the same event is fine.
	_, err = st.Assignments.Create(ctx, "ev1", "div2", "u1", model.StatusAssigned)
	require.NoError(t, err)
}

func TestMemoryAssignmentStore_DeleteMissing(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	require.ErrorIs(t, st.Assignments.Delete(ctx, "missing"), ErrNotFound)

	a, err := st.Assignments.Create(ctx, "ev1", "div1", "u1", model.StatusAssigned)
	require.NoError(t, err)
	require.NoError(t, st.Assignments.Delete(ctx, a.ID))
	require.ErrorIs(t, st.Assignments.Delete(ctx, a.ID), ErrNotFound)
}

func TestMemoryUserDirectory_UniqueEmail(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	u, err := st.Users.Create(ctx, "Alice", "alice@example.com")
	require.NoError(t, err)

	_, err = st.Users.Create(ctx, "Other Alice", "alice@example.com")
	require.ErrorIs(t, err, ErrDuplicate)

	got, err := st.Users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "Alice", got.Name)
}

func TestMemoryDivisionStore_CapacityCopied(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	capacity := 4
	d, err := st.Divisions.Create(ctx, "ev1", "Open", &capacity)
	require.NoError(t, err)

	// Mutating the caller's variable must not leak into the stored row.
	capacity = 99
	got, err := st.Divisions.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Capacity)
	require.Equal(t, 4, *got.Capacity)
}

func TestMemoryBagDesignStore_Approval(t *testing.T) {
	st := NewMemory()
	ctx := context.Background()

	d, err := st.BagDesigns.Create(ctx, "ev1", "Bag A", "")
	require.NoError(t, err)
	require.False(t, d.Approved)

	got, err := st.BagDesigns.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.False(t, got.Approved)

	require.NoError(t, st.BagDesigns.SetApproved(ctx, d.ID, got.CreatedAt))
	got, err = st.BagDesigns.GetByID(ctx, d.ID)
	require.NoError(t, err)
	require.True(t, got.Approved)
	require.NotNil(t, got.ApprovedAt)
}
