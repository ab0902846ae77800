package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hosfind_admin/internal/adapters/observability"
	"hosfind_admin/internal/app"
	"hosfind_admin/internal/domain"
)

func TestRequestDelete_Prompt(t *testing.T) {
	api := seeded()
	c, _ := newConsole(t, api, app.Options{})

	p, err := c.RequestDelete(domain.KindRoomType, "r1")
	require.NoError(t, err)
	assert.NotEmpty(t, p.Token)
	assert.Equal(t, "Delete room type", p.Title)
	assert.Equal(t, "Are you sure you want to delete this room type? "+
		"This action will permanently remove it from the system.", p.Message)
	assert.Empty(t, api.mutations())

	assert.True(t, c.CancelDelete(p.Token))
	assert.False(t, c.CancelDelete(p.Token))
	assert.ErrorIs(t, c.ConfirmDelete(context.Background(), p.Token), domain.ErrNoConfirmation)
	assert.Empty(t, api.mutations())
}

func TestRequestDelete_UnknownKind(t *testing.T) {
	c, _ := newConsole(t, seeded(), app.Options{})
	_, err := c.RequestDelete(domain.Kind("hotel"), "x")
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestConfirmDelete_SuccessRemovesLocally(t *testing.T) {
	api := seeded()
	c, n := newConsole(t, api, app.Options{})
	require.NoError(t, c.Refresh(context.Background()))
	before := api.listCount()

	p, err := c.RequestDelete(domain.KindRoomType, "r1")
	require.NoError(t, err)
	require.NoError(t, c.ConfirmDelete(context.Background(), p.Token))

	s := c.Snapshot()
	assert.Equal(t, []string{"r2", "r3"}, ids(s.RoomTypes))
	require.Len(t, s.RoomTypeGroups, 2)
	assert.Equal(t, []string{"r2"}, ids(s.RoomTypeGroups[0].Variants))
	assert.Equal(t, before, api.listCount(), "no refetch without a resync delay")
	assert.Equal(t, domain.Notice{Level: domain.NoticeSuccess, Message: "Room type deleted successfully"}, n.last())
	assert.False(t, c.Deleting(domain.KindRoomType, "r1"))

	// the prompt is consumed
	assert.ErrorIs(t, c.ConfirmDelete(context.Background(), p.Token), domain.ErrNoConfirmation)
}

func TestConfirmDelete_SchedulesResync(t *testing.T) {
	api := seeded()
	c, _ := newConsole(t, api, app.Options{ResyncAfterDelete: 10 * time.Millisecond})
	require.NoError(t, c.Refresh(context.Background()))

	p, err := c.RequestDelete(domain.KindCategory, "c1")
	require.NoError(t, err)
	require.NoError(t, c.ConfirmDelete(context.Background(), p.Token))
	assert.Empty(t, c.Snapshot().Categories)

	c.Wait()
	assert.Equal(t, 2, api.listCount())
	// the fake still lists c1, so the resync brings it back
	assert.Len(t, c.Snapshot().Categories, 1)
}

func TestConfirmDelete_FailureKeepsEntityAndRefetches(t *testing.T) {
	api := seeded()
	api.mutateErr = &domain.APIError{Status: 409, Message: "Category has properties"}
	c, n := newConsole(t, api, app.Options{})
	require.NoError(t, c.Refresh(context.Background()))

	p, err := c.RequestDelete(domain.KindCategory, "c1")
	require.NoError(t, err)
	err = c.ConfirmDelete(context.Background(), p.Token)
	require.Error(t, err)

	assert.Len(t, c.Snapshot().Categories, 1)
	assert.Equal(t, 2, api.listCount())
	assert.Equal(t, domain.Notice{Level: domain.NoticeError, Message: "Category has properties"}, n.last())
	assert.False(t, c.Deleting(domain.KindCategory, "c1"))

	// the prompt stays open so the operator can retry
	assert.True(t, c.CancelDelete(p.Token))
}

func TestConfirmDelete_FallbackMessage(t *testing.T) {
	api := seeded()
	api.mutateErr = context.DeadlineExceeded
	c, n := newConsole(t, api, app.Options{})

	p, err := c.RequestDelete(domain.KindProperty, "p1")
	require.NoError(t, err)
	require.ErrorIs(t, c.ConfirmDelete(context.Background(), p.Token), context.DeadlineExceeded)
	assert.Equal(t, app.DeleteFailedMessage, n.last().Message)
}

func TestConfirmDelete_OneInFlightPerEntity(t *testing.T) {
	api := seeded()
	api.deleteGate = make(chan struct{})
	api.deleting = make(chan struct{}, 1)
	c, _ := newConsole(t, api, app.Options{})
	require.NoError(t, c.Refresh(context.Background()))

	first, err := c.RequestDelete(domain.KindProperty, "p1")
	require.NoError(t, err)
	second, err := c.RequestDelete(domain.KindProperty, "p1")
	require.NoError(t, err)

	busy := observability.Mutations.WithLabelValues("property", "delete", "busy")
	before := testutil.ToFloat64(busy)

	done := make(chan error, 1)
	go func() { done <- c.ConfirmDelete(context.Background(), first.Token) }()
	<-api.deleting

	assert.True(t, c.Deleting(domain.KindProperty, "p1"))
	assert.ErrorIs(t, c.ConfirmDelete(context.Background(), second.Token), domain.ErrDeleteInProgress)
	assert.Equal(t, before+1, testutil.ToFloat64(busy))

	close(api.deleteGate)
	require.NoError(t, <-done)
	assert.False(t, c.Deleting(domain.KindProperty, "p1"))
	assert.Len(t, api.mutations(), 1)
	assert.Empty(t, c.Snapshot().Properties)
}

func TestConfirmDelete_SupersedesRefreshInFlight(t *testing.T) {
	api := seeded()
	c, _ := newConsole(t, api, app.Options{})
	require.NoError(t, c.Refresh(context.Background()))

	// the next refresh reads the list before the delete lands upstream
	api.mu.Lock()
	api.listGate = make(chan struct{})
	api.mu.Unlock()

	done := make(chan error, 1)
	go func() { done <- c.Refresh(context.Background()) }()
	require.Eventually(t, func() bool { return c.Snapshot().Loading }, time.Second, 5*time.Millisecond)

	p, err := c.RequestDelete(domain.KindProperty, "p1")
	require.NoError(t, err)
	require.NoError(t, c.ConfirmDelete(context.Background(), p.Token))
	assert.Empty(t, c.Snapshot().Properties)

	close(api.listGate)
	require.NoError(t, <-done)

	s := c.Snapshot()
	assert.Empty(t, s.Properties, "older refresh must not restore the deleted property")
	assert.False(t, s.Loading)
	assert.Len(t, s.Categories, 1)

	// a refresh started afterwards applies normally
	require.NoError(t, c.Refresh(context.Background()))
	assert.Len(t, c.Snapshot().Properties, 1)
}
