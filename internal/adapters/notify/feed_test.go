package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hosfind_admin/internal/domain"
)

func TestFeed_ExpiresAndDismisses(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	f := NewFeed(3 * time.Second)
	f.now = func() time.Time { return now }

	f.Notify(domain.NoticeSuccess, "Property deleted successfully")
	now = now.Add(2 * time.Second)
	f.Notify(domain.NoticeError, "Failed to delete item. Please try again.")

	active := f.Active()
	require.Len(t, active, 2)
	assert.Equal(t, domain.NoticeSuccess, active[0].Level)
	assert.NotEmpty(t, active[0].ID)

	now = now.Add(1500 * time.Millisecond)
	active = f.Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Failed to delete item. Please try again.", active[0].Message)

	assert.True(t, f.Dismiss(active[0].ID))
	assert.False(t, f.Dismiss(active[0].ID))
	assert.Empty(t, f.Active())
}
