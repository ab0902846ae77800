// Package notify holds the in-memory toast feed the console UI polls.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hosfind_admin/internal/domain"
)

// DefaultTTL matches how long a toast stays on screen.
const DefaultTTL = 3 * time.Second

const maxNotices = 50

type Feed struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	items []domain.Notice
}

func NewFeed(ttl time.Duration) *Feed {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Feed{ttl: ttl, now: time.Now}
}

func (f *Feed) Notify(level domain.NoticeLevel, message string) {
	n := domain.Notice{ID: uuid.NewString(), Level: level, Message: message, CreatedAt: f.now()}

	ev := log.Info()
	if level == domain.NoticeError {
		ev = log.Warn()
	}
	ev.Str("notice_id", n.ID).Str("level", string(level)).Msg(message)

	f.mu.Lock()
	defer f.mu.Unlock()
	f.pruneLocked()
	f.items = append(f.items, n)
	if len(f.items) > maxNotices {
		f.items = f.items[len(f.items)-maxNotices:]
	}
}

// Active returns the notices that have not expired yet, oldest first.
func (f *Feed) Active() []domain.Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pruneLocked()
	out := make([]domain.Notice, len(f.items))
	copy(out, f.items)
	return out
}

// Dismiss removes a notice before it expires.
func (f *Feed) Dismiss(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, n := range f.items {
		if n.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true
		}
	}
	return false
}

func (f *Feed) pruneLocked() {
	cutoff := f.now().Add(-f.ttl)
	keep := f.items[:0]
	for _, n := range f.items {
		if n.CreatedAt.After(cutoff) {
			keep = append(keep, n)
		}
	}
	f.items = keep
}
