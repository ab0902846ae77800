package app

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"hosfind_admin/internal/adapters/observability"
	"hosfind_admin/internal/domain"
)

// FetchFailedMessage is shown in place of the tables when a refresh fails.
const FetchFailedMessage = "Failed to fetch data. Please try again."

// State is what the console tables render.
type State struct {
	Loading          bool                     `json:"loading"`
	Error            string                   `json:"error,omitempty"`
	FetchedAt        time.Time                `json:"fetchedAt,omitempty"`
	Properties       []domain.Property        `json:"properties"`
	Categories       []domain.Category        `json:"categories"`
	RoomTypes        []domain.RoomType        `json:"roomTypes"`
	RoomTypeGroups   []domain.RoomTypeGroup   `json:"roomTypeGroups"`
	RegionalSections []domain.RegionalSection `json:"regionalSections"`
}

func emptyState() State {
	return State{
		Properties:       []domain.Property{},
		Categories:       []domain.Category{},
		RoomTypes:        []domain.RoomType{},
		RoomTypeGroups:   []domain.RoomTypeGroup{},
		RegionalSections: []domain.RegionalSection{},
	}
}

type Options struct {
	Notifier domain.Notifier
	Audit    domain.AuditLog // optional
	// ResyncAfterDelete schedules a background refresh this long after a
	// successful delete. Zero disables it.
	ResyncAfterDelete time.Duration
}

// Console owns the admin console's in-memory state: the four collections,
// the grouped room types, pending delete confirmations and the deletes in
// flight. It is safe for concurrent use.
type Console struct {
	api    domain.AdminAPI
	notify domain.Notifier
	audit  domain.AuditLog
	resync time.Duration

	mu       sync.Mutex
	state    State
	gen      uint64 // bumped by every refresh and local removal
	inflight int
	deleting map[string]struct{}
	prompts  map[string]DeletePrompt

	bg sync.WaitGroup
}

func NewConsole(api domain.AdminAPI, opts Options) *Console {
	n := opts.Notifier
	if n == nil {
		n = logNotifier{}
	}
	return &Console{
		api:      api,
		notify:   n,
		audit:    opts.Audit,
		resync:   opts.ResyncAfterDelete,
		state:    emptyState(),
		deleting: map[string]struct{}{},
		prompts:  map[string]DeletePrompt{},
	}
}

// Snapshot returns a copy of the current state.
func (c *Console) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Properties = slices.Clone(s.Properties)
	s.Categories = slices.Clone(s.Categories)
	s.RoomTypes = slices.Clone(s.RoomTypes)
	s.RegionalSections = slices.Clone(s.RegionalSections)
	s.RoomTypeGroups = make([]domain.RoomTypeGroup, len(c.state.RoomTypeGroups))
	for i, g := range c.state.RoomTypeGroups {
		g.Variants = slices.Clone(g.Variants)
		s.RoomTypeGroups[i] = g
	}
	return s
}

// Deleting reports whether a delete for the entity is in flight, so its
// row control can show as busy.
func (c *Console) Deleting(kind domain.Kind, id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.deleting[deleteKey(kind, id)]
	return ok
}

// Wait blocks until background resyncs have finished.
func (c *Console) Wait() { c.bg.Wait() }

// refreshQuietly re-fetches after a mutation. A failure is already
// reflected in the state, so it is only logged here.
func (c *Console) refreshQuietly(ctx context.Context) {
	if err := c.Refresh(ctx); err != nil {
		log.Warn().Err(err).Str("err_type", observability.LabelErr(err)).Msg("state resync failed")
	}
}

func (c *Console) record(ctx context.Context, kind domain.Kind, id, action string, err error) {
	e := domain.AuditEntry{Kind: kind, EntityID: id, Action: action, Outcome: "ok"}
	if err != nil {
		e.Outcome = "error"
		e.Message = err.Error()
		if ae := asAPIError(err); ae != nil {
			e.Status = ae.Status
		}
	}
	observability.ObserveMutation(string(kind), action, e.Outcome)

	l := log.Info()
	if err != nil {
		l = log.Warn().Err(err)
	}
	l.Str("kind", string(kind)).Str("id", id).Str("action", action).Msg("mutation")

	if c.audit == nil {
		return
	}
	if aerr := c.audit.RecordMutation(context.WithoutCancel(ctx), e); aerr != nil {
		log.Error().Err(aerr).Str("kind", string(kind)).Str("action", action).Msg("audit write failed")
	}
}

type logNotifier struct{}

func (logNotifier) Notify(level domain.NoticeLevel, message string) {
	log.Info().Str("level", string(level)).Msg(message)
}
