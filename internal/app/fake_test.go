package app_test

import (
	"context"
	"encoding/json"
	"sync"

	"hosfind_admin/internal/domain"
)

type call struct {
	Method string
	Kind   domain.Kind
	ID     string
	Body   any
}

// fakeAPI serves fixed collections and records every mutation.
type fakeAPI struct {
	mu sync.Mutex

	properties []domain.Property
	categories []domain.Category
	roomTypes  []domain.RoomType
	sections   []domain.RegionalSection

	listErr   map[string]error
	// listGate, when set, blocks ListProperties until it is closed.
	listGate  chan struct{}
	mutateErr error
	// deleteGate, when set, blocks Delete until it is closed.
	deleteGate chan struct{}
	deleting   chan struct{}

	lists int
	calls []call
}

func (f *fakeAPI) listed(name string) error {
	f.mu.Lock()
	gate := f.listGate
	if name == "properties" {
		f.lists++
	}
	err := f.listErr[name]
	f.mu.Unlock()
	if gate != nil && name == "properties" {
		<-gate
	}
	return err
}

func (f *fakeAPI) ListProperties(context.Context) ([]domain.Property, error) {
	if err := f.listed("properties"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Property(nil), f.properties...), nil
}

func (f *fakeAPI) ListCategories(context.Context) ([]domain.Category, error) {
	if err := f.listed("categories"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Category(nil), f.categories...), nil
}

func (f *fakeAPI) ListRoomTypes(context.Context) ([]domain.RoomType, error) {
	if err := f.listed("roomTypes"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.RoomType(nil), f.roomTypes...), nil
}

func (f *fakeAPI) ListRegionalSections(context.Context) ([]domain.RegionalSection, error) {
	if err := f.listed("regionalSections"); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.RegionalSection(nil), f.sections...), nil
}

func (f *fakeAPI) Create(_ context.Context, kind domain.Kind, body any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{Method: "create", Kind: kind, Body: body})
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	return json.RawMessage(`{"id":"new"}`), nil
}

func (f *fakeAPI) Update(_ context.Context, kind domain.Kind, id string, body any) (json.RawMessage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, call{Method: "update", Kind: kind, ID: id, Body: body})
	if f.mutateErr != nil {
		return nil, f.mutateErr
	}
	return json.RawMessage(`{}`), nil
}

func (f *fakeAPI) Delete(_ context.Context, kind domain.Kind, id string) error {
	f.mu.Lock()
	f.calls = append(f.calls, call{Method: "delete", Kind: kind, ID: id})
	gate, started, err := f.deleteGate, f.deleting, f.mutateErr
	f.mu.Unlock()
	if started != nil {
		started <- struct{}{}
	}
	if gate != nil {
		<-gate
	}
	return err
}

func (f *fakeAPI) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

func (f *fakeAPI) mutations() []call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]call(nil), f.calls...)
}

type notices struct {
	mu  sync.Mutex
	got []domain.Notice
}

func (n *notices) Notify(level domain.NoticeLevel, message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.got = append(n.got, domain.Notice{Level: level, Message: message})
}

func (n *notices) last() domain.Notice {
	n.mu.Lock()
	defer n.mu.Unlock()
	if len(n.got) == 0 {
		return domain.Notice{}
	}
	return n.got[len(n.got)-1]
}

type auditSpy struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (a *auditSpy) RecordMutation(_ context.Context, e domain.AuditEntry) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
	return nil
}

func (a *auditSpy) Recent(context.Context, int) ([]domain.AuditRecord, error) { return nil, nil }
