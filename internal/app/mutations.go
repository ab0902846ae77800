package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"hosfind_admin/internal/adapters/observability"
	"hosfind_admin/internal/domain"
	"hosfind_admin/internal/forms"
)

// DeleteFailedMessage is the notice shown when the API gives no reason.
const DeleteFailedMessage = "Failed to delete item. Please try again."

// Create validates f and, when it passes, posts it upstream. Validation
// failures return a *forms.ValidationError without any request being
// sent. API failures are returned unchanged so the form can show them.
func (c *Console) Create(ctx context.Context, f forms.Form) (json.RawMessage, error) {
	if err := forms.Check(f); err != nil {
		observability.ObserveMutation(string(f.Kind()), "create", "invalid")
		return nil, err
	}
	out, err := c.api.Create(ctx, f.Kind(), f.Payload())
	c.record(ctx, f.Kind(), "", "create", err)
	if err != nil {
		return nil, err
	}
	c.notify.Notify(domain.NoticeSuccess, f.Kind().Title()+" created successfully")
	c.refreshQuietly(ctx)
	return out, nil
}

// Edit is a form bound to the entity it updates.
type Edit struct {
	Kind domain.Kind `json:"kind"`
	ID   string      `json:"id"`
	Form forms.Form  `json:"form"`
}

// EditForm pre-fills a form from the entity in the current state.
func (c *Console) EditForm(kind domain.Kind, id string) (Edit, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var f forms.Form
	switch kind {
	case domain.KindProperty:
		if i := slices.IndexFunc(c.state.Properties, func(p domain.Property) bool { return p.ID == id }); i >= 0 {
			f = forms.FromProperty(c.state.Properties[i])
		}
	case domain.KindCategory:
		if i := slices.IndexFunc(c.state.Categories, func(v domain.Category) bool { return v.ID == id }); i >= 0 {
			f = forms.FromCategory(c.state.Categories[i])
		}
	case domain.KindRoomType:
		if i := slices.IndexFunc(c.state.RoomTypes, func(v domain.RoomType) bool { return v.ID == id }); i >= 0 {
			f = forms.FromRoomType(c.state.RoomTypes[i])
		}
	case domain.KindRegionalSection:
		if i := slices.IndexFunc(c.state.RegionalSections, func(v domain.RegionalSection) bool { return v.ID == id }); i >= 0 {
			f = forms.FromRegionalSection(c.state.RegionalSections[i])
		}
	default:
		return Edit{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	if f == nil {
		return Edit{}, fmt.Errorf("%s %s: %w", kind.Label(), id, domain.ErrNotFound)
	}
	return Edit{Kind: kind, ID: id, Form: f}, nil
}

// Update validates the edited form and puts it to the entity's endpoint.
// The entity id is the one the edit was opened for, never a value from
// the form body.
func (c *Console) Update(ctx context.Context, e Edit) (json.RawMessage, error) {
	if e.Form == nil || e.ID == "" {
		return nil, fmt.Errorf("update %s: %w", e.Kind.Label(), domain.ErrNotFound)
	}
	if e.Form.Kind() != e.Kind {
		return nil, fmt.Errorf("%w: %s form for %s", domain.ErrUnknownKind, e.Form.Kind(), e.Kind)
	}
	if err := forms.Check(e.Form); err != nil {
		observability.ObserveMutation(string(e.Kind), "update", "invalid")
		return nil, err
	}
	out, err := c.api.Update(ctx, e.Kind, e.ID, e.Form.Payload())
	c.record(ctx, e.Kind, e.ID, "update", err)
	if err != nil {
		return nil, err
	}
	c.notify.Notify(domain.NoticeSuccess, e.Kind.Title()+" updated successfully")
	c.refreshQuietly(ctx)
	return out, nil
}

// DeletePrompt is a pending delete confirmation. Nothing is sent upstream
// until it is confirmed with its token.
type DeletePrompt struct {
	Token   string      `json:"token"`
	Kind    domain.Kind `json:"kind"`
	ID      string      `json:"id"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
}

// RequestDelete opens a confirmation prompt for the entity.
func (c *Console) RequestDelete(kind domain.Kind, id string) (DeletePrompt, error) {
	if !kind.Valid() {
		return DeletePrompt{}, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
	}
	if id == "" {
		return DeletePrompt{}, fmt.Errorf("delete %s: %w", kind.Label(), domain.ErrNotFound)
	}
	p := DeletePrompt{
		Token: uuid.NewString(),
		Kind:  kind,
		ID:    id,
		Title: "Delete " + kind.Label(),
		Message: fmt.Sprintf("Are you sure you want to delete this %s? "+
			"This action will permanently remove it from the system.", kind.Label()),
	}
	c.mu.Lock()
	c.prompts[p.Token] = p
	c.mu.Unlock()
	return p, nil
}

// CancelDelete drops a pending prompt. It reports whether one existed.
func (c *Console) CancelDelete(token string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.prompts[token]
	delete(c.prompts, token)
	return ok
}

// ConfirmDelete sends the delete for a pending prompt. At most one delete
// per entity is in flight; a second confirmation for the same entity gets
// ErrDeleteInProgress.
//
// On success the entity is removed from the local state without waiting
// for a refetch, and a background resync is scheduled. On failure the
// operator gets an error notice, the prompt stays open and the state is
// refreshed so it reflects the server again.
func (c *Console) ConfirmDelete(ctx context.Context, token string) error {
	c.mu.Lock()
	p, ok := c.prompts[token]
	if !ok {
		c.mu.Unlock()
		return domain.ErrNoConfirmation
	}
	key := deleteKey(p.Kind, p.ID)
	if _, busy := c.deleting[key]; busy {
		c.mu.Unlock()
		observability.ObserveMutation(string(p.Kind), "delete", "busy")
		return fmt.Errorf("%s %s: %w", p.Kind.Label(), p.ID, domain.ErrDeleteInProgress)
	}
	c.deleting[key] = struct{}{}
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.deleting, key)
		c.mu.Unlock()
	}()

	err := c.api.Delete(ctx, p.Kind, p.ID)
	c.record(ctx, p.Kind, p.ID, "delete", err)
	if err != nil {
		msg := DeleteFailedMessage
		if ae := asAPIError(err); ae != nil && ae.Message != "" {
			msg = ae.Message
		}
		c.notify.Notify(domain.NoticeError, msg)
		c.refreshQuietly(ctx)
		return err
	}

	c.mu.Lock()
	c.removeLocked(p.Kind, p.ID)
	// refreshes started before the delete still list the entity
	c.gen++
	delete(c.prompts, token)
	c.mu.Unlock()

	c.notify.Notify(domain.NoticeSuccess, p.Kind.Title()+" deleted successfully")
	c.scheduleResync()
	return nil
}

func (c *Console) removeLocked(kind domain.Kind, id string) {
	switch kind {
	case domain.KindProperty:
		c.state.Properties = slices.DeleteFunc(slices.Clone(c.state.Properties), func(v domain.Property) bool { return v.ID == id })
	case domain.KindCategory:
		c.state.Categories = slices.DeleteFunc(slices.Clone(c.state.Categories), func(v domain.Category) bool { return v.ID == id })
	case domain.KindRoomType:
		c.state.RoomTypes = slices.DeleteFunc(slices.Clone(c.state.RoomTypes), func(v domain.RoomType) bool { return v.ID == id })
		c.state.RoomTypeGroups = GroupRoomTypes(c.state.RoomTypes)
	case domain.KindRegionalSection:
		c.state.RegionalSections = slices.DeleteFunc(slices.Clone(c.state.RegionalSections), func(v domain.RegionalSection) bool { return v.ID == id })
	}
}

func (c *Console) scheduleResync() {
	if c.resync <= 0 {
		return
	}
	c.bg.Add(1)
	go func() {
		defer c.bg.Done()
		time.Sleep(c.resync)
		ctx, cancel := context.WithTimeout(context.Background(), resyncTimeout)
		defer cancel()
		c.refreshQuietly(ctx)
	}()
}

const resyncTimeout = 30 * time.Second

func deleteKey(kind domain.Kind, id string) string { return string(kind) + "/" + id }

func asAPIError(err error) *domain.APIError {
	var ae *domain.APIError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}
