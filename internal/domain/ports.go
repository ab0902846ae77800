package domain

import (
	"context"
	"encoding/json"
	"time"
)

// AdminAPI is the slice of the booking platform's REST API the console
// consumes. Mutations take the already-validated request payload.
type AdminAPI interface {
	ListProperties(ctx context.Context) ([]Property, error)
	ListCategories(ctx context.Context) ([]Category, error)
	ListRoomTypes(ctx context.Context) ([]RoomType, error)
	ListRegionalSections(ctx context.Context) ([]RegionalSection, error)

	Create(ctx context.Context, kind Kind, body any) (json.RawMessage, error)
	Update(ctx context.Context, kind Kind, id string, body any) (json.RawMessage, error)
	Delete(ctx context.Context, kind Kind, id string) error
}

type Authenticator interface {
	Login(ctx context.Context, email, password string) (string, error)
}

// TokenSource yields the current access token, or "" when signed out.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// SessionStore is the persisted session storage holding the admin token.
type SessionStore interface {
	TokenSource
	SetToken(ctx context.Context, token string) error
	ClearToken(ctx context.Context) error
}

type NoticeLevel string

const (
	NoticeSuccess NoticeLevel = "success"
	NoticeError   NoticeLevel = "error"
	NoticeInfo    NoticeLevel = "info"
)

type Notice struct {
	ID        string      `json:"id"`
	Level     NoticeLevel `json:"type"`
	Message   string      `json:"message"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Notifier surfaces transient messages (toasts) to the operator.
type Notifier interface {
	Notify(level NoticeLevel, message string)
}

type AuditEntry struct {
	Kind     Kind   `json:"kind"`
	EntityID string `json:"entityId,omitempty"`
	Action   string `json:"action"`           // create|update|delete
	Outcome  string `json:"outcome"`          // ok|error
	Status   int    `json:"status,omitempty"` // upstream HTTP status, 0 when no response
	Message  string `json:"message,omitempty"`
}

// AuditRecord is a stored AuditEntry.
type AuditRecord struct {
	ID int64 `json:"id"`
	AuditEntry
	CreatedAt time.Time `json:"createdAt"`
}

type AuditLog interface {
	RecordMutation(ctx context.Context, e AuditEntry) error
	Recent(ctx context.Context, limit int) ([]AuditRecord, error)
}
