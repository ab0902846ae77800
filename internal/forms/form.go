// Package forms holds the add/edit forms for each entity kind. Every form
// carries the raw operator input as strings and validates it before any
// request is sent upstream.
package forms

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"hosfind_admin/internal/domain"
)

// GeneralField keys a form-wide error that is not tied to one control.
const GeneralField = "general"

// FieldErrors maps a form field to its message. Empty means valid.
type FieldErrors map[string]string

func (fe FieldErrors) Valid() bool { return len(fe) == 0 }

// Fields returns the failing field names, sorted.
func (fe FieldErrors) Fields() []string {
	out := make([]string, 0, len(fe))
	for f := range fe {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// Form is implemented by the per-kind form types.
type Form interface {
	Kind() domain.Kind
	Validate() FieldErrors
	// Payload is the request body for the create/update endpoint.
	// Only meaningful once Validate returns no errors.
	Payload() any
}

// ValidationError blocks a submission that failed local validation.
type ValidationError struct {
	Kind   domain.Kind
	Fields FieldErrors
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s form: %s", e.Kind.Label(), strings.Join(e.Fields.Fields(), ", "))
}

// Check validates f and wraps any failure in a *ValidationError.
func Check(f Form) error {
	if fe := f.Validate(); !fe.Valid() {
		return &ValidationError{Kind: f.Kind(), Fields: fe}
	}
	return nil
}

// ErrorsFrom turns a submission error into what the form shows: the
// per-field messages when the error carries them, otherwise one general
// message.
func ErrorsFrom(err error) FieldErrors {
	if err == nil {
		return nil
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Fields
	}
	var ae *domain.APIError
	if errors.As(err, &ae) {
		out := FieldErrors{}
		for _, d := range ae.Details {
			if d.Field != "" && d.Message != "" {
				out[d.Field] = d.Message
			}
		}
		if len(out) > 0 {
			return out
		}
		if ae.Message != "" {
			return FieldErrors{GeneralField: ae.Message}
		}
	}
	return FieldErrors{GeneralField: err.Error()}
}

// New returns an empty form for kind with the console's defaults filled in.
func New(kind domain.Kind) (Form, error) {
	switch kind {
	case domain.KindProperty:
		return &PropertyForm{Currency: DefaultCurrency}, nil
	case domain.KindCategory:
		return &CategoryForm{}, nil
	case domain.KindRoomType:
		return &RoomTypeForm{Currency: DefaultCurrency}, nil
	case domain.KindRegionalSection:
		return &RegionalSectionForm{IsActive: true}, nil
	}
	return nil, fmt.Errorf("%w: %q", domain.ErrUnknownKind, kind)
}

// Decode reads a JSON-encoded form of the given kind.
func Decode(kind domain.Kind, data []byte) (Form, error) {
	f, err := New(kind)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("decode %s form: %w", kind.Label(), err)
	}
	return f, nil
}
