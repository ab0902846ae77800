package forms

import (
	"strconv"
	"strings"

	"hosfind_admin/internal/domain"
)

// RegionalSectionForm has no description: sections are a name plus
// ordering, so only the name is required.
type RegionalSectionForm struct {
	Name         string `json:"name"`
	IsActive     bool   `json:"isActive"`
	DisplayOrder string `json:"displayOrder"`
}

type RegionalSectionPayload struct {
	Name         string `json:"name"`
	IsActive     bool   `json:"isActive"`
	DisplayOrder *int   `json:"displayOrder,omitempty"`
}

func (f *RegionalSectionForm) Kind() domain.Kind { return domain.KindRegionalSection }

func (f *RegionalSectionForm) Validate() FieldErrors {
	errs := FieldErrors{}
	required(errs, "name", f.Name, "Name is required")
	optionalInt(errs, "displayOrder", "Display order", f.DisplayOrder)
	return errs
}

func (f *RegionalSectionForm) Payload() any {
	return RegionalSectionPayload{
		Name:         strings.TrimSpace(f.Name),
		IsActive:     f.IsActive,
		DisplayOrder: optionalIntPtr(f.DisplayOrder),
	}
}

func FromRegionalSection(s domain.RegionalSection) *RegionalSectionForm {
	return &RegionalSectionForm{
		Name:         s.Name,
		IsActive:     s.IsActive,
		DisplayOrder: strconv.Itoa(s.DisplayOrder),
	}
}
