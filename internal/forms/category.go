package forms

import (
	"strconv"
	"strings"

	"hosfind_admin/internal/domain"
)

type CategoryForm struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
	Type         string `json:"type"`
	IsActive     *bool  `json:"isActive,omitempty"`
	DisplayOrder string `json:"displayOrder"`
}

type CategoryPayload struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ImageURL     string `json:"imageUrl"`
	Type         string `json:"type,omitempty"`
	IsActive     *bool  `json:"isActive,omitempty"`
	DisplayOrder *int   `json:"displayOrder,omitempty"`
}

func (f *CategoryForm) Kind() domain.Kind { return domain.KindCategory }

func (f *CategoryForm) Validate() FieldErrors {
	errs := FieldErrors{}
	required(errs, "name", f.Name, "Name is required")
	describe(errs, f.Description)
	required(errs, "imageUrl", f.ImageURL, "Image URL is required")
	if t := strings.TrimSpace(f.Type); t != "" && !domain.PropertyType(t).Valid() {
		errs["type"] = "Type must be one of hostel, hotel, homestay, apartment, guesthouse"
	}
	optionalInt(errs, "displayOrder", "Display order", f.DisplayOrder)
	return errs
}

func (f *CategoryForm) Payload() any {
	return CategoryPayload{
		Name:         strings.TrimSpace(f.Name),
		Description:  strings.TrimSpace(f.Description),
		ImageURL:     strings.TrimSpace(f.ImageURL),
		Type:         strings.TrimSpace(f.Type),
		IsActive:     f.IsActive,
		DisplayOrder: optionalIntPtr(f.DisplayOrder),
	}
}

func FromCategory(c domain.Category) *CategoryForm {
	active := c.IsActive
	return &CategoryForm{
		Name:         c.Name,
		Description:  c.Description,
		ImageURL:     c.ImageURL,
		Type:         c.Type,
		IsActive:     &active,
		DisplayOrder: strconv.Itoa(c.DisplayOrder),
	}
}
