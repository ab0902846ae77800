package domain

import "time"

type Category struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	Type          string    `json:"type,omitempty"` // optional property-type tag
	IsActive      bool      `json:"isActive"`
	DisplayOrder  int       `json:"displayOrder"`
	PropertyCount int       `json:"propertyCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type RegionalSection struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	IsActive      bool      `json:"isActive"`
	DisplayOrder  int       `json:"displayOrder"`
	PropertyCount int       `json:"propertyCount"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
