package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PropertyType string

const (
	PropertyHostel     PropertyType = "hostel"
	PropertyHotel      PropertyType = "hotel"
	PropertyHomestay   PropertyType = "homestay"
	PropertyApartment  PropertyType = "apartment"
	PropertyGuesthouse PropertyType = "guesthouse"
)

var PropertyTypes = []PropertyType{PropertyHostel, PropertyHotel, PropertyHomestay, PropertyApartment, PropertyGuesthouse}

func (t PropertyType) Valid() bool {
	for _, v := range PropertyTypes {
		if t == v {
			return true
		}
	}
	return false
}

// CategoryRef is the category summary embedded in property listings.
type CategoryRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

type Property struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	Price        decimal.Decimal     `json:"price"`
	Currency     string              `json:"currency,omitempty"`
	Location     string              `json:"location"`
	City         string              `json:"city"`
	Region       string              `json:"region"`
	Latitude     decimal.NullDecimal `json:"latitude"`
	Longitude    decimal.NullDecimal `json:"longitude"`
	PropertyType PropertyType        `json:"propertyType"`
	CategoryID   string              `json:"categoryId,omitempty"`
	Category     *CategoryRef        `json:"category,omitempty"`
	Status       string              `json:"status"`
	IsActive     bool                `json:"isActive"`
	IsFeatured   bool                `json:"isFeatured"`
	DisplayOrder int                 `json:"displayOrder"`
	Rating       decimal.Decimal     `json:"rating"`
	ReviewCount  int                 `json:"reviewCount"`
	MainImageURL string              `json:"mainImageUrl,omitempty"`
	Amenities    []string            `json:"amenities,omitempty"`
	Images       []string            `json:"images,omitempty"`
	CreatedAt    time.Time           `json:"createdAt"`
	UpdatedAt    time.Time           `json:"updatedAt"`
}

// ResolvedCategoryID prefers the explicit foreign key and falls back to the
// embedded category reference.
func (p Property) ResolvedCategoryID() string {
	if p.CategoryID != "" {
		return p.CategoryID
	}
	if p.Category != nil {
		return p.Category.ID
	}
	return ""
}
