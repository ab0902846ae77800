package forms

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"hosfind_admin/internal/domain"
)

type PropertyForm struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	MainImageURL        string   `json:"mainImageUrl"`
	Location            string   `json:"location"`
	City                string   `json:"city"`
	Region              string   `json:"region"`
	Latitude            string   `json:"latitude"`
	Longitude           string   `json:"longitude"`
	Price               string   `json:"price"`
	Currency            string   `json:"currency"`
	PropertyType        string   `json:"propertyType"`
	CategoryID          string   `json:"categoryId"`
	IsFeatured          bool     `json:"isFeatured"`
	DisplayOrder        string   `json:"displayOrder"`
	Amenities           []string `json:"amenities"`
	AdditionalImageURLs []string `json:"additionalImageUrls"`
}

type PropertyPayload struct {
	Name                string       `json:"name"`
	Description         string       `json:"description"`
	MainImageURL        string       `json:"mainImageUrl"`
	Location            string       `json:"location"`
	City                string       `json:"city"`
	Region              string       `json:"region"`
	Latitude            *json.Number `json:"latitude,omitempty"`
	Longitude           *json.Number `json:"longitude,omitempty"`
	Price               json.Number  `json:"price"`
	Currency            string       `json:"currency,omitempty"`
	PropertyType        string       `json:"propertyType"`
	CategoryID          string       `json:"categoryId"`
	IsFeatured          bool         `json:"isFeatured"`
	DisplayOrder        *int         `json:"displayOrder,omitempty"`
	Amenities           []string     `json:"amenities"`
	AdditionalImageURLs []string     `json:"additionalImageUrls,omitempty"`
}

func (f *PropertyForm) Kind() domain.Kind { return domain.KindProperty }

func (f *PropertyForm) Validate() FieldErrors {
	errs := FieldErrors{}
	required(errs, "name", f.Name, "Property name is required")
	describe(errs, f.Description)
	required(errs, "mainImageUrl", f.MainImageURL, "Main image URL is required")
	required(errs, "location", f.Location, "Location is required")
	required(errs, "city", f.City, "City is required")
	required(errs, "region", f.Region, "Region is required")
	required(errs, "price", f.Price, "Price is required")
	required(errs, "propertyType", f.PropertyType, "Property type is required")
	required(errs, "categoryId", f.CategoryID, "Category is required")

	positiveDecimal(errs, "price", "Price", f.Price)
	if t := strings.TrimSpace(f.PropertyType); t != "" && !domain.PropertyType(t).Valid() {
		errs["propertyType"] = "Property type must be one of hostel, hotel, homestay, apartment, guesthouse"
	}
	within(errs, "latitude", "Latitude", f.Latitude, -90, 90)
	within(errs, "longitude", "Longitude", f.Longitude, -180, 180)
	optionalInt(errs, "displayOrder", "Display order", f.DisplayOrder)
	return errs
}

func (f *PropertyForm) Payload() any {
	return PropertyPayload{
		Name:                strings.TrimSpace(f.Name),
		Description:         strings.TrimSpace(f.Description),
		MainImageURL:        strings.TrimSpace(f.MainImageURL),
		Location:            strings.TrimSpace(f.Location),
		City:                strings.TrimSpace(f.City),
		Region:              strings.TrimSpace(f.Region),
		Latitude:            optionalNumber(f.Latitude),
		Longitude:           optionalNumber(f.Longitude),
		Price:               number(f.Price),
		Currency:            f.Currency,
		PropertyType:        strings.TrimSpace(f.PropertyType),
		CategoryID:          strings.TrimSpace(f.CategoryID),
		IsFeatured:          f.IsFeatured,
		DisplayOrder:        optionalIntPtr(f.DisplayOrder),
		Amenities:           compact(f.Amenities),
		AdditionalImageURLs: compact(f.AdditionalImageURLs),
	}
}

// FromProperty pre-populates an edit form from a fetched property.
func FromProperty(p domain.Property) *PropertyForm {
	f := &PropertyForm{
		Name:                p.Name,
		Description:         p.Description,
		MainImageURL:        p.MainImageURL,
		Location:            p.Location,
		City:                p.City,
		Region:              p.Region,
		Latitude:            nullDecimalInput(p.Latitude),
		Longitude:           nullDecimalInput(p.Longitude),
		Price:               decimalInput(p.Price),
		Currency:            p.Currency,
		PropertyType:        string(p.PropertyType),
		CategoryID:          p.ResolvedCategoryID(),
		IsFeatured:          p.IsFeatured,
		DisplayOrder:        strconv.Itoa(p.DisplayOrder),
		Amenities:           slices.Clone(p.Amenities),
		AdditionalImageURLs: slices.Clone(p.Images),
	}
	if f.Currency == "" {
		f.Currency = DefaultCurrency
	}
	return f
}
