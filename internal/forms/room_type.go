package forms

import (
	"encoding/json"
	"slices"
	"strconv"
	"strings"

	"hosfind_admin/internal/domain"
)

type RoomTypeForm struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Capacity            string   `json:"capacity"`
	Price               string   `json:"price"`
	Currency            string   `json:"currency"`
	BillingPeriod       string   `json:"billingPeriod"`
	GenderType          string   `json:"genderType"`
	PropertyID          string   `json:"propertyId"`
	ImageURL            string   `json:"imageUrl"`
	AdditionalImageURLs []string `json:"additionalImageUrls"`
	Amenities           []string `json:"amenities"`
}

type RoomTypePayload struct {
	Name                string      `json:"name"`
	Description         string      `json:"description"`
	Capacity            int         `json:"capacity"`
	Price               json.Number `json:"price"`
	Currency            string      `json:"currency,omitempty"`
	BillingPeriod       string      `json:"billingPeriod,omitempty"`
	GenderType          string      `json:"genderType"`
	PropertyID          string      `json:"propertyId"`
	ImageURL            string      `json:"imageUrl,omitempty"`
	AdditionalImageURLs []string    `json:"additionalImageUrls,omitempty"`
	Amenities           []string    `json:"amenities"`
}

func (f *RoomTypeForm) Kind() domain.Kind { return domain.KindRoomType }

func (f *RoomTypeForm) Validate() FieldErrors {
	errs := FieldErrors{}
	required(errs, "name", f.Name, "Name is required")
	describe(errs, f.Description)
	required(errs, "capacity", f.Capacity, "Capacity is required")
	required(errs, "price", f.Price, "Price is required")
	required(errs, "genderType", f.GenderType, "Gender type is required")
	required(errs, "propertyId", f.PropertyID, "Property is required")

	positiveInt(errs, "capacity", "Capacity", f.Capacity)
	positiveDecimal(errs, "price", "Price", f.Price)
	if g := strings.TrimSpace(f.GenderType); g != "" && !domain.GenderType(g).Valid() {
		errs["genderType"] = "Gender type must be one of male, female, mixed, any"
	}
	return errs
}

func (f *RoomTypeForm) Payload() any {
	capacity, _ := strconv.Atoi(strings.TrimSpace(f.Capacity))
	return RoomTypePayload{
		Name:                strings.TrimSpace(f.Name),
		Description:         strings.TrimSpace(f.Description),
		Capacity:            capacity,
		Price:               number(f.Price),
		Currency:            f.Currency,
		BillingPeriod:       strings.TrimSpace(f.BillingPeriod),
		GenderType:          strings.TrimSpace(f.GenderType),
		PropertyID:          strings.TrimSpace(f.PropertyID),
		ImageURL:            strings.TrimSpace(f.ImageURL),
		AdditionalImageURLs: compact(f.AdditionalImageURLs),
		Amenities:           compact(f.Amenities),
	}
}

func FromRoomType(r domain.RoomType) *RoomTypeForm {
	f := &RoomTypeForm{
		Name:                r.Name,
		Description:         r.Description,
		Price:               decimalInput(r.Price),
		Currency:            r.Currency,
		BillingPeriod:       r.BillingPeriod,
		GenderType:          string(r.GenderType),
		PropertyID:          r.PropertyID,
		ImageURL:            r.ImageURL,
		AdditionalImageURLs: slices.Clone(r.AdditionalImageURLs),
		Amenities:           slices.Clone(r.Amenities),
	}
	if r.Capacity > 0 {
		f.Capacity = strconv.Itoa(r.Capacity)
	}
	if f.Currency == "" {
		f.Currency = DefaultCurrency
	}
	return f
}
