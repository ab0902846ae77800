package forms_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hosfind_admin/internal/domain"
	"hosfind_admin/internal/forms"
)

func validProperty() *forms.PropertyForm {
	return &forms.PropertyForm{
		Name:         "Sunrise Hostel",
		Description:  "Cozy rooms near campus",
		MainImageURL: "https://img.example.com/a.jpg",
		Location:     "East Legon",
		City:         "Accra",
		Region:       "Greater Accra",
		Price:        "120",
		Currency:     "₵",
		PropertyType: "hostel",
		CategoryID:   "cat-1",
	}
}

func TestPropertyForm_Valid(t *testing.T) {
	assert.True(t, validProperty().Validate().Valid())
}

func TestPropertyForm_MissingNameOnly(t *testing.T) {
	f := validProperty()
	f.Name = "   "
	errs := f.Validate()
	assert.Equal(t, []string{"name"}, errs.Fields())
	assert.Equal(t, "Property name is required", errs["name"])
}

func TestPropertyForm_DescriptionLength(t *testing.T) {
	f := validProperty()
	f.Description = "123456789"
	errs := f.Validate()
	assert.Equal(t, "Description must be at least 10 characters long", errs["description"])

	f.Description = "1234567890"
	assert.True(t, f.Validate().Valid())

	// trimmed before counting
	f.Description = "  123456789  "
	assert.Contains(t, f.Validate(), "description")
}

func TestPropertyForm_PricePositivity(t *testing.T) {
	for _, tc := range []struct {
		price string
		ok    bool
	}{
		{"0", false},
		{"-5", false},
		{"abc", false},
		{"0.01", true},
		{" 250.50 ", true},
	} {
		t.Run(fmt.Sprintf("price=%q", tc.price), func(t *testing.T) {
			f := validProperty()
			f.Price = tc.price
			errs := f.Validate()
			if tc.ok {
				assert.True(t, errs.Valid(), "unexpected errors: %v", errs)
			} else {
				assert.Contains(t, errs, "price")
			}
		})
	}
}

func TestPropertyForm_Coordinates(t *testing.T) {
	f := validProperty()
	f.Latitude = "91"
	f.Longitude = "-180"
	errs := f.Validate()
	assert.Equal(t, "Latitude must be between -90 and 90", errs["latitude"])
	assert.NotContains(t, errs, "longitude")

	f.Latitude = "-90"
	f.Longitude = "180.5"
	errs = f.Validate()
	assert.NotContains(t, errs, "latitude")
	assert.Equal(t, "Longitude must be between -180 and 180", errs["longitude"])
}

func TestPropertyForm_CoordinatesRejectNonDecimal(t *testing.T) {
	for _, in := range []string{"NaN", "nan", "Inf", "-Inf", "0x1p-2", "north"} {
		t.Run(in, func(t *testing.T) {
			f := validProperty()
			f.Latitude = in
			f.Longitude = in
			errs := f.Validate()
			assert.Equal(t, "Latitude must be a valid number", errs["latitude"])
			assert.Equal(t, "Longitude must be a valid number", errs["longitude"])
		})
	}
}

func TestPropertyForm_ValidCoordinatesMarshal(t *testing.T) {
	f := validProperty()
	f.Latitude = "5.6037"
	f.Longitude = "-0.1870"
	require.True(t, f.Validate().Valid())

	_, err := json.Marshal(f.Payload())
	require.NoError(t, err)
}

func TestPropertyForm_UnknownType(t *testing.T) {
	f := validProperty()
	f.PropertyType = "castle"
	assert.Contains(t, f.Validate(), "propertyType")
}

func TestPropertyForm_Payload(t *testing.T) {
	f := validProperty()
	f.Price = "0.010"
	f.Latitude = "5.6"
	f.DisplayOrder = "3"
	f.Amenities = []string{" WiFi ", "", "Laundry"}

	b, err := json.Marshal(f.Payload())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, 0.01, got["price"])
	assert.Equal(t, 5.6, got["latitude"])
	assert.NotContains(t, got, "longitude")
	assert.Equal(t, float64(3), got["displayOrder"])
	assert.Equal(t, []any{"WiFi", "Laundry"}, got["amenities"])
}

func TestRoomTypeForm_Rules(t *testing.T) {
	f := &forms.RoomTypeForm{
		Name:        "Deluxe",
		Description: "Two beds and a desk",
		Capacity:    "0",
		Price:       "300",
		GenderType:  "mixed",
	}
	errs := f.Validate()
	assert.Equal(t, []string{"capacity", "propertyId"}, errs.Fields())
	assert.Equal(t, "Capacity must be greater than 0", errs["capacity"])
	assert.Equal(t, "Property is required", errs["propertyId"])

	f.Capacity = "2.5"
	f.PropertyID = "p-1"
	assert.Equal(t, "Capacity must be a whole number", f.Validate()["capacity"])

	f.Capacity = "4"
	assert.True(t, f.Validate().Valid())
}

func TestCategoryForm_Rules(t *testing.T) {
	f := &forms.CategoryForm{Name: "Hostels", Description: "short"}
	errs := f.Validate()
	assert.Equal(t, []string{"description", "imageUrl"}, errs.Fields())
}

func TestRegionalSectionForm_OnlyNameRequired(t *testing.T) {
	f := &forms.RegionalSectionForm{}
	assert.Equal(t, []string{"name"}, f.Validate().Fields())
	f.Name = "Northern"
	assert.True(t, f.Validate().Valid())
}

func TestDecode(t *testing.T) {
	f, err := forms.Decode(domain.KindRoomType, []byte(`{"name":"Single","capacity":"1"}`))
	require.NoError(t, err)
	rt, ok := f.(*forms.RoomTypeForm)
	require.True(t, ok)
	assert.Equal(t, "Single", rt.Name)
	assert.Equal(t, forms.DefaultCurrency, rt.Currency)

	_, err = forms.Decode(domain.Kind("booking"), []byte(`{}`))
	assert.ErrorIs(t, err, domain.ErrUnknownKind)
}

func TestFromProperty_RoundTripsIntoValidForm(t *testing.T) {
	p := domain.Property{
		ID:           "p-9",
		Name:         "Harbor View",
		Description:  "Apartments facing the harbor",
		Price:        decimal.RequireFromString("450.00"),
		Location:     "Osu",
		City:         "Accra",
		Region:       "Greater Accra",
		PropertyType: domain.PropertyApartment,
		Category:     &domain.CategoryRef{ID: "cat-2", Name: "Apartments"},
		MainImageURL: "https://img.example.com/h.jpg",
		Latitude:     decimal.NewNullDecimal(decimal.RequireFromString("5.55")),
	}
	f := forms.FromProperty(p)
	assert.Equal(t, "cat-2", f.CategoryID)
	assert.Equal(t, "450", f.Price)
	assert.Equal(t, "5.55", f.Latitude)
	assert.Equal(t, "", f.Longitude)
	assert.Equal(t, forms.DefaultCurrency, f.Currency)
	assert.True(t, f.Validate().Valid())
}

func TestErrorsFrom(t *testing.T) {
	fieldErr := &domain.APIError{
		Status:  400,
		Message: "Validation failed",
		Details: []domain.FieldError{{Field: "name", Message: "Name already taken"}, {Field: "", Message: "ignored"}},
	}
	assert.Equal(t, forms.FieldErrors{"name": "Name already taken"}, forms.ErrorsFrom(fmt.Errorf("create: %w", fieldErr)))

	general := &domain.APIError{Status: 500, Message: "Internal error"}
	assert.Equal(t, forms.FieldErrors{forms.GeneralField: "Internal error"}, forms.ErrorsFrom(general))

	assert.Equal(t, forms.FieldErrors{forms.GeneralField: "boom"}, forms.ErrorsFrom(errors.New("boom")))
	assert.Nil(t, forms.ErrorsFrom(nil))

	ve := forms.Check(&forms.CategoryForm{})
	var target *forms.ValidationError
	require.ErrorAs(t, ve, &target)
	assert.Equal(t, target.Fields, forms.ErrorsFrom(ve))
}
