package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type GenderType string

const (
	GenderMale   GenderType = "male"
	GenderFemale GenderType = "female"
	GenderMixed  GenderType = "mixed"
	GenderAny    GenderType = "any"
)

var GenderTypes = []GenderType{GenderMale, GenderFemale, GenderMixed, GenderAny}

func (g GenderType) Valid() bool {
	for _, v := range GenderTypes {
		if g == v {
			return true
		}
	}
	return false
}

type RoomType struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Description         string          `json:"description"`
	Capacity            int             `json:"capacity"`
	Price               decimal.Decimal `json:"price"`
	Currency            string          `json:"currency,omitempty"`
	BillingPeriod       string          `json:"billingPeriod,omitempty"`
	GenderType          GenderType      `json:"genderType,omitempty"`
	Amenities           []string        `json:"amenities,omitempty"`
	ImageURL            string          `json:"imageUrl,omitempty"`
	AdditionalImageURLs []string        `json:"additionalImageUrls,omitempty"`
	PropertyID          string          `json:"propertyId,omitempty"`
	AvailableRooms      *int            `json:"availableRooms,omitempty"`
	TotalRooms          *int            `json:"totalRooms,omitempty"`
	IsActive            bool            `json:"isActive"`
	CreatedAt           time.Time       `json:"createdAt"`
	UpdatedAt           time.Time       `json:"updatedAt"`
}

// RoomTypeGroup collects room-type variants that share a display name.
type RoomTypeGroup struct {
	Key         string     `json:"key"`
	DisplayName string     `json:"name"`
	Variants    []RoomType `json:"variants"`
}
