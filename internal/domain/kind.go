package domain

import (
	"fmt"
	"strings"
)

// Kind tags an entity type; it selects the API endpoints and the form rules.
type Kind string

const (
	KindProperty        Kind = "property"
	KindCategory        Kind = "category"
	KindRoomType        Kind = "room-type"
	KindRegionalSection Kind = "regional-section"
)

// Kinds lists every entity kind in console tab order.
var Kinds = []Kind{KindProperty, KindCategory, KindRoomType, KindRegionalSection}

var collections = map[Kind]string{
	KindProperty:        "properties",
	KindCategory:        "categories",
	KindRoomType:        "room-types",
	KindRegionalSection: "regional-sections",
}

// ParseKind accepts either the singular tag ("room-type") or the plural
// collection segment ("room-types").
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, c := range collections {
		if s == string(k) || s == c {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

func (k Kind) Valid() bool {
	_, ok := collections[k]
	return ok
}

// Collection is the plural path segment used by both the upstream API and
// the console routes.
func (k Kind) Collection() string { return collections[k] }

// Label is the lower-case human name, e.g. "room type".
func (k Kind) Label() string { return strings.ReplaceAll(string(k), "-", " ") }

// Title is Label with the first letter upper-cased, e.g. "Room type".
func (k Kind) Title() string {
	l := k.Label()
	if l == "" {
		return ""
	}
	return strings.ToUpper(l[:1]) + l[1:]
}
