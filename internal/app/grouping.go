package app

import (
	"strings"

	"hosfind_admin/internal/domain"
)

// GroupRoomTypes groups room-type variants that share a name, compared
// case-insensitively after trimming. Groups keep first-appearance order.
// A room type without a name always gets its own group keyed by its id.
func GroupRoomTypes(in []domain.RoomType) []domain.RoomTypeGroup {
	out := make([]domain.RoomTypeGroup, 0, len(in))
	byName := make(map[string]int, len(in))
	for _, rt := range in {
		name := strings.TrimSpace(rt.Name)
		key := strings.ToLower(name)
		if key == "" {
			out = append(out, domain.RoomTypeGroup{Key: rt.ID, DisplayName: name, Variants: []domain.RoomType{rt}})
			continue
		}
		if i, ok := byName[key]; ok {
			out[i].Variants = append(out[i].Variants, rt)
			continue
		}
		byName[key] = len(out)
		out = append(out, domain.RoomTypeGroup{Key: key, DisplayName: name, Variants: []domain.RoomType{rt}})
	}
	return out
}
