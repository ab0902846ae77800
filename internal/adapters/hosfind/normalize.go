package hosfind

import (
	"bytes"
	"encoding/json"

	"github.com/rs/zerolog/log"

	"hosfind_admin/internal/domain"
)

// Each list endpoint answers with data either as the bare array or as an
// object wrapping it under the endpoint's key. Anything else, including
// success=false, is an empty collection. Items that do not decode are
// skipped individually.

func NormalizeProperties(env Envelope) []domain.Property {
	return normalize[domain.Property](env, "properties")
}

func NormalizeCategories(env Envelope) []domain.Category {
	return normalize[domain.Category](env, "categories")
}

func NormalizeRoomTypes(env Envelope) []domain.RoomType {
	return normalize[domain.RoomType](env, "roomTypes")
}

func NormalizeRegionalSections(env Envelope) []domain.RegionalSection {
	return normalize[domain.RegionalSection](env, "regionalSections")
}

func normalize[T any](env Envelope, key string) []T {
	out := []T{}
	if !env.Success {
		return out
	}
	data := bytes.TrimSpace(env.Data)
	if len(data) == 0 {
		return out
	}

	switch data[0] {
	case '[':
	case '{':
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return out
		}
		inner := bytes.TrimSpace(wrapped[key])
		if len(inner) == 0 || inner[0] != '[' {
			log.Warn().Str("key", key).Msg("wrapped collection missing; treating as empty")
			return out
		}
		data = inner
	default:
		return out
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("collection malformed; treating as empty")
		return out
	}
	for i, raw := range items {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			log.Warn().Err(err).Str("key", key).Int("index", i).Msg("collection item malformed; skipped")
			continue
		}
		out = append(out, v)
	}
	return out
}
