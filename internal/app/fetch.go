package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"hosfind_admin/internal/adapters/observability"
	"hosfind_admin/internal/domain"
)

type collections struct {
	properties       []domain.Property
	categories       []domain.Category
	roomTypes        []domain.RoomType
	regionalSections []domain.RegionalSection
}

// Refresh re-fetches all four collections concurrently and replaces the
// state wholesale. If any request fails the state carries only the error
// message and empty collections. Calling Refresh again retries.
func (c *Console) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.inflight++
	c.state.Loading = true
	c.state.Error = ""
	c.mu.Unlock()

	start := time.Now()
	col, err := c.fetchAll(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.inflight--
	if gen != c.gen {
		// a newer refresh or a local delete superseded this result
		c.state.Loading = c.inflight > 0
		observability.ObserveRefresh("stale")
		return err
	}
	if err != nil {
		c.state = emptyState()
		c.state.Loading = c.inflight > 0
		c.state.Error = FetchFailedMessage
		observability.ObserveRefresh("error")
		log.Error().Err(err).Dur("duration", time.Since(start)).Msg("fetch collections failed")
		return err
	}

	c.state = State{
		Loading:          c.inflight > 0,
		FetchedAt:        time.Now(),
		Properties:       col.properties,
		Categories:       col.categories,
		RoomTypes:        col.roomTypes,
		RoomTypeGroups:   GroupRoomTypes(col.roomTypes),
		RegionalSections: col.regionalSections,
	}
	observability.ObserveRefresh("ok")
	log.Debug().
		Int("properties", len(col.properties)).
		Int("categories", len(col.categories)).
		Int("room_types", len(col.roomTypes)).
		Int("regional_sections", len(col.regionalSections)).
		Dur("duration", time.Since(start)).
		Msg("collections fetched")
	return nil
}

func (c *Console) fetchAll(ctx context.Context) (collections, error) {
	var out collections
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := c.api.ListProperties(gctx)
		if err != nil {
			return fmt.Errorf("list properties: %w", err)
		}
		out.properties = orEmpty(v)
		return nil
	})
	g.Go(func() error {
		v, err := c.api.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		out.categories = orEmpty(v)
		return nil
	})
	g.Go(func() error {
		v, err := c.api.ListRoomTypes(gctx)
		if err != nil {
			return fmt.Errorf("list room types: %w", err)
		}
		out.roomTypes = orEmpty(v)
		return nil
	})
	g.Go(func() error {
		v, err := c.api.ListRegionalSections(gctx)
		if err != nil {
			return fmt.Errorf("list regional sections: %w", err)
		}
		out.regionalSections = orEmpty(v)
		return nil
	})
	if err := g.Wait(); err != nil {
		return collections{}, err
	}
	return out, nil
}

func orEmpty[T any](v []T) []T {
	if v == nil {
		return []T{}
	}
	return v
}
