// Command snapshot fetches the four collections once and prints the
// console state as JSON. It exits non-zero when the fetch fails.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"hosfind_admin/internal/adapters/hosfind"
	"hosfind_admin/internal/adapters/observability"
	"hosfind_admin/internal/app"
	"hosfind_admin/internal/shared"
)

func main() {
	groupsOnly := flag.Bool("groups", false, "print only the grouped room types")
	timeout := flag.Duration("timeout", time.Minute, "overall deadline")
	flag.Parse()

	cfg := shared.Load()

	// stdout carries the snapshot
	log.Logger = observability.NewLoggerTo(os.Stderr, cfg.AppEnv)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	sessions := &app.MemorySession{}
	client, err := hosfind.New(cfg.APIBaseURL, sessions, cfg.APIRPS, cfg.APITimeout)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize API client")
	}
	if cfg.AdminEmail != "" {
		if err := app.NewSession(client, sessions).Login(ctx, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("login failed")
		}
	}

	console := app.NewConsole(client, app.Options{})
	if err := console.Refresh(ctx); err != nil {
		log.Fatal().Err(err).Msg("fetch failed")
	}
	st := console.Snapshot()
	log.Info().
		Int("properties", len(st.Properties)).
		Int("categories", len(st.Categories)).
		Int("room_types", len(st.RoomTypes)).
		Int("room_type_groups", len(st.RoomTypeGroups)).
		Int("regional_sections", len(st.RegionalSections)).
		Msg("snapshot completed")

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	var out any = st
	if *groupsOnly {
		out = st.RoomTypeGroups
	}
	if err := enc.Encode(out); err != nil {
		log.Fatal().Err(err).Msg("write snapshot failed")
	}
}
