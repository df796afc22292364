// tycoonsim runs the business simulation server: load or create a world,
// start the daily tick loop, and serve the HTTP API.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/keldine/worldtycoon/internal/api"
	"github.com/keldine/worldtycoon/internal/config"
	"github.com/keldine/worldtycoon/internal/countries"
	"github.com/keldine/worldtycoon/internal/engine"
	"github.com/keldine/worldtycoon/internal/persistence"
)

func main() {
	configPath := flag.String("config", "tycoon.yaml", "path to config file")
	fresh := flag.Bool("fresh", false, "ignore any saved game and start over")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})))

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("config load failed", "error", err)
		os.Exit(1)
	}

	db, err := persistence.Open(cfg.DBPath)
	if err != nil {
		slog.Error("database open failed", "error", err, "path", cfg.DBPath)
		os.Exit(1)
	}
	defer db.Close()

	world, restored := loadOrCreate(cfg, db, *fresh)

	eng := engine.NewEngine(world, time.Duration(cfg.TickIntervalMS)*time.Millisecond)
	if restored {
		// A restored game waits for the client to resume.
		eng.Pause()
	}

	server := &api.Server{
		World:    world,
		Eng:      eng,
		DB:       db,
		Addr:     cfg.APIAddr,
		AdminKey: cfg.AdminToken,
	}
	server.Start()
	eng.OnDay = func(day int) {
		server.NotifyDay(day)
		persistNews(world, db)
	}

	// Autosave and shutdown handling.
	go autosave(world, db, 5*time.Minute)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		slog.Info("shutting down")
		eng.Stop()
	}()

	eng.Run()
	save(world, db)
}

// loadOrCreate restores the save slot if present, otherwise builds a new
// world from config.
func loadOrCreate(cfg config.Config, db *persistence.DB, fresh bool) (*engine.World, bool) {
	if fresh {
		if err := db.DeleteSlot(persistence.DefaultSlot); err != nil {
			slog.Warn("could not clear save slot", "error", err)
		}
	} else if db.HasSlot(persistence.DefaultSlot) {
		snapshot, err := db.LoadSlot(persistence.DefaultSlot)
		if err == nil {
			if world, err := engine.Restore(snapshot); err == nil {
				slog.Info("game restored", "day", world.Day, "date", world.Date.Format("2006-01-02"))
				return world, true
			} else {
				slog.Warn("saved game unusable, starting fresh", "error", err)
				db.DeleteSlot(persistence.DefaultSlot)
			}
		} else {
			slog.Warn("saved game unreadable, starting fresh", "error", err)
		}
	}

	set := countries.Builtin
	if cfg.FetchCountries {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		set = countries.Load(ctx)
	}

	world := engine.NewWorld(engine.Options{
		Seed:          cfg.Seed,
		PlayerName:    cfg.PlayerName,
		PlayerCountry: cfg.PlayerCountry,
		Competitors:   cfg.Competitors,
		Countries:     set,
	})
	slog.Info("new game created",
		"player", cfg.PlayerName,
		"country", cfg.PlayerCountry,
		"competitors", cfg.Competitors,
		"countries", len(set),
	)
	return world, false
}

func autosave(world *engine.World, db *persistence.DB, every time.Duration) {
	for {
		time.Sleep(every)
		save(world, db)
	}
}

func save(world *engine.World, db *persistence.DB) {
	snapshot, err := world.Snapshot()
	if err != nil {
		slog.Error("snapshot failed", "error", err)
		return
	}
	if err := db.SaveSlot(persistence.DefaultSlot, snapshot); err != nil {
		slog.Error("autosave failed", "error", err)
	}
}

// persistNews appends newly generated feed entries to the durable log.
func persistNews(world *engine.World, db *persistence.DB) {
	world.Lock()
	var records []persistence.NewsRecord
	for _, item := range world.News {
		if !item.Date.Equal(world.Date) {
			continue
		}
		records = append(records, persistence.NewsRecord{
			Day:      world.Day,
			Date:     item.Date.Format("2006-01-02"),
			Category: string(item.Category),
			Headline: item.Headline,
		})
	}
	world.Unlock()
	if err := db.AppendNews(records); err != nil {
		slog.Warn("news log append failed", "error", err)
	}
}
