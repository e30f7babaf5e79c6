package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/lox/weatherdash/internal/api"
	"github.com/lox/weatherdash/internal/owm"
	"github.com/lox/weatherdash/internal/session"
	"github.com/lox/weatherdash/internal/store"
)

type CLI struct {
	DB              string        `help:"Path to SQLite database." default:"data/weatherdash.db" env:"WEATHERDASH_DB"`
	Port            string        `help:"HTTP server port." default:"8080" env:"PORT"`
	APIKey          string        `name:"api-key" help:"OpenWeatherMap API key." env:"OPENWEATHER_API_KEY"`
	BaseURL         string        `name:"base-url" help:"OpenWeatherMap API base URL." default:"https://api.openweathermap.org" env:"OPENWEATHER_BASE_URL"`
	RefreshInterval time.Duration `help:"Background refresh interval for the tracked city." default:"30s" env:"WEATHERDASH_REFRESH_INTERVAL"`
	Timezone        string        `help:"Reference timezone for grouping forecast days." default:"Local" env:"WEATHERDASH_TZ"`
	DiscardStale    bool          `help:"Drop responses superseded by a newer request instead of applying whichever resolves last."`
	NoPoll          bool          `help:"Disable background refresh (server only, for local dev)."`
}

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}

	var cli CLI
	kong.Parse(&cli,
		kong.Name("weatherdash"),
		kong.Description("City weather lookup dashboard backed by OpenWeatherMap."),
		kong.UsageOnError(),
	)

	if cli.APIKey == "" {
		log.Println("warning: no OpenWeatherMap API key configured, lookups will fail")
	}

	if dir := filepath.Dir(cli.DB); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatalf("create data dir: %v", err)
		}
	}
	db, err := store.Open(cli.DB)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	loc, err := time.LoadLocation(cli.Timezone)
	if err != nil {
		log.Printf("Warning: could not load %s timezone, using UTC: %v", cli.Timezone, err)
		loc = time.UTC
	}

	st := store.New(db)
	if err := st.Migrate(); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	log.Println("database migrated")

	client := owm.New(cli.APIKey, cli.BaseURL, nil)
	sess := session.New(client, st, session.Options{
		RefreshInterval: cli.RefreshInterval,
		NoRefresh:       cli.NoPoll,
		DiscardStale:    cli.DiscardStale,
		Audit:           st,
	})
	server := api.NewServer(sess, st, cli.Port, loc)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cli.NoPoll {
		log.Println("background refresh disabled (--no-poll)")
	}
	go sess.Start(ctx)

	if err := server.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
	sess.Close()
	log.Println("shutdown complete")
}
