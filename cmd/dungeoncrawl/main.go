// Package main is the entry point for the dungeon crawl server and terminal client.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/dungeoncrawl/internal/config"
	"github.com/samdwyer/dungeoncrawl/internal/game"
	"github.com/samdwyer/dungeoncrawl/internal/httpapi"
	"github.com/samdwyer/dungeoncrawl/internal/storage"
	"github.com/samdwyer/dungeoncrawl/internal/storage/memory"
	"github.com/samdwyer/dungeoncrawl/internal/storage/postgres"
	"github.com/samdwyer/dungeoncrawl/internal/storage/sqlite"
	"github.com/samdwyer/dungeoncrawl/internal/storage/yamlstore"
	"github.com/samdwyer/dungeoncrawl/internal/telemetry"
	"github.com/samdwyer/dungeoncrawl/internal/ui"
)

const shutdownTimeout = 10 * time.Second

func main() {
	log.SetPrefix("[DUNGEONCRAWL] ")

	// Not fatal: variables may be set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		config.Exitf("config: %v", err)
	}

	command, args := "serve", os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		command, args = args[0], args[1:]
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, command, args); err != nil {
		log.Fatalf("%s: %v", command, err)
	}
}

func run(ctx context.Context, cfg config.Config, command string, args []string) error {
	shutdown, err := telemetry.Setup(ctx, telemetry.Options{Enabled: cfg.OTelEnabled, Endpoint: cfg.OTelEndpoint})
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Printf("Error shutting down telemetry: %v", err)
		}
	}()

	store, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.Store, err)
	}
	defer store.Close()

	svc, err := game.NewService(store, game.WithSeed(cfg.Seed))
	if err != nil {
		return err
	}

	switch command {
	case "serve":
		return serve(ctx, cfg, svc)
	case "play":
		return play(ctx, svc, args)
	default:
		return fmt.Errorf("unknown command %q (want serve or play)", command)
	}
}

func openStore(ctx context.Context, cfg config.Config) (storage.Store, error) {
	switch cfg.Store {
	case config.StoreMemory:
		return memory.New(), nil
	case config.StoreSQLite:
		return sqlite.Open(cfg.SQLitePath)
	case config.StoreYAML:
		return yamlstore.Open(cfg.SaveDir)
	case config.StorePostgres:
		return postgres.Open(ctx, cfg.PostgresDSN)
	default:
		return nil, fmt.Errorf("unknown store %q", cfg.Store)
	}
}

func serve(ctx context.Context, cfg config.Config, svc *game.Service) error {
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           httpapi.New(svc, cfg.RequestTimeout),
		ReadHeaderTimeout: cfg.RequestTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("listening on %s (store %s)", cfg.Addr, cfg.Store)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Printf("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func play(ctx context.Context, svc *game.Service, args []string) error {
	fs := flag.NewFlagSet("play", flag.ContinueOnError)
	id := fs.String("id", "", "resume an existing save instead of creating one")
	name := fs.String("name", "", "adventurer name for a new save")
	size := fs.Int("size", 0, "dungeon side for a new save (0 picks 4..6)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	req := game.CreateRequest{Name: *name}
	if *size != 0 {
		req.DungeonSize = size
	}
	saveID, err := ui.Start(ctx, svc, *id, req)
	if err != nil {
		return err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return err
	}
	defer screen.Close()

	err = ui.NewClient(svc, screen, saveID).Run(ctx)
	screen.Close()
	if err != nil {
		return err
	}
	fmt.Printf("Save %s. Resume with: dungeoncrawl play -id %s\n", saveID, saveID)
	return nil
}
