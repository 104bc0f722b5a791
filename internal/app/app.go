package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/avstrong/hotel/internal/booking"
	"github.com/avstrong/hotel/internal/catalog"
	"github.com/avstrong/hotel/internal/config"
	"github.com/avstrong/hotel/internal/idgen/simple"
	"github.com/avstrong/hotel/internal/logger"
	"github.com/avstrong/hotel/internal/migration"
	"github.com/avstrong/hotel/internal/staff"
	"github.com/avstrong/hotel/internal/storage/memory"
	"github.com/avstrong/hotel/internal/transport/web"
)

const livenessEndpoint = "/liveness"

// LoadCatalog returns the built-in inventory unless cfg points at a YAML catalog file.
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.CatalogFile == "" {
		return catalog.Default(), nil
	}

	f, err := os.Open(cfg.CatalogFile)
	if err != nil {
		return nil, fmt.Errorf("open catalog file: %w", err)
	}
	defer f.Close()

	c, err := catalog.Load(f)
	if err != nil {
		return nil, fmt.Errorf("load catalog %s: %w", cfg.CatalogFile, err)
	}

	return c, nil
}

func LogInventory(l *logger.Logger, types []catalog.RoomType) {
	l.LogInfo("Room inventory:")

	for _, rt := range types {
		l.LogInfo("  %s: %d rooms at %d per night", rt.Name, rt.TotalRooms, rt.PricePerNight)
	}
}

func seed(ctx context.Context, l *logger.Logger, bm *booking.Manager, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open seed file: %w", err)
	}
	defer f.Close()

	n, err := migration.Up(ctx, l, bm, f)
	if err != nil {
		return fmt.Errorf("seed bookings from %s (%d applied): %w", path, n, err)
	}

	l.LogInfo("Seeded %d bookings from %s", n, path)

	return nil
}

func Run(l *logger.Logger, cfg *config.Config) error {
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGHUP,
	)
	defer cancel()

	l = l.WithDebug(cfg.Debug)

	rooms, err := LoadCatalog(cfg)
	if err != nil {
		return err
	}

	storage := memory.New(memory.Config{L: l})
	bookManager := booking.New(l, storage, simple.New(cfg.BookingIDBase), rooms)

	if cfg.SeedFile != "" {
		if err := seed(ctx, l, bookManager, cfg.SeedFile); err != nil {
			return err
		}
	}

	desk, err := staff.New(cfg.StaffUsername, cfg.StaffPassword)
	if err != nil {
		return fmt.Errorf("init staff authenticator: %w", err)
	}

	webConf := web.Conf{
		L:                 l,
		ServerLogger:      log.Default(),
		Host:              cfg.Host,
		Port:              cfg.Port,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		LivenessEndpoint:  livenessEndpoint,
		StaticDir:         cfg.StaticDir,
		CORSOrigins:       cfg.CORSOrigins,
	}

	srv, err := web.New(ctx, webConf, bookManager, desk)
	if err != nil {
		return fmt.Errorf("init http server: %w", err)
	}

	//nolint:contextcheck
	go func() {
		<-ctx.Done()

		ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		if err := srv.Srv().Shutdown(ctx); err != nil {
			l.LogErrorf("Failed to stop http server: %v", err.Error())
		}
	}()

	LogInventory(l, bookManager.RoomTypes())
	l.LogInfo("Application is running on %v:%v...", webConf.Host, webConf.Port)

	if err := srv.Srv().ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("run http server: %w", err)
	}

	l.LogInfo("Application stopped gracefully")

	return nil
}
