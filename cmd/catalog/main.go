package main

import (
	"context"
	"fmt"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/catalog-cli/internal/app"
	"github.com/glabrego/catalog-cli/internal/catalog"
	"github.com/glabrego/catalog-cli/internal/config"
	"github.com/glabrego/catalog-cli/internal/logging"
	"github.com/glabrego/catalog-cli/internal/saved"
	"github.com/glabrego/catalog-cli/internal/storage"
	"github.com/glabrego/catalog-cli/internal/thumbnail"
	"github.com/glabrego/catalog-cli/internal/tui"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		log.Fatalf("dotenv error: %v", err)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger, closeLog, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		log.Fatalf("log file error: %v", err)
	}
	defer closeLog()

	cat, err := catalog.LoadFile(cfg.PagePath)
	if err != nil {
		log.Fatalf("cannot load catalog page: %v", err)
	}
	logger.Info("catalog loaded", "page", cfg.PagePath, "sections", len(cat.Sections), "cards", cat.CardCount())

	repo, err := storage.NewRepository(cfg.DBPath)
	if err != nil {
		log.Fatalf("storage init error: %v", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := repo.Init(ctx); err != nil {
		log.Fatalf("storage schema error: %v", err)
	}
	var startupWarning string
	if err := repo.CheckWritable(ctx); err != nil {
		logger.Warn("storage not writable", "path", cfg.DBPath, "err", err)
		startupWarning = fmt.Sprintf("Storage not writable, saved videos will not persist: %v", err)
	}
	logger.Debug("storage ready", "path", cfg.DBPath, "writer", repo.Writer())
	if last, err := repo.LastWriter(ctx, saved.StorageKey); err == nil && last != "" {
		logger.Debug("saved items last written", "writer", last)
	}

	var prober app.Prober
	if cfg.ProbeThumbnails {
		prober = thumbnail.NewProber(nil)
	}
	service := app.NewService(repo, prober, logger)

	model := tui.NewModel(service, cat, tui.Options{
		Theme:    service.LoadTheme(ctx),
		Saved:    service.LoadSaved(ctx),
		Probe:    service.ProbingEnabled(),
		Resolver: thumbnail.NewResolver(cfg.ImageHost, cfg.PlaceholderURL),
		Warning:  startupWarning,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("tui exited", "err", err)
		log.Fatalf("tui error: %v", err)
	}
}
