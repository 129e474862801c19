package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/glabrego/catalog-cli/internal/saved"
)

const (
	ThemeKey   = "theme"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

type KV interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type Prober interface {
	Probe(ctx context.Context, imageURL string) error
}

type Service struct {
	kv     KV
	saved  *saved.Store
	prober Prober
	logger *slog.Logger
}

// NewService wires durable storage and the thumbnail prober. prober may be nil
// to disable probing.
func NewService(kv KV, prober Prober, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		kv:     kv,
		saved:  saved.NewStore(kv, logger),
		prober: prober,
		logger: logger,
	}
}

// LoadSaved reads the saved titles from storage. It never fails.
func (s *Service) LoadSaved(ctx context.Context) []string {
	titles := s.saved.Load(ctx)
	s.logger.Info("saved items loaded", "count", len(titles))
	return titles
}

func (s *Service) IsSaved(title string) bool {
	return s.saved.Contains(title)
}

// ToggleSaved flips the saved state of title. The returned state is valid even
// when err is a *saved.PersistError.
func (s *Service) ToggleSaved(ctx context.Context, title string) (bool, error) {
	next, err := s.saved.Toggle(ctx, title)
	s.logger.Info("saved toggled", "title", title, "saved", next, "persisted", err == nil)
	return next, err
}

// LoadTheme returns the stored theme, defaulting to light on a missing,
// unknown or unreadable value.
func (s *Service) LoadTheme(ctx context.Context) string {
	value, found, err := s.kv.Get(ctx, ThemeKey)
	if err != nil {
		s.logger.Warn("theme unreadable, using light", "err", err)
		return ThemeLight
	}
	if !found || (value != ThemeLight && value != ThemeDark) {
		return ThemeLight
	}
	return value
}

func (s *Service) SaveTheme(ctx context.Context, theme string) error {
	if theme != ThemeLight && theme != ThemeDark {
		return fmt.Errorf("unknown theme %q", theme)
	}
	if err := s.kv.Set(ctx, ThemeKey, theme); err != nil {
		s.logger.Error("theme not persisted", "theme", theme, "err", err)
		return fmt.Errorf("save theme: %w", err)
	}
	return nil
}

func (s *Service) ProbeThumbnail(ctx context.Context, imageURL string) error {
	if s.prober == nil {
		return nil
	}
	if err := s.prober.Probe(ctx, imageURL); err != nil {
		s.logger.Debug("thumbnail failed", "url", imageURL, "err", err)
		return err
	}
	return nil
}

func (s *Service) ProbingEnabled() bool {
	return s.prober != nil
}
