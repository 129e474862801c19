package actions

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/glabrego/catalog-cli/internal/saved"
)

type Service interface {
	IsSaved(title string) bool
	ToggleSaved(ctx context.Context, title string) (bool, error)
	SaveTheme(ctx context.Context, theme string) error
	ProbeThumbnail(ctx context.Context, imageURL string) error
}

type ToggleSavedSuccessMsg struct {
	Title  string
	Saved  bool
	Status string
	// Warning is set when the change could not be persisted.
	Warning error
}

type ToggleActionErrorMsg struct {
	Err error
}

type ThemeSaveErrorMsg struct {
	Err error
}

type ProbeSuccessMsg struct {
	Key string
	URL string
}

// ProbeFailureMsg is an image-load failure for URL on image Key.
type ProbeFailureMsg struct {
	Key string
	URL string
	Err error
}

type OpenURLSuccessMsg struct {
	Status string
	Opened bool
}

type OpenURLErrorMsg struct {
	Err error
}

func SavedStatus(isSaved bool) string {
	if isSaved {
		return "Saved for later"
	}
	return "Removed from saved videos"
}

func ToggleSavedCmd(service Service, title string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		next, err := service.ToggleSaved(ctx, title)
		var persistErr *saved.PersistError
		if err != nil && !errors.As(err, &persistErr) {
			return ToggleActionErrorMsg{Err: err}
		}
		msg := ToggleSavedSuccessMsg{Title: title, Saved: next, Status: SavedStatus(next)}
		if persistErr != nil {
			msg.Warning = persistErr
		}
		return msg
	}
}

func SaveThemeCmd(service Service, theme string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := service.SaveTheme(ctx, theme); err != nil {
			return ThemeSaveErrorMsg{Err: err}
		}
		return nil
	}
}

func ProbeThumbnailCmd(service Service, key, imageURL string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := service.ProbeThumbnail(ctx, imageURL); err != nil {
			return ProbeFailureMsg{Key: key, URL: imageURL, Err: err}
		}
		return ProbeSuccessMsg{Key: key, URL: imageURL}
	}
}

func OpenURLCmd(url string, openFn, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if openFn != nil {
			if err := openFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Opened URL in browser", Opened: true}
			}
		}
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "Could not open browser, URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not open URL or copy to clipboard")}
	}
}

func CopyURLCmd(url string, copyFn func(string) error) tea.Cmd {
	return func() tea.Msg {
		if copyFn != nil {
			if err := copyFn(url); err == nil {
				return OpenURLSuccessMsg{Status: "URL copied to clipboard"}
			}
		}
		return OpenURLErrorMsg{Err: fmt.Errorf("could not copy URL to clipboard")}
	}
}
