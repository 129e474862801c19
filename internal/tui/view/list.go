package view

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/glabrego/catalog-cli/internal/catalog"
	tuitheme "github.com/glabrego/catalog-cli/internal/tui/theme"
)

var reANSICodes = regexp.MustCompile(`\x1b\[[0-9;]*m`)

type CardLineParams struct {
	Card   catalog.Card
	Saved  bool
	Active bool
	// Thumb is a short label for the thumbnail state, e.g. "hq" or "placeholder".
	Thumb string
	Width int
}

func RenderCardLine(p CardLineParams, th tuitheme.Theme) string {
	cursorMarker := " "
	if p.Active {
		cursorMarker = ">"
	}
	savedMarker := " "
	if p.Saved {
		savedMarker = th.SavedMarker.Render("★")
	}
	prefix := fmt.Sprintf("  %s%s ", cursorMarker, savedMarker)

	meta := strings.TrimSpace(p.Card.MetaText)
	right := "[" + p.Card.Category + "]"
	if meta != "" {
		right = meta + " " + right
	}
	if p.Thumb != "" {
		right += " " + p.Thumb
	}
	available := p.Width - visibleLen(prefix) - 1 - visibleLen(right)
	if available < 1 {
		available = 1
	}

	label := strings.TrimSpace(p.Card.Title)
	if label == "" {
		label = "(untitled)"
	}
	label = truncateRunes(label, available)
	styledTitle := th.StyleCardTitle(p.Saved, label)
	gap := p.Width - visibleLen(prefix) - visibleLen(label) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(p.Active, prefix+styledTitle+strings.Repeat(" ", gap)+th.MetaLabel.Render(right))
}

func RenderSectionLine(title string, shown, total, width int, active, current bool, th tuitheme.Theme) string {
	icon := "■"
	if current {
		icon = "▶"
	}
	left := th.Section.Render(fmt.Sprintf("%s %s", icon, title))
	right := th.MetaValue.Render(fmt.Sprintf("%d/%d", shown, total))
	gap := width - visibleLen(left) - visibleLen(right)
	if gap < 1 {
		gap = 1
	}
	return th.RenderActiveLine(active, left+strings.Repeat(" ", gap)+right)
}

// ThumbLabel abbreviates a thumbnail tier for list rows.
func ThumbLabel(tier string, terminal bool) string {
	if terminal {
		return "placeholder"
	}
	if tier == "default" {
		return "low"
	}
	return strings.TrimSuffix(tier, "default")
}

func truncateRunes(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return strings.Repeat(".", maxLen)
	}
	runes := []rune(s)
	return string(runes[:maxLen-3]) + "..."
}

func visibleLen(s string) int {
	return utf8.RuneCountInString(stripANSIText(s))
}

func stripANSIText(s string) string {
	return reANSICodes.ReplaceAllString(s, "")
}
