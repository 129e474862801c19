package view

import (
	"fmt"
	"strings"

	"github.com/glabrego/catalog-cli/internal/catalog"
	"github.com/glabrego/catalog-cli/internal/thumbnail"
)

type WrapFunc func(string, int) []string

func DetailLines(card catalog.Card, saved bool, thumb thumbnail.State, width int, wrap WrapFunc) []string {
	lines := make([]string, 0, 16)
	lines = append(lines, wrap(card.Title, width)...)
	lines = append(lines, strings.Repeat("=", max(1, min(width, len(card.Title)))))
	lines = append(lines, "")

	lines = append(lines, "Category: "+card.Category)
	if card.HasMetric {
		lines = append(lines, fmt.Sprintf("Views: %s (%d)", card.MetaText, card.Metric))
	} else {
		lines = append(lines, "Views: unknown")
	}
	if saved {
		lines = append(lines, "Saved: yes")
	} else {
		lines = append(lines, "Saved: no")
	}

	if card.VideoRef != "" {
		lines = append(lines, "Video: "+card.VideoRef)
	}
	switch {
	case thumb.Terminal:
		lines = append(lines, "Thumbnail: placeholder")
	case thumb.Tier != "":
		lines = append(lines, fmt.Sprintf("Thumbnail: %s (%d failed)", thumb.Tier, thumb.Failures))
	case card.Lazy && thumb.Current == card.Thumbnail && card.LazySrc != "":
		lines = append(lines, "Thumbnail: not loaded yet")
	default:
		lines = append(lines, "Thumbnail: custom")
	}
	if thumb.Current != "" {
		lines = append(lines, wrap("Image: "+thumb.Current, width)...)
	}
	if card.URL != "" {
		lines = append(lines, wrap("URL: "+card.URL, width)...)
	}
	return lines
}

func DetailMaxTop(linesLen, bodyHeight int) int {
	maxTop := linesLen - bodyHeight
	if maxTop < 0 {
		return 0
	}
	return maxTop
}

func RenderDetailLines(lines []string, top, maxLines int) string {
	if len(lines) == 0 {
		return ""
	}
	if top < 0 {
		top = 0
	}
	if top > len(lines)-1 {
		top = len(lines) - 1
	}
	end := len(lines)
	if maxLines > 0 && top+maxLines < end {
		end = top + maxLines
	}
	return strings.Join(lines[top:end], "\n") + "\n"
}

func WrapText(text string, width int) []string {
	if width < 1 {
		return []string{text}
	}
	paragraphs := strings.Split(text, "\n")
	out := make([]string, 0, len(paragraphs))

	for _, p := range paragraphs {
		words := strings.Fields(p)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}
		line := ""
		for _, word := range words {
			for len(word) > width {
				if line != "" {
					out = append(out, line)
					line = ""
				}
				out = append(out, word[:width])
				word = word[width:]
			}
			if line == "" {
				line = word
				continue
			}
			if len(line)+1+len(word) <= width {
				line += " " + word
				continue
			}
			out = append(out, line)
			line = word
		}
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}
