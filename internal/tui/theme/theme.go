package theme

import "github.com/charmbracelet/lipgloss"

const (
	ModeLight = "light"
	ModeDark  = "dark"
)

type Theme struct {
	Mode string

	Title       lipgloss.Style
	ModePill    lipgloss.Style
	Section     lipgloss.Style
	SectionNav  lipgloss.Style
	Category    lipgloss.Style
	ActiveLine  lipgloss.Style
	MetaLabel   lipgloss.Style
	MetaValue   lipgloss.Style
	StateIdle   lipgloss.Style
	StateWarn   lipgloss.Style
	SavedMarker lipgloss.Style
	Degraded    lipgloss.Style

	TitlePlain lipgloss.Style
	TitleSaved lipgloss.Style
}

// Dark is the mocha palette.
func Dark() Theme {
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Mode:        ModeDark,
		Title:       lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:    lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		SectionNav:  lipgloss.NewStyle().Bold(true).Underline(true).Foreground(cpTeal),
		Category:    lipgloss.NewStyle().Foreground(cpLavender),
		ActiveLine:  lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:   lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:   lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:   lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:   lipgloss.NewStyle().Foreground(cpRed),
		SavedMarker: lipgloss.NewStyle().Bold(true).Foreground(cpYellow),
		Degraded:    lipgloss.NewStyle().Foreground(cpPeach),
		TitlePlain:  lipgloss.NewStyle().Foreground(cpText),
		TitleSaved:  lipgloss.NewStyle().Bold(true).Italic(true).Foreground(cpYellow),
	}
}

// Light is the latte palette.
func Light() Theme {
	ltMauve := lipgloss.Color("#8839ef")
	ltRed := lipgloss.Color("#d20f39")
	ltPeach := lipgloss.Color("#fe640b")
	ltYellow := lipgloss.Color("#df8e1d")
	ltGreen := lipgloss.Color("#40a02b")
	ltTeal := lipgloss.Color("#179299")
	ltLavender := lipgloss.Color("#7287fd")
	ltText := lipgloss.Color("#4c4f69")
	ltSubtext1 := lipgloss.Color("#5c5f77")
	ltOverlay1 := lipgloss.Color("#8c8fa1")
	ltSurface0 := lipgloss.Color("#ccd0da")

	return Theme{
		Mode:        ModeLight,
		Title:       lipgloss.NewStyle().Bold(true).Foreground(ltMauve),
		ModePill:    lipgloss.NewStyle().Foreground(ltLavender).Background(ltSurface0).Padding(0, 1),
		Section:     lipgloss.NewStyle().Bold(true).Foreground(ltTeal),
		SectionNav:  lipgloss.NewStyle().Bold(true).Underline(true).Foreground(ltTeal),
		Category:    lipgloss.NewStyle().Foreground(ltLavender),
		ActiveLine:  lipgloss.NewStyle().Background(ltSurface0).Foreground(ltText),
		MetaLabel:   lipgloss.NewStyle().Foreground(ltOverlay1),
		MetaValue:   lipgloss.NewStyle().Foreground(ltSubtext1),
		StateIdle:   lipgloss.NewStyle().Foreground(ltGreen),
		StateWarn:   lipgloss.NewStyle().Foreground(ltRed),
		SavedMarker: lipgloss.NewStyle().Bold(true).Foreground(ltYellow),
		Degraded:    lipgloss.NewStyle().Foreground(ltPeach),
		TitlePlain:  lipgloss.NewStyle().Foreground(ltText),
		TitleSaved:  lipgloss.NewStyle().Bold(true).Italic(true).Foreground(ltYellow),
	}
}

// ForMode returns the dark theme for "dark" and the light theme otherwise.
func ForMode(mode string) Theme {
	if mode == ModeDark {
		return Dark()
	}
	return Light()
}

func Toggle(mode string) string {
	if mode == ModeDark {
		return ModeLight
	}
	return ModeDark
}

func (t Theme) StyleCardTitle(saved bool, title string) string {
	if title == "" {
		return title
	}
	if saved {
		return t.TitleSaved.Render(title)
	}
	return t.TitlePlain.Render(title)
}

func (t Theme) RenderActiveLine(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveLine.Render(line)
}
