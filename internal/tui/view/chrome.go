package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/glabrego/catalog-cli/internal/tui/theme"
)

func Toolbar(inDetail bool) string {
	if inDetail {
		return "j/k scroll | [ ] prev/next | s save | o open | y copy | x degrade | esc back | ? help"
	}
	return "j/k move | [ ] sections | f/a filter | n/N sort | s save | t theme | enter details | ? help | q quit"
}

type FooterInput struct {
	Section string
	Filter  string
	Sort    string
	Shown   int
	Total   int
	Saved   int

	// Position is the 1-based card under the cursor among Cards listed rows;
	// zero hides the counter.
	Position int
	Cards    int
}

func Footer(in FooterInput, th tuitheme.Theme) string {
	sortLabel := in.Sort
	if sortLabel == "" {
		sortLabel = "markup"
	}
	parts := []string{
		th.MetaLabel.Render("section") + " " + th.MetaValue.Render(in.Section),
		th.MetaLabel.Render("filter") + " " + th.MetaValue.Render(in.Filter),
		th.MetaLabel.Render("sort") + " " + th.MetaValue.Render(sortLabel),
		th.MetaValue.Render(fmt.Sprintf("%d/%d shown", in.Shown, in.Total)),
		th.SavedMarker.Render(fmt.Sprintf("%d saved", in.Saved)),
	}
	if in.Position > 0 {
		parts = append(parts, th.MetaValue.Render(fmt.Sprintf("card %d/%d", in.Position, in.Cards)))
	}
	return strings.Join(parts, " • ") + "  " + th.ModePill.Render(th.Mode)
}

// Message renders the status line. A toast wins over a warning.
func Message(status, warning string, th tuitheme.Theme) string {
	state := "idle"
	stateLabel := th.StateIdle.Render("state")
	if warning != "" {
		state = "warning"
		stateLabel = th.StateWarn.Render("state")
	}
	main := "Ready"
	if status != "" {
		main = status
	} else if warning != "" {
		main = warning
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, state, th.MetaValue.Render(main))
}

// SectionNav renders the category links with the active one highlighted.
func SectionNav(titles, ids []string, active string, th tuitheme.Theme) string {
	parts := make([]string, 0, len(titles))
	for i, title := range titles {
		if i < len(ids) && ids[i] == active {
			parts = append(parts, th.SectionNav.Render(title))
			continue
		}
		parts = append(parts, th.MetaValue.Render(title))
	}
	return strings.Join(parts, "  ")
}
