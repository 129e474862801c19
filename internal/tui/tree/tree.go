package tree

import "github.com/glabrego/catalog-cli/internal/pipeline"

type RowKind string

const (
	RowSection RowKind = "section"
	RowCard    RowKind = "card"
)

// Row is one line of the browsing list. Card rows point into their section's
// collection.
type Row struct {
	Kind      RowKind
	Label     string
	Section   string
	CardIndex int
}

type BuildOptions struct {
	CollapsedSections map[string]bool
}

// BuildRows flattens the board into a header row per section followed by that
// section's visible cards in display order.
func BuildRows(board *pipeline.Board, opts BuildOptions) []Row {
	if board == nil {
		return nil
	}
	rows := make([]Row, 0, board.Len()*8)
	for _, st := range board.Sections() {
		rows = append(rows, Row{Kind: RowSection, Label: st.Title, Section: st.ID, CardIndex: -1})
		if opts.CollapsedSections[st.ID] {
			continue
		}
		for _, idx := range st.VisibleOrder() {
			rows = append(rows, Row{
				Kind:      RowCard,
				Label:     st.Collection().At(idx).Title,
				Section:   st.ID,
				CardIndex: idx,
			})
		}
	}
	return rows
}

func FirstCardRow(rows []Row) int {
	for i, row := range rows {
		if row.Kind == RowCard {
			return i
		}
	}
	return 0
}

// SectionRow returns the header row of section id, or -1.
func SectionRow(rows []Row, id string) int {
	for i, row := range rows {
		if row.Kind == RowSection && row.Section == id {
			return i
		}
	}
	return -1
}

// RowSections lists the owning section of every row, in row order.
func RowSections(rows []Row) []string {
	out := make([]string, len(rows))
	for i, row := range rows {
		out[i] = row.Section
	}
	return out
}
