package view

import (
	"strings"

	tuitree "github.com/glabrego/catalog-cli/internal/tui/tree"
)

type ListRenderInput struct {
	Rows       []tuitree.Row
	Start      int
	End        int
	TreeCursor int

	RenderSectionLine func(row tuitree.Row, active bool) string
	RenderCardLine    func(row tuitree.Row, active bool) string
}

func RenderListBody(in ListRenderInput) string {
	if len(in.Rows) == 0 || in.Start >= in.End || in.Start < 0 {
		return ""
	}
	end := in.End
	if end > len(in.Rows) {
		end = len(in.Rows)
	}
	var b strings.Builder
	for i := in.Start; i < end; i++ {
		row := in.Rows[i]
		switch row.Kind {
		case tuitree.RowSection:
			b.WriteString(in.RenderSectionLine(row, i == in.TreeCursor))
		case tuitree.RowCard:
			b.WriteString(in.RenderCardLine(row, i == in.TreeCursor))
		}
		b.WriteString("\n")
	}
	return b.String()
}
