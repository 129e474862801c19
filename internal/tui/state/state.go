package state

import tuitree "github.com/glabrego/catalog-cli/internal/tui/tree"

func ClampCursor(cursor, size int) int {
	if size <= 0 {
		return 0
	}
	if cursor >= size {
		return size - 1
	}
	if cursor < 0 {
		return 0
	}
	return cursor
}

func PageStep(height int, hasStatus bool) int {
	if height <= 0 {
		return 10
	}
	headerLines := 6
	if hasStatus {
		headerLines += 2
	}
	step := height - headerLines
	if step < 3 {
		step = 3
	}
	return step
}

func CenteredWindow(totalRows, cursor, height int) (int, int) {
	if totalRows <= 0 {
		return 0, 0
	}
	if height <= 0 || totalRows <= height {
		return 0, totalRows
	}
	cursor = ClampCursor(cursor, totalRows)
	start := cursor - height/2
	if start < 0 {
		start = 0
	}
	maxStart := totalRows - height
	if start > maxStart {
		start = maxStart
	}
	return start, start + height
}

func CardRowsBefore(rows []tuitree.Row, end int) int {
	if end <= 0 || len(rows) == 0 {
		return 0
	}
	if end > len(rows) {
		end = len(rows)
	}
	count := 0
	for i := 0; i < end; i++ {
		if rows[i].Kind == tuitree.RowCard {
			count++
		}
	}
	return count
}

// CursorForCard finds the row showing card idx of section, or -1 when it is
// hidden.
func CursorForCard(rows []tuitree.Row, section string, idx int) int {
	for i, row := range rows {
		if row.Kind == tuitree.RowCard && row.Section == section && row.CardIndex == idx {
			return i
		}
	}
	return -1
}

// NearestRowInSection keeps the cursor inside section after a rebuild: the
// section header when none of its cards remain at the old position.
func NearestRowInSection(rows []tuitree.Row, section string, prevCursor int) int {
	first, last := -1, -1
	for i, row := range rows {
		if row.Section != section {
			continue
		}
		if first < 0 {
			first = i
		}
		last = i
	}
	if first < 0 {
		return ClampCursor(prevCursor, len(rows))
	}
	if prevCursor < first {
		return first
	}
	if prevCursor > last {
		return last
	}
	return prevCursor
}
