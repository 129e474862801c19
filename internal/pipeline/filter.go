package pipeline

// FilterAll shows every card.
const FilterAll = "all"

// ApplyFilter decides visibility per card index. It never reorders.
func ApplyFilter(c Collection, criterion string) []bool {
	visible := make([]bool, c.Len())
	for i := range visible {
		visible[i] = criterion == FilterAll || c.Category(i) == criterion
	}
	return visible
}
