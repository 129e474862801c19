package pipeline

import (
	"fmt"

	"github.com/glabrego/catalog-cli/internal/catalog"
)

// SectionState holds one section's active filter, active sort, display order
// and visibility. Sections never share state.
type SectionState struct {
	ID    string
	Title string

	coll    Collection
	filters []string
	sorts   []string

	filter  string
	sort    string
	order   []int
	visible []bool
}

func NewSectionState(sec catalog.Section) *SectionState {
	coll := NewCollection(sec.Cards)
	s := &SectionState{
		ID:      sec.ID,
		Title:   sec.Title,
		coll:    coll,
		filters: sec.Filters,
		sorts:   sec.Sorts,
		filter:  FilterAll,
		order:   coll.IdentityOrder(),
	}
	s.visible = ApplyFilter(coll, FilterAll)
	if len(s.filters) == 0 {
		s.filters = append([]string{FilterAll}, coll.Categories()...)
	}
	if len(s.sorts) == 0 {
		s.sorts = []string{SortNewest, SortOldest}
	}
	return s
}

func (s *SectionState) Collection() Collection { return s.coll }
func (s *SectionState) Filter() string         { return s.filter }
func (s *SectionState) Sort() string           { return s.sort }
func (s *SectionState) Filters() []string      { return append([]string(nil), s.filters...) }
func (s *SectionState) Sorts() []string        { return append([]string(nil), s.sorts...) }

// Order returns the full display order, hidden cards included.
func (s *SectionState) Order() []int {
	return append([]int(nil), s.order...)
}

func (s *SectionState) Visible(idx int) bool {
	return idx >= 0 && idx < len(s.visible) && s.visible[idx]
}

// VisibleOrder returns the display order restricted to visible cards.
func (s *SectionState) VisibleOrder() []int {
	out := make([]int, 0, len(s.order))
	for _, idx := range s.order {
		if s.visible[idx] {
			out = append(out, idx)
		}
	}
	return out
}

// SetFilter makes criterion the section's single active filter.
func (s *SectionState) SetFilter(criterion string) {
	s.filter = criterion
	s.visible = ApplyFilter(s.coll, criterion)
}

// NextFilter advances to the following filter option, wrapping around.
func (s *SectionState) NextFilter() string {
	next := s.filters[0]
	for i, f := range s.filters {
		if f == s.filter && i+1 < len(s.filters) {
			next = s.filters[i+1]
			break
		}
	}
	s.SetFilter(next)
	return next
}

// SetSort makes criterion the section's single active sort and reorders.
func (s *SectionState) SetSort(criterion string) error {
	if !ValidSort(criterion) {
		return fmt.Errorf("unknown sort %q", criterion)
	}
	s.sort = criterion
	s.order = ApplySort(s.coll, s.order, criterion)
	return nil
}

// Board is the set of section states for a catalog.
type Board struct {
	sections []*SectionState
	byID     map[string]*SectionState
}

func NewBoard(cat catalog.Catalog) *Board {
	b := &Board{byID: make(map[string]*SectionState, len(cat.Sections))}
	for _, sec := range cat.Sections {
		st := NewSectionState(sec)
		b.sections = append(b.sections, st)
		b.byID[st.ID] = st
	}
	return b
}

func (b *Board) Sections() []*SectionState {
	return b.sections
}

func (b *Board) Section(id string) (*SectionState, bool) {
	st, ok := b.byID[id]
	return st, ok
}

func (b *Board) Len() int {
	return len(b.sections)
}

// Index returns the position of section id, or -1.
func (b *Board) Index(id string) int {
	for i, st := range b.sections {
		if st.ID == id {
			return i
		}
	}
	return -1
}
