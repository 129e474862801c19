// Package viewport reacts to the list window moving: it reveals lazily loaded
// thumbnails and tracks which section is in view.
package viewport

// LazyImages tracks images waiting for their first appearance on screen.
type LazyImages struct {
	pending map[string]struct{}
}

func NewLazyImages() *LazyImages {
	return &LazyImages{pending: make(map[string]struct{})}
}

func (l *LazyImages) Observe(key string) {
	l.pending[key] = struct{}{}
}

func (l *LazyImages) Len() int {
	return len(l.pending)
}

// Reveal unobserves every pending key present in visible and returns them in
// visible order. A key is reported at most once.
func (l *LazyImages) Reveal(visible []string) []string {
	var out []string
	for _, key := range visible {
		if _, ok := l.pending[key]; !ok {
			continue
		}
		delete(l.pending, key)
		out = append(out, key)
	}
	return out
}

// DefaultSpyThreshold is the visible share a section needs to become active.
const DefaultSpyThreshold = 0.3

type SectionRatio struct {
	ID    string
	Ratio float64
}

// Ratios computes, per section, the share of its rows inside [start, end).
// rowSections holds the owning section of each row; sections are reported in
// first-appearance order.
func Ratios(rowSections []string, start, end int) []SectionRatio {
	if start < 0 {
		start = 0
	}
	if end > len(rowSections) {
		end = len(rowSections)
	}
	total := make(map[string]int)
	inView := make(map[string]int)
	order := make([]string, 0, 8)
	for i, id := range rowSections {
		if _, seen := total[id]; !seen {
			order = append(order, id)
		}
		total[id]++
		if i >= start && i < end {
			inView[id]++
		}
	}
	out := make([]SectionRatio, 0, len(order))
	for _, id := range order {
		out = append(out, SectionRatio{ID: id, Ratio: float64(inView[id]) / float64(total[id])})
	}
	return out
}

// SectionSpy keeps the active navigation section.
type SectionSpy struct {
	threshold float64
	active    string
}

func NewSectionSpy(threshold float64, initial string) *SectionSpy {
	if threshold <= 0 {
		threshold = DefaultSpyThreshold
	}
	return &SectionSpy{threshold: threshold, active: initial}
}

func (s *SectionSpy) Active() string {
	return s.active
}

// Set forces the active section, as explicit navigation does.
func (s *SectionSpy) Set(id string) {
	s.active = id
}

// Observe picks the section with the largest ratio at or above the threshold;
// ties keep the earliest. With no qualifying section the previous one stays.
// It reports whether the active section changed.
func (s *SectionSpy) Observe(ratios []SectionRatio) (string, bool) {
	best := -1
	for i, r := range ratios {
		if r.Ratio < s.threshold {
			continue
		}
		if best < 0 || r.Ratio > ratios[best].Ratio {
			best = i
		}
	}
	if best < 0 || ratios[best].ID == s.active {
		return s.active, false
	}
	s.active = ratios[best].ID
	return s.active, true
}
