// Package catalog holds the typed card records assembled from catalog markup.
package catalog

import "strconv"

// Card is one displayable media item. It is built once at load time and is
// never mutated afterwards; saved state lives in the saved store.
type Card struct {
	Section  string
	Position int

	Title    string
	Category string
	VideoRef string

	Thumbnail string
	LazySrc   string
	Lazy      bool
	Alt       string

	MetaText  string
	Metric    int64
	HasMetric bool

	URL string
}

// Key identifies the card instance within the catalog. Titles are not unique,
// so section and markup position are used instead.
func (c Card) Key() string {
	return c.Section + "#" + strconv.Itoa(c.Position)
}

// DisplayTitle returns the text used for placeholders and list rows.
func (c Card) DisplayTitle() string {
	if c.Alt != "" {
		return c.Alt
	}
	if c.Title != "" {
		return c.Title
	}
	return "Video"
}

type Section struct {
	ID      string
	Title   string
	Cards   []Card
	Filters []string
	Sorts   []string
}

type Catalog struct {
	Title    string
	Sections []Section
}

func (c Catalog) CardCount() int {
	n := 0
	for _, s := range c.Sections {
		n += len(s.Cards)
	}
	return n
}
