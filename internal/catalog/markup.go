package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	nethtml "golang.org/x/net/html"
)

var ErrNoSections = errors.New("catalog markup has no video sections")

var reVideoRefFromSrc = regexp.MustCompile(`/vi/([^/]+)/`)

// VideoRefFromSrc extracts the video reference from a thumbnail URL of the
// form .../vi/<ref>/<tier>.jpg.
func VideoRefFromSrc(src string) (string, bool) {
	m := reVideoRefFromSrc.FindStringSubmatch(src)
	if len(m) < 2 || m[1] == "" {
		return "", false
	}
	return m[1], true
}

func LoadFile(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open catalog page: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads catalog markup and assembles typed sections and cards.
func Parse(r io.Reader) (Catalog, error) {
	doc, err := nethtml.Parse(r)
	if err != nil {
		return Catalog{}, fmt.Errorf("parse catalog markup: %w", err)
	}

	var out Catalog
	if title := findFirst(doc, func(n *nethtml.Node) bool { return isElement(n, "title") }); title != nil {
		out.Title = normalizeText(collectRawText(title))
	}

	taken := make(map[string]bool)
	for _, node := range findAll(doc, func(n *nethtml.Node) bool { return hasClass(n, "video-section") }) {
		out.Sections = append(out.Sections, parseSection(node, len(out.Sections), taken))
	}
	if len(out.Sections) == 0 {
		return Catalog{}, ErrNoSections
	}
	return out, nil
}

// parseSection gives every section an id not yet in taken. Missing ids become
// section-N and repeated ones get a -2, -3... suffix, so card keys stay unique.
func parseSection(node *nethtml.Node, index int, taken map[string]bool) Section {
	sec := Section{ID: nodeAttr(node, "id")}
	if sec.ID == "" {
		sec.ID = fmt.Sprintf("section-%d", index+1)
	}
	if taken[sec.ID] {
		base := sec.ID
		for n := 2; taken[sec.ID]; n++ {
			sec.ID = fmt.Sprintf("%s-%d", base, n)
		}
	}
	taken[sec.ID] = true
	if heading := findFirst(node, func(n *nethtml.Node) bool { return isElement(n, "h2") }); heading != nil {
		sec.Title = normalizeText(collectRawText(heading))
	}
	if sec.Title == "" {
		sec.Title = sec.ID
	}

	for _, controls := range findAll(node, func(n *nethtml.Node) bool { return hasClass(n, "filter-controls") }) {
		sec.Filters = appendControlValues(sec.Filters, controls, "data-filter")
	}
	for _, controls := range findAll(node, func(n *nethtml.Node) bool { return hasClass(n, "sort-controls") }) {
		sec.Sorts = appendControlValues(sec.Sorts, controls, "data-sort")
	}

	for _, cardNode := range findAll(node, func(n *nethtml.Node) bool { return hasClass(n, "video-card") }) {
		card := parseCard(cardNode)
		card.Section = sec.ID
		card.Position = len(sec.Cards)
		sec.Cards = append(sec.Cards, card)
	}
	return sec
}

func appendControlValues(values []string, controls *nethtml.Node, attr string) []string {
	for _, btn := range findAll(controls, func(n *nethtml.Node) bool { return hasClass(n, "control-btn") }) {
		v := nodeAttr(btn, attr)
		if v == "" || containsString(values, v) {
			continue
		}
		values = append(values, v)
	}
	return values
}

func parseCard(node *nethtml.Node) Card {
	card := Card{
		Title:    nodeAttr(node, "data-title"),
		Category: nodeAttr(node, "data-category"),
	}

	img := findFirst(node, func(n *nethtml.Node) bool {
		return isElement(n, "img") && n.Parent != nil && hasClass(n.Parent, "video-thumbnail")
	})
	if img == nil {
		img = findFirst(node, func(n *nethtml.Node) bool { return isElement(n, "img") })
	}
	if img != nil {
		card.Thumbnail = nodeAttr(img, "src")
		card.LazySrc = nodeAttr(img, "data-src")
		card.Lazy = strings.EqualFold(nodeAttr(img, "loading"), "lazy")
		card.Alt = nodeAttr(img, "alt")
		card.VideoRef = nodeAttr(img, "data-video-id")
		if card.VideoRef == "" {
			card.VideoRef, _ = VideoRefFromSrc(card.Thumbnail)
		}
	}

	if meta := findFirst(node, func(n *nethtml.Node) bool { return hasClass(n, "video-meta") }); meta != nil {
		if span := findFirst(meta, func(n *nethtml.Node) bool { return isElement(n, "span") }); span != nil {
			card.MetaText = normalizeText(collectRawText(span))
			card.Metric, card.HasMetric = ExtractMetric(card.MetaText)
		}
	}

	if link := findFirst(node, func(n *nethtml.Node) bool { return isElement(n, "a") && nodeAttr(n, "href") != "" }); link != nil {
		card.URL = nodeAttr(link, "href")
	}

	if card.Title == "" {
		if h := findFirst(node, func(n *nethtml.Node) bool { return isElement(n, "h3") }); h != nil {
			card.Title = normalizeText(collectRawText(h))
		}
	}
	return card
}

func findFirst(node *nethtml.Node, match func(*nethtml.Node) bool) *nethtml.Node {
	if node == nil {
		return nil
	}
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if match(child) {
			return child
		}
		if found := findFirst(child, match); found != nil {
			return found
		}
	}
	return nil
}

// findAll returns matching descendants in document order without descending
// into matches.
func findAll(node *nethtml.Node, match func(*nethtml.Node) bool) []*nethtml.Node {
	var out []*nethtml.Node
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		if match(child) {
			out = append(out, child)
			continue
		}
		out = append(out, findAll(child, match)...)
	}
	return out
}

func isElement(node *nethtml.Node, tag string) bool {
	return node.Type == nethtml.ElementNode && strings.EqualFold(node.Data, tag)
}

func hasClass(node *nethtml.Node, class string) bool {
	if node.Type != nethtml.ElementNode {
		return false
	}
	for _, c := range strings.Fields(nodeAttr(node, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func nodeAttr(node *nethtml.Node, name string) string {
	for _, attr := range node.Attr {
		if strings.EqualFold(attr.Key, name) {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

func collectRawText(node *nethtml.Node) string {
	if node == nil {
		return ""
	}
	if node.Type == nethtml.TextNode {
		return node.Data
	}
	var b strings.Builder
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		b.WriteString(collectRawText(child))
	}
	return b.String()
}

func normalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func containsString(values []string, v string) bool {
	for _, existing := range values {
		if existing == v {
			return true
		}
	}
	return false
}
