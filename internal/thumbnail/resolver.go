// Package thumbnail resolves working thumbnail URLs through a fixed quality
// cascade that ends in a text placeholder.
package thumbnail

import (
	"net/url"
	"regexp"
	"strings"
)

const (
	DefaultImageHost   = "https://img.youtube.com"
	DefaultPlaceholder = "https://via.placeholder.com/320x180"
	defaultTitle       = "Video"
)

type Tier string

const (
	TierMaxRes   Tier = "maxresdefault"
	TierStandard Tier = "sddefault"
	TierHigh     Tier = "hqdefault"
	TierMedium   Tier = "mqdefault"
	TierDefault  Tier = "default"
)

// Cascade lists tiers from highest to lowest quality.
var Cascade = []Tier{TierMaxRes, TierStandard, TierHigh, TierMedium, TierDefault}

var reTierName = regexp.MustCompile(`/([^/]+)\.jpg$`)

// TierIndex returns the position of tier in Cascade, or -1.
func TierIndex(tier Tier) int {
	for i, t := range Cascade {
		if t == tier {
			return i
		}
	}
	return -1
}

// TierFromURL reports the cascade tier named by the final path segment of raw.
func TierFromURL(raw string) (Tier, bool) {
	m := reTierName.FindStringSubmatch(raw)
	if len(m) < 2 {
		return "", false
	}
	tier := Tier(m[1])
	if TierIndex(tier) < 0 {
		return "", false
	}
	return tier, true
}

// Step is the outcome of one resolution.
type Step struct {
	URL      string
	Tier     Tier
	Terminal bool
}

type Resolver struct {
	imageHost   string
	placeholder string
}

func NewResolver(imageHost, placeholder string) *Resolver {
	if strings.TrimSpace(imageHost) == "" {
		imageHost = DefaultImageHost
	}
	if strings.TrimSpace(placeholder) == "" {
		placeholder = DefaultPlaceholder
	}
	return &Resolver{
		imageHost:   strings.TrimRight(imageHost, "/"),
		placeholder: placeholder,
	}
}

func (r *Resolver) URL(videoRef string, tier Tier) string {
	return r.imageHost + "/vi/" + videoRef + "/" + string(tier) + ".jpg"
}

func (r *Resolver) PlaceholderURL(title string) string {
	if strings.TrimSpace(title) == "" {
		title = defaultTitle
	}
	return r.placeholder + "?text=" + url.QueryEscape(title)
}

// Resolve computes the next URL to try after failedURL failed to load.
// A URL that does not name a known tier restarts the cascade at the best tier;
// past the last tier the placeholder is returned as a terminal step.
func (r *Resolver) Resolve(videoRef, failedURL, title string) Step {
	current, ok := TierFromURL(failedURL)
	if !ok {
		return Step{URL: r.URL(videoRef, Cascade[0]), Tier: Cascade[0]}
	}
	next := TierIndex(current) + 1
	if next < len(Cascade) {
		return Step{URL: r.URL(videoRef, Cascade[next]), Tier: Cascade[next]}
	}
	return Step{URL: r.PlaceholderURL(title), Terminal: true}
}
