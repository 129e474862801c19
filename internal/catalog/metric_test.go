package catalog

import (
	"math"
	"testing"
)

func TestExtractMetric(t *testing.T) {
	cases := []struct {
		text  string
		want  int64
		found bool
	}{
		{text: "1,200 views", want: 1200, found: true},
		{text: "45 views", want: 45, found: true},
		{text: "1.2K views", want: 12, found: true},
		{text: "no views yet", want: 0, found: false},
		{text: "", want: 0, found: false},
		{text: "99999999999999999999999 views", want: math.MaxInt64, found: true},
	}
	for _, tc := range cases {
		got, ok := ExtractMetric(tc.text)
		if got != tc.want || ok != tc.found {
			t.Fatalf("ExtractMetric(%q) = (%d, %v), want (%d, %v)", tc.text, got, ok, tc.want, tc.found)
		}
	}
}
