package catalog

import "math"

// ExtractMetric concatenates every ASCII digit in text and returns the
// resulting number. Units and separators are ignored ("1.2K views" yields 12).
// ok is false when text has no digits. Values beyond int64 saturate.
func ExtractMetric(text string) (value int64, ok bool) {
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch < '0' || ch > '9' {
			continue
		}
		ok = true
		d := int64(ch - '0')
		if value > (math.MaxInt64-d)/10 {
			value = math.MaxInt64
			continue
		}
		value = value*10 + d
	}
	return value, ok
}
