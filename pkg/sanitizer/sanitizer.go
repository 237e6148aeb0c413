package sanitizer

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

type Strategy func(string) string

type Pipeline []Strategy

func (p Pipeline) Apply(s string) string {
	for _, fn := range p {
		s = fn(s)
	}
	return s
}

// TrimAndNormalize trims s and collapses runs of whitespace into one space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

func NormalizeName(name string) string {
	return TrimAndNormalize(name)
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// NormalizeCode is used for promo and booking codes, which are matched
// case-insensitively and stored uppercase.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Truncate cuts s to at most n runes.
func Truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n])
}

// FreeText trims and caps multi-line guest text such as special requests.
func FreeText(s string, limit int) string {
	return Pipeline{
		strings.TrimSpace,
		func(s string) string { return Truncate(s, limit) },
		strings.TrimSpace,
	}.Apply(s)
}

// Slice normalizes each item and drops empties and duplicates, keeping the
// first occurrence's position.
func Slice(items []string, strategy Strategy) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))

	for _, item := range items {
		s := strategy(item)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}

	return out
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}

// PageKey turns a page path into a safe document field name.
func PageKey(page string) string {
	page = strings.TrimSpace(page)
	page = strings.ReplaceAll(page, ".", "_")
	return strings.TrimLeft(page, "$")
}
