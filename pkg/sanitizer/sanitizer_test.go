package sanitizer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimAndNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"   ", ""},
		{"  Budi   Santoso ", "Budi Santoso"},
		{"Line\tone\n two", "Line one two"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TrimAndNormalize(tt.in), tt.in)
	}
}

func TestNormalizeEmailAndCode(t *testing.T) {
	assert.Equal(t, "guest@example.com", NormalizeEmail("  Guest@Example.COM "))
	assert.Equal(t, "WEEKEND10", NormalizeCode(" weekend10 "))
	assert.Equal(t, NormalizeCode("x"), NormalizeCode(NormalizeCode("x")))
}

func TestFreeText(t *testing.T) {
	assert.Equal(t, "late check-in", FreeText("  late check-in \n", 1000))
	assert.Equal(t, "abc", FreeText("abcdef", 3))

	long := strings.Repeat("é", 1200)
	assert.Equal(t, 1000, len([]rune(FreeText(long, 1000))))
}

func TestSlice(t *testing.T) {
	got := Slice([]string{" WiFi", "wifi ", "", "Mini Bar", "  "}, func(s string) string {
		return strings.ToLower(TrimAndNormalize(s))
	})
	assert.Equal(t, []string{"wifi", "mini bar"}, got)
	assert.Equal(t, []string{}, Slice(nil, TrimAndNormalize))
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1, Clamp(0, 1, 5))
	assert.Equal(t, 5, Clamp(9, 1, 5))
	assert.Equal(t, 3, Clamp(3, 1, 5))
}

func TestPageKey(t *testing.T) {
	assert.Equal(t, "rooms_html", PageKey("rooms.html"))
	assert.Equal(t, "where", PageKey("$where"))
	assert.Equal(t, "home", PageKey(" home "))
}
