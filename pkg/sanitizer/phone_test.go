package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"already e164", "+6281130700206", "+6281130700206"},
		{"indonesian national format", "0811-3070-0206", "+6281130700206"},
		{"international with spaces", "+62 811 3070 0206", "+6281130700206"},
		{"foreign number", "+1 (212) 555-1234", "+12125551234"},
		{"empty", "", ""},
		{"unparsable kept", "  call me  ", "call me"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizePhone(tt.input, "ID")
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, NormalizePhone(got, "ID"))
		})
	}
}

func TestWhatsAppDigits(t *testing.T) {
	assert.Equal(t, "6281130700206", WhatsAppDigits("+62 811-3070-0206"))
}
