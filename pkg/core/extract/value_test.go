package extract

import "testing"

func TestParseValue(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want float64
	}{
		{"comma separated", "523,659,586", 523659586},
		{"parenthesized negative", "(1,234)", -1234},
		{"triangle negative", "△1,234", -1234},
		{"filled triangle negative", "▲1,234", -1234},
		{"hyphen placeholder", "-", 0},
		{"em dash placeholder", "—", 0},
		{"empty cell", "", 0},
		{"whitespace only", "   ", 0},
		{"currency prefix", "₩1,234", 1234},
		{"embedded newline", "123\n456", 123456},
		{"decimal", "12.5", 12.5},
		{"plain negative", "-987", -987},
		{"garbage with digits", "약 1,500백만원", 1500},
		{"no digits at all", "해당없음", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseValue(tc.raw)
			if got != tc.want {
				t.Errorf("ParseValue(%q) = %v, want %v", tc.raw, got, tc.want)
			}
		})
	}
}

func TestParseValueNegativeMarkersCombined(t *testing.T) {
	// Parenthesized and triangle markers must not double-negate.
	if got := ParseValue("(△1,234)"); got != -1234 {
		t.Errorf("ParseValue((△1,234)) = %v, want -1234", got)
	}
}
