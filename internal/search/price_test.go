package search

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want float64
	}{
		{name: "thousands and decimals", raw: "1.299,90", want: 1299.90},
		{name: "decimal comma", raw: "45,00", want: 45},
		{name: "integer", raw: "45", want: 45},
		{name: "currency symbol and spaces", raw: "R$ 89,90", want: 89.90},
		{name: "currency without space", raw: "R$129,00", want: 129},
		{name: "several thousand groups", raw: "1.234.567,89", want: 1234567.89},
		{name: "single dot is decimal", raw: "45.50", want: 45.50},
		{name: "multiple dots keep last as decimal", raw: "1.299.90", want: 1299.90},
		{name: "inner spaces", raw: "1 299,90", want: 1299.90},
		{name: "trailing text ignored", raw: "59,90 à vista", want: 59.90},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ParsePrice(tc.raw), 1e-9)
		})
	}
}

func TestParsePriceUnparseable(t *testing.T) {
	for _, raw := range []string{"", "R$", "abc", "consulte", ",", "."} {
		t.Run(raw, func(t *testing.T) {
			v := ParsePrice(raw)
			assert.True(t, math.IsNaN(v), "ParsePrice(%q) = %v, want NaN", raw, v)
			assert.False(t, IsValidPrice(v))
		})
	}
}
