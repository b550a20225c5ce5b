package search

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	currencyPattern = regexp.MustCompile(`[\sR$]+`)

	// Leading decimal literal; trailing garbage is ignored the way the
	// storefront's own price widgets tolerate it.
	leadingNumberPattern = regexp.MustCompile(`^[+-]?(?:\d+\.?\d*|\.\d+)(?:[eE][+-]?\d+)?`)
)

// ParsePrice converts a store price ("R$ 1.299,90", "45,00", "45") into a
// number. It expects the Brazilian convention: "." groups thousands and ","
// marks decimals. Without a comma and with several dots only the last dot is
// read as decimal. Unparseable input yields NaN, never a panic.
func ParsePrice(raw string) float64 {
	s := currencyPattern.ReplaceAllString(raw, "")
	if s == "" {
		return math.NaN()
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else if parts := strings.Split(s, "."); len(parts) > 2 {
		last := parts[len(parts)-1]
		s = strings.Join(parts[:len(parts)-1], "") + "." + last
	}

	literal := leadingNumberPattern.FindString(s)
	if literal == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(literal, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return math.NaN()
	}
	return v
}

// IsValidPrice reports whether v came out of a successful ParsePrice.
func IsValidPrice(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
