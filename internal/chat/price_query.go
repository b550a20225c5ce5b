package chat

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"lojachat/internal/model"
)

// priceRule pairs a pattern with the code that reads its submatches.
// Rules are tried in order and the first one that yields a value wins;
// later rules are never merged into the result.
type priceRule struct {
	pattern *regexp.Regexp
	extract func(match []string) (model.PriceQuery, bool)
}

// Amounts are written the Brazilian way: "45", "45,50", "45.50".
const amount = `(\d{1,3}(?:[.,]\d{2})?)`

var ceilingRules = []priceRule{
	// "abaixo de 100", "menos de R$ 80", "até R$45,50"
	{regexp.MustCompile(`(?i)(?:abaixo de|menos de|ate|até)\s*R?\$?\s*` + amount), ceiling},
	// "por R$ 60 ou menos"
	{regexp.MustCompile(`(?i)por\s*R?\$?\s*` + amount + `\s*(?:ou\s*menos)?`), ceiling},
	// "até 50 reais"
	{regexp.MustCompile(`(?i)(?:ate|até)\s*` + amount + `\s*(?:reais|rs|r\$)?`), ceiling},
}

var rangeRules = []priceRule{
	// "entre R$50 e R$30"
	{regexp.MustCompile(`(?i)entre\s*R?\$?\s*` + amount + `\s*(?:e|a)\s*R?\$?\s*` + amount), bounds},
	// "de 100 a 200", "de R$ 80 até R$ 120"
	{regexp.MustCompile(`(?i)de\s*R?\$?\s*` + amount + `\s*(?:a|ate|até)\s*R?\$?\s*` + amount), bounds},
	// "100-200", "100 reais - 150 reais"
	{regexp.MustCompile(`(?i)(\d{1,3})(?:\s*reais)?\s*-\s*(\d{1,3})(?:\s*reais)?`), bounds},
}

func runRules(rules []priceRule, message string) (model.PriceQuery, bool) {
	for _, rule := range rules {
		match := rule.pattern.FindStringSubmatch(message)
		if match == nil {
			continue
		}
		if q, ok := rule.extract(match); ok {
			return q, true
		}
	}
	return model.PriceQuery{}, false
}

func ceiling(match []string) (model.PriceQuery, bool) {
	v, ok := parseAmount(match[1])
	if !ok {
		return model.PriceQuery{}, false
	}
	return model.PriceQuery{Max: &v}, true
}

func bounds(match []string) (model.PriceQuery, bool) {
	a, okA := parseAmount(match[1])
	b, okB := parseAmount(match[2])
	if !okA || !okB {
		return model.PriceQuery{}, false
	}
	lo, hi := math.Min(a, b), math.Max(a, b)
	return model.PriceQuery{Min: &lo, Max: &hi}, true
}

// parseAmount reads an amount captured from a message: "." is dropped as a
// thousands separator and "," becomes the decimal point.
func parseAmount(s string) (float64, bool) {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.Replace(s, ",", ".", 1)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false
	}
	return v, true
}

// ExtractMaxPrice returns the ceiling price in phrases like "até 45,50
// reais" or "por R$ 60 ou menos", or nil when the message has none.
func ExtractMaxPrice(message string) *float64 {
	q, ok := runRules(ceilingRules, message)
	if !ok {
		return nil
	}
	return q.Max
}

// ExtractRange returns the bounds in phrases like "entre 50 e 30" sorted so
// that Min <= Max. Both are nil when the message carries no range.
func ExtractRange(message string) model.PriceQuery {
	q, _ := runRules(rangeRules, message)
	return q
}

// ResolvePriceQuery combines both extractors: a range takes priority and the
// ceiling is only looked for when no range is present.
func ResolvePriceQuery(message string) model.PriceQuery {
	if q := ExtractRange(message); !q.IsZero() {
		return q
	}
	return model.PriceQuery{Max: ExtractMaxPrice(message)}
}
