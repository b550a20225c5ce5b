package search

import (
	"sort"
	"strings"

	"lojachat/internal/model"
)

// stemLength is how many leading runes of a term survive the relaxed retry.
const stemLength = 4

type annotatedProduct struct {
	product  model.Product
	price    float64
	nameNorm string
}

// Products filters the catalog by price bounds and terms and returns the
// matches ordered by ascending price (ties keep catalog order).
//
// Every term must appear in the normalized product name. When nothing
// matches, the search is retried once with the first four runes of each
// term. Products whose price does not parse are never returned. A nil or
// empty catalog yields an empty slice.
func Products(catalog *model.ProductCatalog, terms []string, maxPrice, minPrice *float64) []model.Product {
	if catalog == nil || len(catalog.Products) == 0 {
		return []model.Product{}
	}

	candidates := make([]annotatedProduct, 0, len(catalog.Products))
	for _, p := range catalog.Products {
		price := ParsePrice(p.Price)
		if !IsValidPrice(price) {
			continue
		}
		if maxPrice != nil && price > *maxPrice {
			continue
		}
		if minPrice != nil && price < *minPrice {
			continue
		}
		candidates = append(candidates, annotatedProduct{
			product:  p,
			price:    price,
			nameNorm: Normalize(p.Name),
		})
	}

	if needles := normalizeTerms(terms); len(needles) > 0 {
		results := filterByTerms(candidates, needles)
		if len(results) == 0 {
			results = filterByTerms(candidates, stems(needles))
		}
		candidates = results
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].price < candidates[j].price
	})

	out := make([]model.Product, len(candidates))
	for i, c := range candidates {
		out[i] = c.product
	}
	return out
}

func normalizeTerms(terms []string) []string {
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if n := Normalize(t); n != "" {
			out = append(out, n)
		}
	}
	return out
}

func filterByTerms(candidates []annotatedProduct, terms []string) []annotatedProduct {
	var out []annotatedProduct
	for _, c := range candidates {
		if containsAll(c.nameNorm, terms) {
			out = append(out, c)
		}
	}
	return out
}

func containsAll(s string, terms []string) bool {
	for _, t := range terms {
		if !strings.Contains(s, t) {
			return false
		}
	}
	return true
}

func stems(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		r := []rune(t)
		if len(r) > stemLength {
			r = r[:stemLength]
		}
		out[i] = string(r)
	}
	return out
}
