package chat

import (
	"fmt"
	"strings"

	"lojachat/internal/model"
	"lojachat/internal/search"
)

const (
	// maxFallbackProducts limita a lista genérica quando os termos não acham nada.
	maxFallbackProducts = 10
	policyExcerptRunes  = 200
)

// Retrieval is what was pulled from the snapshot for one message.
type Retrieval struct {
	ProductIntent bool
	PolicyIntent  bool
	Greeting      bool
	Price         model.PriceQuery
	Terms         []string
	Products      []model.Product
	// FallbackProducts is set when Products came from the term-less search.
	FallbackProducts bool
	Policies         []model.PolicyMatch
	Context          string
}

// Retrieve classifies the message and assembles the context block the model
// answers from. Product and policy retrieval are independent: a message can
// trigger both or neither.
func Retrieve(snapshot *model.Snapshot, message string) Retrieval {
	lower := strings.ToLower(message)
	r := Retrieval{
		ProductIntent: IsProductIntent(lower, message),
		PolicyIntent:  IsPolicyIntent(lower),
		Greeting:      IsGreeting(lower),
	}

	var sb strings.Builder

	if r.ProductIntent {
		var catalog *model.ProductCatalog
		if snapshot != nil {
			catalog = snapshot.Catalog
		}

		r.Price = ResolvePriceQuery(message)
		r.Terms = ExtractSearchTerms(message)
		terms := r.Terms
		if len(terms) == 0 {
			terms = strings.Fields(ExtractPrimaryCategory(lower))
		}

		r.Products = search.Products(catalog, terms, r.Price.Max, r.Price.Min)
		if len(r.Products) > 0 {
			sb.WriteString("\n\nPRODUTOS ENCONTRADOS:\n")
			writeProducts(&sb, r.Products)
		} else if all := search.Products(catalog, nil, r.Price.Max, r.Price.Min); len(all) > 0 {
			if len(all) > maxFallbackProducts {
				all = all[:maxFallbackProducts]
			}
			r.Products = all
			r.FallbackProducts = true
			sb.WriteString("\n\nPRODUTOS DISPONÍVEIS:\n")
			writeProducts(&sb, all)
		}
	}

	if r.PolicyIntent {
		r.Policies = search.PoliciesFor(snapshot, message)
		if len(r.Policies) > 0 {
			sb.WriteString("\n\nINFORMAÇÕES DAS POLÍTICAS:\n")
			writePolicies(&sb, r.Policies)
		}
	}

	r.Context = sb.String()
	return r
}

func writeProducts(sb *strings.Builder, products []model.Product) {
	for i, p := range products {
		fmt.Fprintf(sb, "%d. %s\n", i+1, p.Name)
		fmt.Fprintf(sb, "Preço: R$ %s\n", p.Price)
		if p.Discount != "" {
			fmt.Fprintf(sb, "Desconto: R$ %s\n", p.Discount)
		}
		fmt.Fprintf(sb, "Link: %s\n\n", p.Link)
	}
}

func writePolicies(sb *strings.Builder, matches []model.PolicyMatch) {
	for _, m := range matches {
		if url := m.Document.URL(); url != "" {
			fmt.Fprintf(sb, "%s: %s\n", m.Kind.Label(), url)
		} else {
			fmt.Fprintf(sb, "%s:\n", m.Kind.Label())
		}
		for _, s := range m.Document.Data.Sections {
			sb.WriteString(s.Title + "\n")
			if s.Content != "" {
				sb.WriteString(excerpt(s.Content, policyExcerptRunes) + "...\n\n")
			}
		}
	}
}

func excerpt(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
