package search

import (
	"regexp"
	"strings"

	"lojachat/internal/model"
)

type policyIntent struct {
	kind    model.PolicyKind
	pattern *regexp.Regexp
}

// Keyword patterns run against the normalized query.
var policyIntents = []policyIntent{
	{model.PolicyTerms, regexp.MustCompile(`termo|condicao`)},
	{model.PolicyPrivacy, regexp.MustCompile(`privacidade|dados pessoais|lgpd|cookie`)},
	{model.PolicyRefund, regexp.MustCompile(`reembolso|troca|devolucao|cancelamento`)},
}

// Policies selects the policy documents relevant to query.
//
// Documents that are nil or have no sections are ignored. An empty query
// returns every available document. Otherwise documents whose keywords match
// the query come first (terms, privacy, refund), followed by documents where
// the whole normalized query appears in a first-level section title or
// content. If nothing matches, every available document is returned.
func Policies(terms, privacy, refund *model.PolicyDocument, query string) []model.PolicyMatch {
	var all []model.PolicyMatch
	for _, m := range []model.PolicyMatch{
		{Kind: model.PolicyTerms, Document: terms},
		{Kind: model.PolicyPrivacy, Document: privacy},
		{Kind: model.PolicyRefund, Document: refund},
	} {
		if m.Document.HasSections() {
			all = append(all, m)
		}
	}

	if strings.TrimSpace(query) == "" {
		return all
	}
	needle := Normalize(query)

	wanted := make(map[model.PolicyKind]bool, len(policyIntents))
	for _, intent := range policyIntents {
		if intent.pattern.MatchString(needle) {
			wanted[intent.kind] = true
		}
	}

	merged := make([]model.PolicyMatch, 0, len(all))
	seen := make(map[model.PolicyKind]bool, len(all))
	for _, m := range all {
		if wanted[m.Kind] {
			merged = append(merged, m)
			seen[m.Kind] = true
		}
	}
	for _, m := range all {
		if !seen[m.Kind] && sectionsContain(m.Document.Data.Sections, needle) {
			merged = append(merged, m)
			seen[m.Kind] = true
		}
	}

	if len(merged) == 0 {
		return all
	}
	return merged
}

// PoliciesFor runs Policies over the documents of a snapshot.
func PoliciesFor(snapshot *model.Snapshot, query string) []model.PolicyMatch {
	return Policies(
		snapshot.Policy(model.PolicyTerms),
		snapshot.Policy(model.PolicyPrivacy),
		snapshot.Policy(model.PolicyRefund),
		query,
	)
}

func sectionsContain(sections []model.Section, needle string) bool {
	for _, s := range sections {
		if strings.Contains(Normalize(s.Title), needle) || strings.Contains(Normalize(s.Content), needle) {
			return true
		}
	}
	return false
}
