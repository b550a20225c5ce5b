package model

import "time"

// PolicyKind identifies one of the three fixed store documents.
type PolicyKind string

const (
	PolicyTerms   PolicyKind = "terms"
	PolicyPrivacy PolicyKind = "privacy"
	PolicyRefund  PolicyKind = "refund"
)

// PolicyKinds lists the documents in declaration order.
var PolicyKinds = []PolicyKind{PolicyTerms, PolicyPrivacy, PolicyRefund}

// Label is the display name injected in the model context.
func (k PolicyKind) Label() string {
	switch k {
	case PolicyTerms:
		return "Termos de Serviço"
	case PolicyPrivacy:
		return "Política de Privacidade"
	case PolicyRefund:
		return "Política de Reembolso"
	}
	return string(k)
}

// DocumentType is the envelope type and the storefront path segment
// ("/policies/refund-policy").
func (k PolicyKind) DocumentType() string {
	switch k {
	case PolicyTerms:
		return "terms-of-service"
	case PolicyPrivacy:
		return "privacy-policy"
	case PolicyRefund:
		return "refund-policy"
	}
	return string(k)
}

// Section is a titled block of a policy page. Subsections are kept for
// completeness but search only looks at first-level title and content.
type Section struct {
	Number      string    `json:"number,omitempty"`
	Title       string    `json:"title"`
	Level       int       `json:"level,omitempty"`
	Content     string    `json:"content,omitempty"`
	Subsections []Section `json:"subsections,omitempty"`
}

type Link struct {
	Text string `json:"text"`
	URL  string `json:"url"`
}

// PolicyPage is the parsed body of a policy page.
type PolicyPage struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	URL         string    `json:"url"`
	Sections    []Section `json:"sections"`
	Links       []Link    `json:"links,omitempty"`
	FullText    string    `json:"fullText,omitempty"`
}

// PolicyDocument is the JSON envelope written for each policy page.
type PolicyDocument struct {
	ScrapedAt time.Time   `json:"scrapedAt"`
	Source    string      `json:"source"`
	Type      string      `json:"type"`
	Data      *PolicyPage `json:"data"`
}

// HasSections reports whether the document can take part in a search.
func (d *PolicyDocument) HasSections() bool {
	return d != nil && d.Data != nil && len(d.Data.Sections) > 0
}

// URL returns the page url, falling back to the scrape source.
func (d *PolicyDocument) URL() string {
	if d == nil {
		return ""
	}
	if d.Data != nil && d.Data.URL != "" {
		return d.Data.URL
	}
	return d.Source
}

// PolicyMatch is a policy document selected for a query.
type PolicyMatch struct {
	Kind     PolicyKind
	Document *PolicyDocument
}
