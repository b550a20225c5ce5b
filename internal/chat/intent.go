package chat

import (
	"regexp"
	"strings"

	"lojachat/internal/search"
)

// Palavras que indicam busca de produtos. A mensagem chega só em minúsculas,
// por isso as variações com acento ficam na lista.
var (
	productWords = []string{
		"produto", "sapato", "calçado", "mocatênis", "sapatênis", "bota",
		"sandália", "tênis", "nude", "cor",
	}
	priceWords = []string{
		"preço", "valor", "abaixo de", "menos de", "até", "ate", "entre", "reais",
	}
	linkWords = []string{"link", "links", "url"}

	pricePhrasePattern = regexp.MustCompile(`(?i)por\s*R?\$?\s*\d+\s*(?:ou\s*menos)?`)
)

// policyWords are matched against the normalized message.
var policyWords = []string{
	"termo", "politica", "reembolso", "troca", "devolucao", "entrega",
	"prazo", "cancelamento", "cookie", "cookies", "privacidade",
}

type category struct {
	term    string
	pattern *regexp.Regexp
}

// categories in priority order.
var categories = []category{
	{"sapato", regexp.MustCompile(`sapato|calcado|calcados`)},
	{"sandalia", regexp.MustCompile(`sandalia|sandalias`)},
	{"tenis", regexp.MustCompile(`tenis|mocatenis|mocass?im|sapatenis`)},
	{"bota", regexp.MustCompile(`bota|botas`)},
}

var colorWords = []string{
	"nude", "preto", "branco", "marrom", "bege", "caramelo", "rosa", "azul",
	"verde", "vermelho", "cinza", "grafite", "off", "off white", "amarelo",
	"vinho", "creme",
}

var greetingPattern = regexp.MustCompile(`(?:\b|^)(?:oi|ola|opa|eae|fala|hey|hello|hi|bom dia|boa tarde|boa noite)(?:\b|$)`)

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// IsProductIntent reports whether the message asks about products: a
// category or color word, price vocabulary, a link request, or a
// "por R$ N" phrase in the raw message. Any single signal is enough.
func IsProductIntent(lowerMessage, rawMessage string) bool {
	return containsAny(lowerMessage, productWords) ||
		containsAny(lowerMessage, priceWords) ||
		containsAny(lowerMessage, linkWords) ||
		pricePhrasePattern.MatchString(rawMessage)
}

// IsPolicyIntent reports whether the message mentions terms, privacy,
// refunds, exchanges or delivery.
func IsPolicyIntent(lowerMessage string) bool {
	return containsAny(search.Normalize(lowerMessage), policyWords)
}

// IsGreeting reports whether the message contains a plain greeting.
func IsGreeting(lowerMessage string) bool {
	return greetingPattern.MatchString(search.Normalize(lowerMessage))
}

// ExtractSearchTerms returns the category and color words found in the
// message, deduplicated. Categories come first in priority order, then
// colors in list order.
func ExtractSearchTerms(message string) []string {
	text := search.Normalize(message)

	var terms []string
	seen := make(map[string]bool)
	add := func(t string) {
		if !seen[t] {
			seen[t] = true
			terms = append(terms, t)
		}
	}

	for _, c := range categories {
		if c.pattern.MatchString(text) {
			add(c.term)
		}
	}
	for _, c := range colorWords {
		if strings.Contains(text, c) {
			add(c)
		}
	}
	return terms
}

// ExtractPrimaryCategory returns the first matching category, or "" to
// search the whole catalog.
func ExtractPrimaryCategory(lowerMessage string) string {
	text := search.Normalize(lowerMessage)
	for _, c := range categories {
		if c.pattern.MatchString(text) {
			return c.term
		}
	}
	return ""
}
