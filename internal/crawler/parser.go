package crawler

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"lojachat/internal/model"
)

var (
	nonPriceChars = regexp.MustCompile(`[^\d,.]`)
	nonDigits     = regexp.MustCompile(`\D`)
	spaces        = regexp.MustCompile(`\s+`)

	mainSectionDash = regexp.MustCompile(`^\d+-`)
	mainSectionDot  = regexp.MustCompile(`^\d+\.\s+[A-Z]`)
	subSection      = regexp.MustCompile(`^\d+\.\d+`)

	topicNumbers = []*regexp.Regexp{
		regexp.MustCompile(`^(\d+)-`),
		regexp.MustCompile(`^(\d+\.\d+\.\d+)`),
		regexp.MustCompile(`^(\d+\.\d+)`),
		regexp.MustCompile(`^(\d+)`),
	}
)

const blockSelector = "p, h1, h2, h3, h4, h5, h6, div"

// ParseProducts reads the storefront product grid. Items without a name
// or a price are skipped.
func ParseProducts(html, baseURL string) ([]model.Product, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var products []model.Product
	doc.Find(".grid__item.grid-product").Each(func(_ int, s *goquery.Selection) {
		name := strings.TrimSpace(s.Find(".grid-product__title").First().Text())
		price := nonPriceChars.ReplaceAllString(s.Find(".grid-product__price").First().Text(), "")
		if name == "" || price == "" {
			return
		}

		href, _ := s.Find(".grid-product__image-link").First().Attr("href")
		discount := nonDigits.ReplaceAllString(s.Find(".grid-product__on-sale p").First().Text(), "")

		img := s.Find(".product--image").First()
		image, _ := img.Attr("src")
		if image == "" {
			image, _ = img.Attr("data-src")
		}

		products = append(products, model.Product{
			Name:     name,
			Price:    price,
			Discount: discount,
			Link:     resolve(baseURL, href),
			Image:    resolve(baseURL, image),
		})
	})

	return products, nil
}

// ParsePolicy splits a policy page into numbered sections. "1- Título"
// and "1. Título" open a main section, "1.1" opens a subsection, other
// text is appended to the open (sub)section.
func ParsePolicy(html, pageURL string) (*model.PolicyPage, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	content := doc.Find("main").First()
	if content.Length() == 0 {
		content = doc.Find(".main-content").First()
	}
	if content.Length() == 0 {
		content = doc.Find("body").First()
	}

	page := &model.PolicyPage{
		Title:       strings.TrimSpace(doc.Find("title").First().Text()),
		Description: doc.Find(`meta[name="description"]`).AttrOr("content", ""),
		URL:         pageURL,
		Sections:    []model.Section{},
		Links:       []model.Link{},
		FullText:    cleanText(content.Text()),
	}

	var current, sub *model.Section
	content.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// Containers repeat their children's text.
		if s.Find(blockSelector).Length() > 0 {
			return
		}
		text := cleanText(s.Text())

		switch {
		case mainSectionDash.MatchString(text), mainSectionDot.MatchString(text):
			page.Sections = append(page.Sections, model.Section{
				Number:      topicNumber(text, "0"),
				Title:       text,
				Level:       1,
				Subsections: []model.Section{},
			})
			current = &page.Sections[len(page.Sections)-1]
			sub = nil
		case subSection.MatchString(text):
			if current == nil {
				return
			}
			current.Subsections = append(current.Subsections, model.Section{
				Number: topicNumber(text, "0.0"),
				Title:  text,
				Level:  2,
			})
			sub = &current.Subsections[len(current.Subsections)-1]
		case text != "" && current != nil:
			if sub != nil {
				sub.Content = appendLine(sub.Content, text)
			} else {
				current.Content = appendLine(current.Content, text)
			}
		}
	})

	seen := make(map[string]bool)
	content.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		text := cleanText(s.Text())
		link := resolve(pageURL, s.AttrOr("href", ""))
		if text == "" || link == "" || seen[link] {
			return
		}
		seen[link] = true
		page.Links = append(page.Links, model.Link{Text: text, URL: link})
	})

	return page, nil
}

func cleanText(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

func appendLine(content, text string) string {
	if content == "" {
		return text
	}
	return content + "\n" + text
}

func topicNumber(text, fallback string) string {
	for _, re := range topicNumbers {
		if m := re.FindStringSubmatch(text); m != nil {
			return m[1]
		}
	}
	return fallback
}

// resolve turns relative and protocol-relative references into absolute
// urls.
func resolve(base, ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}
