package crawler

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"lojachat/internal/model"
)

// KindProducts marks the storefront grid target; policy targets use their
// model.PolicyKind.
const KindProducts = "products"

// Target is one page to scrape.
type Target struct {
	Kind string
	URL  string
}

// Result holds the parsed document of a target. Exactly one of Catalog or
// Policy is set when Err is nil.
type Result struct {
	Target  Target
	Catalog *model.ProductCatalog
	Policy  *model.PolicyDocument
	Err     error
}

// DefaultTargets lists the home page and the three policy pages of a
// Shopify storefront.
func DefaultTargets(storeURL string) []Target {
	storeURL = strings.TrimRight(storeURL, "/")
	targets := []Target{{Kind: KindProducts, URL: storeURL + "/"}}
	for _, kind := range model.PolicyKinds {
		targets = append(targets, Target{
			Kind: string(kind),
			URL:  storeURL + "/policies/" + kind.DocumentType(),
		})
	}
	return targets
}

// Scrape fetches and parses a single target.
func Scrape(ctx context.Context, client *http.Client, t Target) Result {
	res := Result{Target: t}

	html, err := Fetch(ctx, client, t.URL)
	if err != nil {
		res.Err = err
		return res
	}

	if t.Kind == KindProducts {
		products, err := ParseProducts(html, t.URL)
		if err != nil {
			res.Err = err
			return res
		}
		res.Catalog = model.NewProductCatalog(t.URL, products)
		return res
	}

	page, err := ParsePolicy(html, t.URL)
	if err != nil {
		res.Err = err
		return res
	}
	res.Policy = &model.PolicyDocument{
		ScrapedAt: time.Now().UTC(),
		Source:    t.URL,
		Type:      model.PolicyKind(t.Kind).DocumentType(),
		Data:      page,
	}
	return res
}

// CrawlAll scrapes targets with a fixed number of workers. Results come
// back in target order.
func CrawlAll(ctx context.Context, client *http.Client, targets []Target, workers int, logger zerolog.Logger) []Result {
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(targets))
	jobs := make(chan int)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				res := Scrape(ctx, client, targets[i])
				if res.Err != nil {
					logger.Error().Err(res.Err).Str("kind", res.Target.Kind).Msg("Erro ao raspar página")
				} else {
					logger.Info().Str("kind", res.Target.Kind).Str("url", res.Target.URL).Msg("página raspada")
				}
				results[i] = res
			}
		}()
	}

	for i := range targets {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return results
}
