package model

import "time"

// Product é um item da vitrine como foi raspado. O preço fica no formato
// da loja ("1.299,90") e nunca é reescrito.
type Product struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Discount string `json:"discount,omitempty"`
	Link     string `json:"link"`
	Image    string `json:"image,omitempty"`
}

// ProductCatalog é o snapshot de produtos gravado pelo crawler.
type ProductCatalog struct {
	ScrapedAt     time.Time `json:"scrapedAt"`
	Source        string    `json:"source"`
	Type          string    `json:"type"`
	TotalProducts int       `json:"totalProducts"`
	Products      []Product `json:"products"`
}

// NewProductCatalog monta o envelope do snapshot de produtos.
func NewProductCatalog(source string, products []Product) *ProductCatalog {
	return &ProductCatalog{
		ScrapedAt:     time.Now().UTC(),
		Source:        source,
		Type:          "products",
		TotalProducts: len(products),
		Products:      products,
	}
}

// PriceQuery carries the optional bounds extracted from a message.
// When both are set, Min <= Max.
type PriceQuery struct {
	Min *float64
	Max *float64
}

// IsZero reports whether no bound was extracted.
func (q PriceQuery) IsZero() bool {
	return q.Min == nil && q.Max == nil
}
