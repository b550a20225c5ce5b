package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lojachat/internal/model"
)

func ptr(v float64) *float64 { return &v }

func testCatalog() *model.ProductCatalog {
	return model.NewProductCatalog("https://loja.test/", []model.Product{
		{Name: "Sapato Scarpin Nude", Price: "189,90", Link: "https://loja.test/p/1"},
		{Name: "Sandália Rasteira Preta", Price: "79,90", Link: "https://loja.test/p/2"},
		{Name: "Sapato Boneca Nude Verniz", Price: "149,90", Link: "https://loja.test/p/3"},
		{Name: "Tênis Casual Branco", Price: "1.299,90", Link: "https://loja.test/p/4"},
		{Name: "Bota Cano Curto Caramelo", Price: "45,00", Link: "https://loja.test/p/5"},
		{Name: "Sapatênis Nude", Price: "consulte", Link: "https://loja.test/p/6"},
		{Name: "Sandália Salto Bloco Nude", Price: "45", Link: "https://loja.test/p/7"},
	})
}

func names(products []model.Product) []string {
	out := make([]string, len(products))
	for i, p := range products {
		out[i] = p.Name
	}
	return out
}

func TestProductsRequiresAllTerms(t *testing.T) {
	got := Products(testCatalog(), []string{"sapato", "nude"}, nil, nil)

	assert.Equal(t, []string{"Sapato Boneca Nude Verniz", "Sapato Scarpin Nude"}, names(got))
}

func TestProductsTermsAreAccentInsensitive(t *testing.T) {
	got := Products(testCatalog(), []string{"Sandália"}, nil, nil)

	assert.Equal(t, []string{"Sandália Salto Bloco Nude", "Sandália Rasteira Preta"}, names(got))
}

func TestProductsStemFallback(t *testing.T) {
	t.Run("uses stems when exact terms miss", func(t *testing.T) {
		// "sandalias" is not a substring of any name; its stem "sand" is.
		got := Products(testCatalog(), []string{"sandalias", "pretas"}, nil, nil)
		assert.Equal(t, []string{"Sandália Rasteira Preta"}, names(got))
	})

	t.Run("short terms are used whole", func(t *testing.T) {
		got := Products(testCatalog(), []string{"xyz"}, nil, nil)
		assert.Empty(t, got)
	})

	t.Run("stays empty when stems miss too", func(t *testing.T) {
		got := Products(testCatalog(), []string{"chinelo", "roxo"}, nil, nil)
		assert.Empty(t, got)
	})
}

func TestProductsPriceBounds(t *testing.T) {
	t.Run("max price is inclusive", func(t *testing.T) {
		got := Products(testCatalog(), nil, ptr(50), nil)
		assert.Equal(t, []string{"Bota Cano Curto Caramelo", "Sandália Salto Bloco Nude"}, names(got))
	})

	t.Run("range", func(t *testing.T) {
		got := Products(testCatalog(), nil, ptr(190), ptr(79.90))
		assert.Equal(t, []string{"Sandália Rasteira Preta", "Sapato Boneca Nude Verniz", "Sapato Scarpin Nude"}, names(got))
	})

	t.Run("bounds combine with terms", func(t *testing.T) {
		got := Products(testCatalog(), []string{"nude"}, ptr(150), nil)
		assert.Equal(t, []string{"Sandália Salto Bloco Nude", "Sapato Boneca Nude Verniz"}, names(got))
	})
}

func TestProductsOrdering(t *testing.T) {
	got := Products(testCatalog(), nil, nil, nil)

	require.Len(t, got, 6, "unparseable price must be dropped")
	assert.Equal(t, "Bota Cano Curto Caramelo", got[0].Name, "equal prices keep catalog order")
	assert.Equal(t, "Sandália Salto Bloco Nude", got[1].Name)
	assert.Equal(t, "Tênis Casual Branco", got[5].Name)
}

func TestProductsKeepsOriginalShape(t *testing.T) {
	catalog := testCatalog()
	got := Products(catalog, []string{"tenis"}, nil, nil)

	require.Len(t, got, 1)
	assert.Equal(t, catalog.Products[3], got[0])
	assert.Equal(t, "Sapato Scarpin Nude", catalog.Products[0].Name, "catalog must not be reordered")
}

func TestProductsMalformedCatalog(t *testing.T) {
	t.Run("nil catalog", func(t *testing.T) {
		assert.Empty(t, Products(nil, []string{"sapato"}, nil, nil))
	})

	t.Run("no parseable prices", func(t *testing.T) {
		catalog := &model.ProductCatalog{Products: []model.Product{
			{Name: "Sapato A", Price: ""},
			{Name: "Sapato B", Price: "sob consulta"},
		}}
		got := Products(catalog, nil, nil, nil)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("blank terms are ignored", func(t *testing.T) {
		got := Products(testCatalog(), []string{"", "  "}, nil, nil)
		assert.Len(t, got, 6)
	})
}
