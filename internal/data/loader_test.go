package data

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lojachat/internal/model"
)

const productsJSON = `{
  "scrapedAt": "2025-01-10T12:00:00.000Z",
  "source": "https://diravena.com/",
  "type": "products",
  "totalProducts": 2,
  "products": [
    {"name": "Sapato Boneca Nude", "price": "149,90", "discount": "", "link": "https://diravena.com/products/boneca", "image": ""},
    {"name": "Bota Caramelo", "price": "1.249,90", "discount": "10", "link": "https://diravena.com/products/bota", "image": "https://cdn.test/bota.jpg"}
  ]
}`

const refundJSON = `{
  "scrapedAt": "2025-01-10T12:00:00.000Z",
  "source": "https://diravena.com/policies/refund-policy",
  "type": "refund-policy",
  "data": {
    "title": "Política de reembolso",
    "description": "",
    "url": "https://diravena.com/policies/refund-policy",
    "sections": [
      {"number": "1", "title": "1- Trocas", "level": 1, "content": "Até 7 dias.", "subsections": []}
    ],
    "links": [],
    "fullText": "1- Trocas Até 7 dias."
  }
}`

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ProductsFile, productsJSON)
	writeFile(t, dir, PolicyFile(model.PolicyRefund), refundJSON)
	writeFile(t, dir, PolicyFile(model.PolicyPrivacy), `{"data": {`)

	snapshot := LoadDir(dir, zerolog.Nop())

	require.NotNil(t, snapshot.Catalog)
	assert.Len(t, snapshot.Catalog.Products, 2)
	assert.Equal(t, "1.249,90", snapshot.Catalog.Products[1].Price)
	assert.Equal(t, 2025, snapshot.Catalog.ScrapedAt.Year())

	refund := snapshot.Policy(model.PolicyRefund)
	require.NotNil(t, refund)
	assert.True(t, refund.HasSections())
	assert.Equal(t, "1- Trocas", refund.Data.Sections[0].Title)

	assert.Nil(t, snapshot.Policy(model.PolicyPrivacy), "malformed file is treated as absent")
	assert.Nil(t, snapshot.Policy(model.PolicyTerms), "missing file is treated as absent")
}

func TestLoadDirMissing(t *testing.T) {
	snapshot := LoadDir(filepath.Join(t.TempDir(), "nope"), zerolog.Nop())

	require.NotNil(t, snapshot)
	assert.Nil(t, snapshot.Catalog)
	assert.Empty(t, snapshot.Policies)
}

func TestWriteThenLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	catalog := model.NewProductCatalog("https://diravena.com/", []model.Product{
		{Name: "Tênis Branco", Price: "199,90", Link: "https://diravena.com/products/tenis"},
	})
	doc := &model.PolicyDocument{
		Source: "https://diravena.com/policies/terms-of-service",
		Type:   "terms-of-service",
		Data:   &model.PolicyPage{Sections: []model.Section{{Title: "1- Visão geral", Level: 1}}},
	}

	require.NoError(t, WriteCatalog(dir, catalog))
	require.NoError(t, WritePolicy(dir, model.PolicyTerms, doc))
	assert.Error(t, WritePolicy(dir, model.PolicyKind("faq"), doc))

	snapshot := LoadDir(dir, zerolog.Nop())
	require.NotNil(t, snapshot.Catalog)
	assert.Equal(t, 1, snapshot.Catalog.TotalProducts)
	assert.Equal(t, "Tênis Branco", snapshot.Catalog.Products[0].Name)
	assert.Equal(t, "https://diravena.com/policies/terms-of-service", snapshot.Policy(model.PolicyTerms).URL())
}
