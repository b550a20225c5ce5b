package chat

import (
	"context"
	"sync"

	"lojachat/internal/model"
)

func testSnapshot() *model.Snapshot {
	return &model.Snapshot{
		Catalog: model.NewProductCatalog("https://loja.test/", []model.Product{
			{Name: "Sapato Scarpin Nude", Price: "189,90", Discount: "20", Link: "https://loja.test/p/scarpin"},
			{Name: "Sandália Rasteira Preta", Price: "79,90", Link: "https://loja.test/p/rasteira"},
			{Name: "Sapato Boneca Nude", Price: "149,90", Link: "https://loja.test/p/boneca"},
			{Name: "Bota Cano Curto Caramelo", Price: "249,90", Link: "https://loja.test/p/bota"},
		}),
		Policies: map[model.PolicyKind]*model.PolicyDocument{
			model.PolicyPrivacy: {
				Source: "https://loja.test/policies/privacy-policy",
				Data: &model.PolicyPage{
					URL: "https://loja.test/policies/privacy-policy",
					Sections: []model.Section{
						{Title: "1. Cookies", Content: "Usamos cookies para lembrar o seu carrinho."},
					},
				},
			},
			model.PolicyRefund: {
				Source: "https://loja.test/policies/refund-policy",
				Data: &model.PolicyPage{
					Sections: []model.Section{
						{Title: "1- Trocas"},
					},
				},
			},
		},
	}
}

type fakeGenerator struct {
	reply    string
	err      error
	received []model.ChatMessage
}

func (f *fakeGenerator) Generate(_ context.Context, messages []model.ChatMessage) (string, error) {
	f.received = messages
	return f.reply, f.err
}

type memoryHistory struct {
	mu   sync.Mutex
	data map[string][]model.ChatMessage
}

func newMemoryHistory() *memoryHistory {
	return &memoryHistory{data: make(map[string][]model.ChatMessage)}
}

func (m *memoryHistory) Get(_ context.Context, sessionID string) ([]model.ChatMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]model.ChatMessage(nil), m.data[sessionID]...), nil
}

func (m *memoryHistory) Append(_ context.Context, sessionID string, msgs ...model.ChatMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[sessionID] = append(m.data[sessionID], msgs...)
	return nil
}
