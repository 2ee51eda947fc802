package ports_test

import (
	"context"
	"testing"

	"github.com/fabulark/fabula/pkg/domain"
	"github.com/fabulark/fabula/pkg/ports"
)

// mockStore keeps encoded documents in a map, simulating the serialization
// boundary every real adapter has.
type mockStore struct {
	data map[string][]byte
}

func newMockStore() *mockStore {
	return &mockStore{data: make(map[string][]byte)}
}

func (m *mockStore) Save(ctx context.Context, stories map[string]*domain.Story) error {
	next := make(map[string][]byte, len(stories))
	for id, s := range stories {
		raw, err := s.Encode()
		if err != nil {
			return err
		}
		next[id] = raw
	}
	m.data = next
	return nil
}

func (m *mockStore) Load(ctx context.Context) (map[string]*domain.Story, error) {
	stories := make(map[string]*domain.Story, len(m.data))
	for id, raw := range m.data {
		s, err := domain.Decode(raw)
		if err != nil {
			return nil, err
		}
		stories[id] = s
	}
	return stories, nil
}

// The mock doubles as the reference implementation of the contract that
// real adapters are held to.
func TestStoryStore_Contract(t *testing.T) {
	ports.RunStoryStoreContract(t, newMockStore())
}
