package adapter

import (
	"context"
	"sync"

	"github.com/avelasq/accountgate/internal/logger"
)

// memoryDocumentStore is an in-memory [DocumentStore] keyed by
// collection then document ID.
type memoryDocumentStore struct {
	logger *logger.Logger

	mu          sync.RWMutex
	collections map[string]map[string]Document
}

// NewMemoryDocumentStore constructs an empty in-memory document backend.
func NewMemoryDocumentStore(logger *logger.Logger) DocumentStore {
	return &memoryDocumentStore{
		logger:      logger,
		collections: make(map[string]map[string]Document),
	}
}

func (s *memoryDocumentStore) Get(ctx context.Context, collection string, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.collections[collection][id]
	if !ok {
		return nil, ErrDocumentNotFound
	}

	return cloneDocument(doc), nil
}

func (s *memoryDocumentStore) Set(ctx context.Context, collection string, id string, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]Document)
	}
	s.collections[collection][id] = cloneDocument(doc)

	return nil
}

func (s *memoryDocumentStore) Create(ctx context.Context, collection string, id string, doc Document) error {
	log := logger.FromContext(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.collections[collection][id]; exists {
		log.Error().Str("collection", collection).Str("id", id).Msg("document already exists")
		return ErrDocumentExists
	}

	if s.collections[collection] == nil {
		s.collections[collection] = make(map[string]Document)
	}
	s.collections[collection][id] = cloneDocument(doc)

	return nil
}

func (s *memoryDocumentStore) Delete(ctx context.Context, collection string, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.collections[collection], id)

	return nil
}

// cloneDocument copies a document so callers cannot mutate stored state
// through a retained reference.
func cloneDocument(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}
