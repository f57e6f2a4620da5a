package infrastructure

import (
	"context"
	"sync"
)

// MemoryStore implémentation en mémoire du DocumentStore (tests, démo sans base)
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string][]Document
	failWith    error
}

// NewMemoryStore crée un magasin vide
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string][]Document)}
}

// FailWith force toutes les opérations suivantes à retourner err (nil pour rétablir)
func (s *MemoryStore) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = err
}

// FindAll retourne une copie des documents de la collection
func (s *MemoryStore) FindAll(_ context.Context, collection string) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	docs := s.collections[collection]
	out := make([]Document, len(docs))
	for i, doc := range docs {
		out[i] = doc.Clone()
	}
	return out, nil
}

// FindOne retourne le premier document correspondant
func (s *MemoryStore) FindOne(_ context.Context, collection, field string, value any) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return nil, s.failWith
	}

	docs := s.collections[collection]
	if i := indexOfMatch(docs, field, value); i >= 0 {
		return docs[i].Clone(), nil
	}
	return nil, ErrDocumentNotFound
}

// Insert ajoute un document
func (s *MemoryStore) Insert(ctx context.Context, collection string, doc Document) error {
	return s.InsertMany(ctx, collection, []Document{doc})
}

// InsertMany ajoute plusieurs documents
func (s *MemoryStore) InsertMany(_ context.Context, collection string, docs []Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}

	for _, doc := range docs {
		s.collections[collection] = append(s.collections[collection], doc.Clone())
	}
	return nil
}

// Update applique set au premier document correspondant
func (s *MemoryStore) Update(_ context.Context, collection, field string, value any, set Document) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}

	docs := s.collections[collection]
	i := indexOfMatch(docs, field, value)
	if i < 0 {
		return 0, nil
	}
	updated := docs[i].Clone()
	for k, v := range set {
		updated[k] = v
	}
	docs[i] = updated
	return 1, nil
}

// Delete supprime le premier document correspondant
func (s *MemoryStore) Delete(_ context.Context, collection, field string, value any) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return 0, s.failWith
	}

	docs := s.collections[collection]
	i := indexOfMatch(docs, field, value)
	if i < 0 {
		return 0, nil
	}
	s.collections[collection] = append(docs[:i:i], docs[i+1:]...)
	return 1, nil
}

// MaxInt retourne le plus grand identifiant entier
func (s *MemoryStore) MaxInt(_ context.Context, collection string, fields ...string) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.failWith != nil {
		return 0, s.failWith
	}
	return maxIntOf(s.collections[collection], fields), nil
}

// Close ne fait rien pour le magasin en mémoire
func (s *MemoryStore) Close(context.Context) error {
	return nil
}
