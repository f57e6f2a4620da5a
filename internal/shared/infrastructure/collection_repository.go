package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"
)

// CollectionRepository accès CRUD à une collection dont les documents sont identifiés
// par un entier. Plusieurs noms de champ d'identifiant peuvent coexister ("Id Produto"
// et id_produto); le premier est celui écrit à la création.
type CollectionRepository struct {
	store        DocumentStore
	collection   string
	idFields     []string
	createdField string
	now          func() time.Time

	// sérialise le calcul du prochain identifiant
	createMu sync.Mutex
}

// NewCollectionRepository crée un repository; idFields ne doit pas être vide
func NewCollectionRepository(store DocumentStore, collection string, idFields ...string) *CollectionRepository {
	if len(idFields) == 0 {
		panic("collection repository needs at least one id field")
	}
	return &CollectionRepository{
		store:      store,
		collection: collection,
		idFields:   idFields,
		now:        time.Now,
	}
}

// WithCreatedAt estampille les créations dans field
func (r *CollectionRepository) WithCreatedAt(field string) *CollectionRepository {
	r.createdField = field
	return r
}

// Collection nom de la collection
func (r *CollectionRepository) Collection() string {
	return r.collection
}

// IDOf identifiant entier d'un document (0 si absent)
func (r *CollectionRepository) IDOf(doc Document) int64 {
	return doc.Int(r.idFields...)
}

// List tous les documents de la collection
func (r *CollectionRepository) List(ctx context.Context) ([]Document, error) {
	return r.store.FindAll(ctx, r.collection)
}

// Get premier document dont l'un des champs d'identifiant vaut id
func (r *CollectionRepository) Get(ctx context.Context, id int64) (Document, error) {
	for _, field := range r.idFields {
		doc, err := r.store.FindOne(ctx, r.collection, field, id)
		if err == nil {
			return doc, nil
		}
		if !errors.Is(err, ErrDocumentNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%s %d: %w", r.collection, id, ErrDocumentNotFound)
}

// NextID plus grand identifiant existant + 1
func (r *CollectionRepository) NextID(ctx context.Context) (int64, error) {
	max, err := r.store.MaxInt(ctx, r.collection, r.idFields...)
	if err != nil {
		return 0, err
	}
	return max + 1, nil
}

// Create attribue le prochain identifiant, estampille la date et insère le document
func (r *CollectionRepository) Create(ctx context.Context, doc Document) (Document, error) {
	r.createMu.Lock()
	defer r.createMu.Unlock()

	id, err := r.NextID(ctx)
	if err != nil {
		return nil, err
	}
	stored := doc.Clone()
	stored[r.idFields[0]] = id
	if r.createdField != "" {
		stored[r.createdField] = r.now().UTC().Format(time.RFC3339)
	}
	if err := r.store.Insert(ctx, r.collection, stored); err != nil {
		return nil, err
	}
	return stored, nil
}

// Update applique set au document id; ErrDocumentNotFound si aucun ne correspond
func (r *CollectionRepository) Update(ctx context.Context, id int64, set Document) error {
	if len(set) == 0 {
		_, err := r.Get(ctx, id)
		return err
	}
	for _, field := range r.idFields {
		n, err := r.store.Update(ctx, r.collection, field, id, set)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
	}
	return fmt.Errorf("%s %d: %w", r.collection, id, ErrDocumentNotFound)
}

// Delete supprime le document id; ErrDocumentNotFound si aucun ne correspond
func (r *CollectionRepository) Delete(ctx context.Context, id int64) error {
	for _, field := range r.idFields {
		n, err := r.store.Delete(ctx, r.collection, field, id)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}
	}
	return fmt.Errorf("%s %d: %w", r.collection, id, ErrDocumentNotFound)
}

// ============================================================================
// Lecture typée des documents
// ============================================================================

// Lookup première valeur non nulle parmi fields
func (d Document) Lookup(fields ...string) (any, bool) {
	for _, f := range fields {
		if v, ok := d[f]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// Text valeur texte rognée ("" si absente)
func (d Document) Text(fields ...string) string {
	v, ok := d.Lookup(fields...)
	if !ok {
		return ""
	}
	if s, ok := v.(string); ok {
		return strings.TrimSpace(s)
	}
	return NormalizeKey(v)
}

// Int valeur entière (0 si absente ou non entière)
func (d Document) Int(fields ...string) int64 {
	v, ok := d.Lookup(fields...)
	if !ok {
		return 0
	}
	n, _ := ToInt64(v)
	return n
}

// Float valeur numérique (0 si absente ou illisible)
func (d Document) Float(fields ...string) float64 {
	v, ok := d.Lookup(fields...)
	if !ok {
		return 0
	}
	switch x := v.(type) {
	case float64:
		return x
	case float32:
		return float64(x)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		n, _ := ToInt64(v)
		return float64(n)
	}
}
