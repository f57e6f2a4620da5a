package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"

	"jnmoveis/internal/observability"
	shareddomain "jnmoveis/internal/shared/domain"
	sharedinfra "jnmoveis/internal/shared/infrastructure"
)

// Entity entité CRUD sérialisable en document brut
type Entity interface {
	Document() sharedinfra.Document
}

// Patch modification partielle: seuls les champs renseignés sont écrits
type Patch interface {
	Set() sharedinfra.Document
}

// Decoder reconstruit une entité depuis un document brut
type Decoder[T Entity] func(doc sharedinfra.Document) T

// Resource service CRUD générique au-dessus d'une collection.
// Les écritures sont invisibles pour un moteur d'analyse déjà construit.
type Resource[T Entity, P Patch] struct {
	repo     *sharedinfra.CollectionRepository
	decode   Decoder[T]
	validate *validator.Validate
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewResource crée un service CRUD
func NewResource[T Entity, P Patch](
	repo *sharedinfra.CollectionRepository,
	decode Decoder[T],
	validate *validator.Validate,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Resource[T, P] {
	if validate == nil {
		validate = validator.New(validator.WithRequiredStructEnabled())
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Resource[T, P]{
		repo:     repo,
		decode:   decode,
		validate: validate,
		logger:   logger.With("collection", repo.Collection()),
		metrics:  metrics,
	}
}

// Collection nom de la collection servie
func (r *Resource[T, P]) Collection() string {
	return r.repo.Collection()
}

// List toutes les entités, dans l'ordre du magasin
func (r *Resource[T, P]) List(ctx context.Context) ([]T, error) {
	docs, err := r.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", r.Collection(), err)
	}
	out := make([]T, 0, len(docs))
	for _, doc := range docs {
		out = append(out, r.decode(doc))
	}
	return out, nil
}

// Get entité par identifiant
func (r *Resource[T, P]) Get(ctx context.Context, id int64) (T, error) {
	var zero T
	doc, err := r.repo.Get(ctx, id)
	if err != nil {
		return zero, r.mapError(err)
	}
	return r.decode(doc), nil
}

// Create valide l'entité puis l'insère avec le prochain identifiant
func (r *Resource[T, P]) Create(ctx context.Context, item T) (T, error) {
	var zero T
	if err := r.check(item); err != nil {
		return zero, err
	}
	stored, err := r.repo.Create(ctx, item.Document())
	if err != nil {
		return zero, fmt.Errorf("create %s: %w", r.Collection(), err)
	}
	r.metrics.RecordWrite(r.Collection(), "create")
	r.logger.Info("document created", "id", r.repo.IDOf(stored))
	return r.decode(stored), nil
}

// Update valide le patch, l'applique et retourne l'entité relue
func (r *Resource[T, P]) Update(ctx context.Context, id int64, patch P) (T, error) {
	var zero T
	if err := r.check(patch); err != nil {
		return zero, err
	}
	if err := r.repo.Update(ctx, id, patch.Set()); err != nil {
		return zero, r.mapError(err)
	}
	r.metrics.RecordWrite(r.Collection(), "update")
	return r.Get(ctx, id)
}

// Delete supprime l'entité id
func (r *Resource[T, P]) Delete(ctx context.Context, id int64) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return r.mapError(err)
	}
	r.metrics.RecordWrite(r.Collection(), "delete")
	r.logger.Info("document deleted", "id", id)
	return nil
}

func (r *Resource[T, P]) check(v any) error {
	if err := r.validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %w", shareddomain.ErrValidation, err)
	}
	return nil
}

func (r *Resource[T, P]) mapError(err error) error {
	if errors.Is(err, sharedinfra.ErrDocumentNotFound) {
		return fmt.Errorf("%w: %w", shareddomain.ErrNotFound, err)
	}
	return err
}
