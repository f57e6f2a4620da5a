package infrastructure

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// Dialect variante SQL supportée par SQLStore
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite"
)

// sqlQueries requêtes propres à chaque dialecte
type sqlQueries struct {
	schema []string
	selectAll,
	insert,
	update,
	delete string
}

var dialectQueries = map[Dialect]sqlQueries{
	DialectPostgres: {
		schema: []string{
			`CREATE TABLE IF NOT EXISTS documents (
				id BIGSERIAL PRIMARY KEY,
				collection TEXT NOT NULL,
				body JSONB NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents (collection)`,
		},
		selectAll: `SELECT id, body FROM documents WHERE collection = $1 ORDER BY id`,
		insert:    `INSERT INTO documents (collection, body) VALUES ($1, $2::jsonb)`,
		update:    `UPDATE documents SET body = $1::jsonb WHERE id = $2`,
		delete:    `DELETE FROM documents WHERE id = $1`,
	},
	DialectSQLite: {
		schema: []string{
			`CREATE TABLE IF NOT EXISTS documents (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				collection TEXT NOT NULL,
				body TEXT NOT NULL
			)`,
			`CREATE INDEX IF NOT EXISTS idx_documents_collection ON documents (collection)`,
		},
		selectAll: `SELECT id, body FROM documents WHERE collection = ? ORDER BY id`,
		insert:    `INSERT INTO documents (collection, body) VALUES (?, ?)`,
		update:    `UPDATE documents SET body = ? WHERE id = ?`,
		delete:    `DELETE FROM documents WHERE id = ?`,
	},
}

// SQLStore DocumentStore stockant chaque document en JSON dans une table unique
type SQLStore struct {
	BaseRepository
	uow     UnitOfWork
	dialect Dialect
	queries sqlQueries
}

// OpenSQLStore ouvre la base (driver déjà enregistré par l'appelant) et crée le schéma
func OpenSQLStore(ctx context.Context, dialect Dialect, dsn string) (*SQLStore, error) {
	queries, ok := dialectQueries[dialect]
	if !ok {
		return nil, fmt.Errorf("unsupported sql dialect %q", dialect)
	}

	db, err := sql.Open(string(dialect), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", dialect, err)
	}

	// Pool de connexions
	if dialect == DialectSQLite {
		// une base ":memory:" n'existe que pour sa connexion
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", dialect, err)
	}

	store := &SQLStore{
		BaseRepository: NewBaseRepository(db),
		uow:            NewUnitOfWork(db),
		dialect:        dialect,
		queries:        queries,
	}
	if err := store.ensureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Dialect retourne le dialecte utilisé
func (s *SQLStore) Dialect() Dialect {
	return s.dialect
}

func (s *SQLStore) ensureSchema(ctx context.Context) error {
	for _, stmt := range s.queries.schema {
		if _, err := s.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// storedDocument ligne de la table documents
type storedDocument struct {
	id  int64
	doc Document
}

func (s *SQLStore) load(ctx context.Context, repo BaseRepository, collection string) ([]storedDocument, error) {
	rows, err := repo.Query(ctx, s.queries.selectAll, collection)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", collection, err)
	}
	defer rows.Close()

	var out []storedDocument
	for rows.Next() {
		var (
			id   int64
			body []byte
		)
		if err := rows.Scan(&id, &body); err != nil {
			return nil, fmt.Errorf("scan %s: %w", collection, err)
		}
		doc := Document{}
		if err := json.Unmarshal(body, &doc); err != nil {
			return nil, fmt.Errorf("decode %s #%d: %w", collection, id, err)
		}
		out = append(out, storedDocument{id: id, doc: doc})
	}
	return out, rows.Err()
}

func documentsOf(stored []storedDocument) []Document {
	docs := make([]Document, len(stored))
	for i, sd := range stored {
		docs[i] = sd.doc
	}
	return docs
}

// FindAll retourne tous les documents de la collection dans l'ordre d'insertion
func (s *SQLStore) FindAll(ctx context.Context, collection string) ([]Document, error) {
	stored, err := s.load(ctx, s.BaseRepository, collection)
	if err != nil {
		return nil, err
	}
	return documentsOf(stored), nil
}

// FindOne retourne le premier document correspondant
func (s *SQLStore) FindOne(ctx context.Context, collection, field string, value any) (Document, error) {
	docs, err := s.FindAll(ctx, collection)
	if err != nil {
		return nil, err
	}
	if i := indexOfMatch(docs, field, value); i >= 0 {
		return docs[i], nil
	}
	return nil, ErrDocumentNotFound
}

// Insert ajoute un document
func (s *SQLStore) Insert(ctx context.Context, collection string, doc Document) error {
	return s.InsertMany(ctx, collection, []Document{doc})
}

// InsertMany ajoute plusieurs documents dans une seule transaction
func (s *SQLStore) InsertMany(ctx context.Context, collection string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	return s.uow.Execute(ctx, func(tx *sql.Tx) error {
		stmt, err := tx.PrepareContext(ctx, s.queries.insert)
		if err != nil {
			return fmt.Errorf("prepare insert: %w", err)
		}
		defer stmt.Close()

		for _, doc := range docs {
			body, err := json.Marshal(jsonSafe(doc))
			if err != nil {
				return fmt.Errorf("encode document: %w", err)
			}
			if _, err := stmt.ExecContext(ctx, collection, string(body)); err != nil {
				return fmt.Errorf("insert %s: %w", collection, err)
			}
		}
		return nil
	})
}

// Update fusionne set dans le premier document correspondant
func (s *SQLStore) Update(ctx context.Context, collection, field string, value any, set Document) (int64, error) {
	var matched int64
	err := s.uow.Execute(ctx, func(tx *sql.Tx) error {
		repo := s.WithTx(tx)
		stored, err := s.load(ctx, repo, collection)
		if err != nil {
			return err
		}
		i := indexOfMatch(documentsOf(stored), field, value)
		if i < 0 {
			return nil
		}

		merged := stored[i].doc.Clone()
		for k, v := range set {
			merged[k] = v
		}
		body, err := json.Marshal(jsonSafe(merged))
		if err != nil {
			return fmt.Errorf("encode document: %w", err)
		}
		if _, err := repo.Exec(ctx, s.queries.update, string(body), stored[i].id); err != nil {
			return fmt.Errorf("update %s: %w", collection, err)
		}
		matched = 1
		return nil
	})
	return matched, err
}

// Delete supprime le premier document correspondant
func (s *SQLStore) Delete(ctx context.Context, collection, field string, value any) (int64, error) {
	var deleted int64
	err := s.uow.Execute(ctx, func(tx *sql.Tx) error {
		repo := s.WithTx(tx)
		stored, err := s.load(ctx, repo, collection)
		if err != nil {
			return err
		}
		i := indexOfMatch(documentsOf(stored), field, value)
		if i < 0 {
			return nil
		}
		res, err := repo.Exec(ctx, s.queries.delete, stored[i].id)
		if err != nil {
			return fmt.Errorf("delete %s: %w", collection, err)
		}
		deleted, err = res.RowsAffected()
		return err
	})
	return deleted, err
}

// MaxInt retourne le plus grand identifiant entier
func (s *SQLStore) MaxInt(ctx context.Context, collection string, fields ...string) (int64, error) {
	docs, err := s.FindAll(ctx, collection)
	if err != nil {
		return 0, err
	}
	return maxIntOf(docs, fields), nil
}

// Close ferme la connexion
func (s *SQLStore) Close(context.Context) error {
	return s.DB().Close()
}
