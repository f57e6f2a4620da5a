package infrastructure

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// ErrDocumentNotFound aucun document ne correspond au filtre
var ErrDocumentNotFound = errors.New("document not found")

// IDField identifiant technique retiré lors du chargement
const IDField = "_id"

// Document enregistrement brut clé/valeur faiblement typé
type Document map[string]any

// Clone retourne une copie superficielle du document
func (d Document) Clone() Document {
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

// DocumentStore abstraction du magasin de documents (Mongo, Postgres, SQLite, mémoire)
type DocumentStore interface {
	// FindAll retourne tous les documents d'une collection, sans pagination
	FindAll(ctx context.Context, collection string) ([]Document, error)
	// FindOne retourne le premier document dont field vaut value
	FindOne(ctx context.Context, collection, field string, value any) (Document, error)
	Insert(ctx context.Context, collection string, doc Document) error
	InsertMany(ctx context.Context, collection string, docs []Document) error
	// Update applique set au premier document correspondant et retourne le nombre modifié
	Update(ctx context.Context, collection, field string, value any, set Document) (int64, error)
	// Delete supprime le premier document correspondant
	Delete(ctx context.Context, collection, field string, value any) (int64, error)
	// MaxInt retourne la plus grande valeur entière trouvée parmi fields (0 si aucune)
	MaxInt(ctx context.Context, collection string, fields ...string) (int64, error)
	Close(ctx context.Context) error
}

// NormalizeKey convertit une valeur d'identifiant en clé canonique.
// 3, int32(3), 3.0 et " 3 " donnent tous "3". Une valeur vide donne "".
func NormalizeKey(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		s := strings.TrimSpace(v)
		if f, err := strconv.ParseFloat(s, 64); err == nil && isWhole(f) {
			return strconv.FormatInt(int64(f), 10)
		}
		return s
	case int:
		return strconv.Itoa(v)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case float32:
		return formatKeyFloat(float64(v))
	case float64:
		return formatKeyFloat(v)
	case json.Number:
		return NormalizeKey(v.String())
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// MatchValue compare deux valeurs d'identifiant après normalisation
func MatchValue(a, b any) bool {
	ka := NormalizeKey(a)
	return ka != "" && ka == NormalizeKey(b)
}

// ToInt64 convertit une valeur brute en entier, ok=false si impossible
func ToInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case float64:
		if isWhole(v) {
			return int64(v), true
		}
	case float32:
		if isWhole(float64(v)) {
			return int64(v), true
		}
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return n, true
		}
	case string:
		if n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

// maxIntOf calcule le maximum entier des champs donnés sur un lot de documents
func maxIntOf(docs []Document, fields []string) int64 {
	var max int64
	for _, doc := range docs {
		for _, field := range fields {
			if n, ok := ToInt64(doc[field]); ok && n > max {
				max = n
			}
		}
	}
	return max
}

// indexOfMatch retourne l'index du premier document dont field correspond à value
func indexOfMatch(docs []Document, field string, value any) int {
	for i, doc := range docs {
		if MatchValue(doc[field], value) {
			return i
		}
	}
	return -1
}

// jsonSafe convertit les valeurs non sérialisables telles quelles (dates) avant encodage
func jsonSafe(doc Document) Document {
	out := make(Document, len(doc))
	for k, v := range doc {
		if k == IDField {
			continue
		}
		if t, ok := v.(time.Time); ok {
			out[k] = t.Format(time.RFC3339)
			continue
		}
		out[k] = v
	}
	return out
}

func formatKeyFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if isWhole(f) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func isWhole(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0) && f == math.Trunc(f) && math.Abs(f) < 1<<62
}
