package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore DocumentStore adossé à MongoDB
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore ouvre la connexion et vérifie qu'elle répond (ping)
func NewMongoStore(ctx context.Context, uri, database string, timeout time.Duration) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout)

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &MongoStore{client: client, db: client.Database(database)}, nil
}

// FindAll lit toute la collection en excluant _id
func (s *MongoStore) FindAll(ctx context.Context, collection string) ([]Document, error) {
	opts := options.Find().SetProjection(bson.M{IDField: 0})
	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", collection, err)
	}

	docs := make([]Document, 0, len(raw))
	for _, m := range raw {
		docs = append(docs, fromBSON(m))
	}
	return docs, nil
}

// FindOne retourne le premier document dont field vaut value
func (s *MongoStore) FindOne(ctx context.Context, collection, field string, value any) (Document, error) {
	var raw bson.M
	err := s.db.Collection(collection).FindOne(ctx, keyFilter(field, value)).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrDocumentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find one %s: %w", collection, err)
	}
	return fromBSON(raw), nil
}

// Insert ajoute un document
func (s *MongoStore) Insert(ctx context.Context, collection string, doc Document) error {
	if _, err := s.db.Collection(collection).InsertOne(ctx, bson.M(doc)); err != nil {
		return fmt.Errorf("insert %s: %w", collection, err)
	}
	return nil
}

// InsertMany ajoute plusieurs documents en un seul aller-retour
func (s *MongoStore) InsertMany(ctx context.Context, collection string, docs []Document) error {
	if len(docs) == 0 {
		return nil
	}
	batch := make([]interface{}, len(docs))
	for i, doc := range docs {
		batch[i] = bson.M(doc)
	}
	if _, err := s.db.Collection(collection).InsertMany(ctx, batch); err != nil {
		return fmt.Errorf("insert many %s: %w", collection, err)
	}
	return nil
}

// Update applique un $set sur le premier document correspondant
func (s *MongoStore) Update(ctx context.Context, collection, field string, value any, set Document) (int64, error) {
	res, err := s.db.Collection(collection).UpdateOne(ctx, keyFilter(field, value), bson.M{"$set": bson.M(set)})
	if err != nil {
		return 0, fmt.Errorf("update %s: %w", collection, err)
	}
	return res.MatchedCount, nil
}

// Delete supprime le premier document correspondant
func (s *MongoStore) Delete(ctx context.Context, collection, field string, value any) (int64, error) {
	res, err := s.db.Collection(collection).DeleteOne(ctx, keyFilter(field, value))
	if err != nil {
		return 0, fmt.Errorf("delete %s: %w", collection, err)
	}
	return res.DeletedCount, nil
}

// MaxInt calcule le plus grand identifiant entier côté client
// (les identifiants peuvent être stockés en texte ou en nombre).
func (s *MongoStore) MaxInt(ctx context.Context, collection string, fields ...string) (int64, error) {
	projection := bson.M{IDField: 0}
	for _, f := range fields {
		projection[f] = 1
	}

	cursor, err := s.db.Collection(collection).Find(ctx, bson.M{}, options.Find().SetProjection(projection))
	if err != nil {
		return 0, fmt.Errorf("max %s: %w", collection, err)
	}
	defer cursor.Close(ctx)

	var raw []bson.M
	if err := cursor.All(ctx, &raw); err != nil {
		return 0, fmt.Errorf("max %s: %w", collection, err)
	}
	docs := make([]Document, len(raw))
	for i, m := range raw {
		docs[i] = fromBSON(m)
	}
	return maxIntOf(docs, fields), nil
}

// Close ferme la connexion
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// keyFilter accepte l'identifiant sous forme numérique ou textuelle
func keyFilter(field string, value any) bson.M {
	key := NormalizeKey(value)
	candidates := []any{value}
	if key != "" {
		candidates = append(candidates, key)
		if n, err := strconv.ParseInt(key, 10, 64); err == nil {
			candidates = append(candidates, n)
		}
	}
	return bson.M{field: bson.M{"$in": candidates}}
}

// fromBSON convertit les types du driver en types Go simples
func fromBSON(m bson.M) Document {
	doc := make(Document, len(m))
	for k, v := range m {
		if k == IDField {
			continue
		}
		doc[k] = fromBSONValue(v)
	}
	return doc
}

func fromBSONValue(v any) any {
	switch x := v.(type) {
	case primitive.DateTime:
		return x.Time().UTC()
	case primitive.ObjectID:
		return x.Hex()
	case primitive.Decimal128:
		if f, err := strconv.ParseFloat(x.String(), 64); err == nil {
			return f
		}
		return x.String()
	case bson.M:
		return map[string]any(fromBSON(x))
	case primitive.D:
		return map[string]any(fromBSON(x.Map()))
	case primitive.A:
		out := make([]any, len(x))
		for i, item := range x {
			out[i] = fromBSONValue(item)
		}
		return out
	default:
		return v
	}
}
