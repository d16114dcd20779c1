package store

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/scenesmith/scenesmith/pkg/errors"
)

const scenesCollection = "scenes"

// MongoStore persists scenes in a MongoDB collection, keyed by scene name.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to the MongoDB instance at uri and verifies the
// connection before returning. Scenes live in the given database's "scenes"
// collection.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "connect mongodb %s", uri)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "ping mongodb %s", uri)
	}

	return &MongoStore{
		client: client,
		coll:   client.Database(database).Collection(scenesCollection),
	}, nil
}

// Put stores a scene, replacing any existing one with the same name.
func (s *MongoStore) Put(ctx context.Context, sc Scene) error {
	if sc.Name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "scene has no name")
	}
	sc.UpdatedAt = time.Now().UTC()

	_, err := s.coll.ReplaceOne(ctx,
		bson.M{"_id": sc.Name}, sc,
		options.Replace().SetUpsert(true))
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "store scene %q", sc.Name)
	}
	return nil
}

// Get retrieves a scene by name.
func (s *MongoStore) Get(ctx context.Context, name string) (Scene, error) {
	var sc Scene
	err := s.coll.FindOne(ctx, bson.M{"_id": name}).Decode(&sc)
	if err == mongo.ErrNoDocuments {
		return Scene{}, errors.New(errors.ErrCodeSceneNotFound, "scene %q not found", name)
	}
	if err != nil {
		return Scene{}, errors.Wrap(errors.ErrCodeStorage, err, "load scene %q", name)
	}
	return sc, nil
}

// List returns the stored scene names in lexical order.
func (s *MongoStore) List(ctx context.Context) ([]string, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1}).
		SetSort(bson.M{"_id": 1})
	cursor, err := s.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list scenes")
	}
	defer cursor.Close(ctx)

	var names []string
	for cursor.Next(ctx) {
		var row struct {
			Name string `bson:"_id"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, errors.Wrap(errors.ErrCodeStorage, err, "decode scene name")
		}
		names = append(names, row.Name)
	}
	if err := cursor.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "list scenes")
	}
	return names, nil
}

// Delete removes a scene by name.
func (s *MongoStore) Delete(ctx context.Context, name string) error {
	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": name})
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "delete scene %q", name)
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeSceneNotFound, "scene %q not found", name)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Ensure MongoStore implements Store.
var _ Store = (*MongoStore)(nil)
