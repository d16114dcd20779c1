// Package store persists named scenes.
//
// The Store interface abstracts over storage backends:
//   - MemoryStore: in-process map for tests and single-instance servers
//   - MongoStore: durable storage for server deployments
//
// Scenes are stored in their document form (see pkg/sceneio), which carries
// bson tags alongside json, so both backends share one schema.
package store

import (
	"context"
	"time"

	"github.com/scenesmith/scenesmith/pkg/sceneio"
)

// Scene is one stored scene. Name is the storage key.
type Scene struct {
	Name      string           `json:"name" bson:"_id"`
	Doc       sceneio.ModelDoc `json:"doc" bson:"doc"`
	UpdatedAt time.Time        `json:"updated_at" bson:"updated_at"`
}

// Store persists scenes by name.
type Store interface {
	// Put stores a scene, replacing any existing one with the same name.
	Put(ctx context.Context, s Scene) error
	// Get retrieves a scene. Absent names fail with SCENE_NOT_FOUND.
	Get(ctx context.Context, name string) (Scene, error)
	// List returns the stored scene names in lexical order.
	List(ctx context.Context) ([]string, error)
	// Delete removes a scene. Absent names fail with SCENE_NOT_FOUND.
	Delete(ctx context.Context, name string) error
	// Close releases any backend resources.
	Close(ctx context.Context) error
}
