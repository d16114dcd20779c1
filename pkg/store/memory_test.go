package store

import (
	"context"
	"reflect"
	"testing"

	"github.com/scenesmith/scenesmith/pkg/errors"
	"github.com/scenesmith/scenesmith/pkg/sceneio"
)

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	defer s.Close(ctx)

	doc := sceneio.ModelDoc{Name: "bot", Links: []sceneio.LinkDoc{{Name: "base"}}}

	if err := s.Put(ctx, Scene{Name: "bot", Doc: doc}); err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := s.Get(ctx, "bot")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !reflect.DeepEqual(got.Doc, doc) {
		t.Errorf("Doc = %+v, want %+v", got.Doc, doc)
	}
	if got.UpdatedAt.IsZero() {
		t.Error("Put should stamp UpdatedAt")
	}

	// Put replaces
	doc2 := sceneio.ModelDoc{Name: "bot", Static: true}
	if err := s.Put(ctx, Scene{Name: "bot", Doc: doc2}); err != nil {
		t.Fatalf("Put replace: %v", err)
	}
	got, _ = s.Get(ctx, "bot")
	if !got.Doc.Static {
		t.Error("Put should replace the stored document")
	}

	if err := s.Delete(ctx, "bot"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := s.Get(ctx, "bot"); !errors.Is(err, errors.ErrCodeSceneNotFound) {
		t.Errorf("Get after delete: code = %v", errors.GetCode(err))
	}
}

func TestMemoryStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if _, err := s.Get(ctx, "ghost"); !errors.Is(err, errors.ErrCodeSceneNotFound) {
		t.Errorf("Get: code = %v", errors.GetCode(err))
	}
	if err := s.Delete(ctx, "ghost"); !errors.Is(err, errors.ErrCodeSceneNotFound) {
		t.Errorf("Delete: code = %v", errors.GetCode(err))
	}
}

func TestMemoryStorePutUnnamed(t *testing.T) {
	s := NewMemoryStore()
	if err := s.Put(context.Background(), Scene{}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Put: code = %v", errors.GetCode(err))
	}
}

func TestMemoryStoreListSorted(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := s.Put(ctx, Scene{Name: name, Doc: sceneio.ModelDoc{Name: name}}); err != nil {
			t.Fatal(err)
		}
	}

	names, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("List = %v, want %v", names, want)
	}
}
