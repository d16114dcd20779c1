package sceneio

import (
	"bytes"
	"encoding/json"
	"io"
	"os"

	"github.com/scenesmith/scenesmith/pkg/errors"
	"github.com/scenesmith/scenesmith/pkg/scene"
)

// =============================================================================
// Scene Serialization API
// =============================================================================

// MarshalScene converts a model tree to indented JSON bytes.
func MarshalScene(m *scene.Model) ([]byte, error) {
	var buf bytes.Buffer
	if err := writeSceneTo(m, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnmarshalScene deserializes JSON bytes to a document tree without
// converting it; use ToModel for the in-memory form.
func UnmarshalScene(data []byte) (ModelDoc, error) {
	var doc ModelDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return ModelDoc{}, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode scene")
	}
	return doc, nil
}

// WriteSceneFile writes a model tree to a JSON file.
// The file is created with 0644 permissions.
func WriteSceneFile(m *scene.Model, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "create %s", path)
	}
	defer f.Close()
	return writeSceneTo(m, f)
}

// WriteScene writes a model tree as JSON to an io.Writer. Use MarshalScene
// for in-memory serialization or WriteSceneFile for files.
func WriteScene(m *scene.Model, w io.Writer) error {
	return writeSceneTo(m, w)
}

// ReadSceneFile reads a JSON scene file and returns the decoded model tree.
func ReadSceneFile(path string) (*scene.Model, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeStorage, err, "open %s", path)
	}
	defer f.Close()
	return readSceneFrom(f)
}

// ReadScene decodes a JSON scene from an io.Reader into a model tree. Use
// ReadSceneFile for files or pass bytes.NewReader for in-memory data.
func ReadScene(r io.Reader) (*scene.Model, error) {
	return readSceneFrom(r)
}

// =============================================================================
// Internal Implementation
// =============================================================================

func writeSceneTo(m *scene.Model, w io.Writer) error {
	doc, err := FromModel(m)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return errors.Wrap(errors.ErrCodeStorage, err, "encode scene %q", m.Name)
	}
	return nil
}

func readSceneFrom(r io.Reader) (*scene.Model, error) {
	var doc ModelDoc
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidScene, err, "decode scene")
	}
	return ToModel(doc)
}
