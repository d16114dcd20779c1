package cli

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/scenesmith/scenesmith/pkg/errors"
	"github.com/scenesmith/scenesmith/pkg/scene"
	"github.com/scenesmith/scenesmith/pkg/sceneio"
)

// loadScene reads a scene from path, dispatching on the file extension:
// .json is the canonical interchange document, .toml is the simple-scene
// manifest format.
func loadScene(path string) (*scene.Model, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return sceneio.ReadSceneFile(path)
	case ".toml":
		return sceneio.LoadManifest(path)
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unsupported scene file %q (want .json or .toml)", path)
	}
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output ends in a
// known document extension, that extension is stripped. This is used when
// generating multiple files (e.g., robot.sdf, robot.urdf).
func basePath(output, input string, known map[string]bool) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if known[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// openOutput opens path for writing, or stdout if path is empty.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

// nopCloser wraps a writer with a no-op Close so stdout survives the
// deferred close in command runners.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
