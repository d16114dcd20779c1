package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/scenesmith/scenesmith/pkg/scene"
	"github.com/scenesmith/scenesmith/pkg/sceneio"
)

func newTestServer(opts ...Option) *Server {
	opts = append([]Option{WithLogger(log.New(io.Discard))}, opts...)
	return New(opts...)
}

func boxBotDoc() sceneio.ModelDoc {
	return sceneio.ModelDoc{
		Name: "box_bot",
		Links: []sceneio.LinkDoc{
			{Name: "base"},
			{Name: "arm"},
		},
		Joints: []sceneio.JointDoc{{
			Name:   "shoulder",
			Type:   scene.JointRevolute,
			Parent: "base",
			Child:  "arm",
			Axis:   []float64{0, 0, 1},
		}},
	}
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var resp errorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode error body: %v (%s)", err, w.Body.String())
	}
	return resp.Error
}

func TestHealthz(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	if w.Code != http.StatusOK || w.Body.String() != "ok" {
		t.Errorf("healthz = %d %q", w.Code, w.Body.String())
	}
}

func TestRequestID(t *testing.T) {
	s := newTestServer()

	// Generated when absent
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	if w.Header().Get(requestIDHeader) == "" {
		t.Error("request ID should be generated")
	}

	// Echoed when supplied
	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(requestIDHeader, "test-id-1")
	w = httptest.NewRecorder()
	s.ServeHTTP(w, req)
	if got := w.Header().Get(requestIDHeader); got != "test-id-1" {
		t.Errorf("request ID = %q, want test-id-1", got)
	}
}

func TestRenderSDF(t *testing.T) {
	s := newTestServer()
	w := postJSON(t, s, "/v1/render", renderRequest{Scene: boxBotDoc(), Format: scene.FormatSDF})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp renderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Document, `<model name="box_bot">`) {
		t.Errorf("document missing model element:\n%s", resp.Document)
	}
}

func TestRenderURDFWithSeparator(t *testing.T) {
	s := newTestServer()
	w := postJSON(t, s, "/v1/render", renderRequest{
		Scene:     boxBotDoc(),
		Format:    scene.FormatURDF,
		Separator: "::",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp renderResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(resp.Document, `<link name="box_bot::base"/>`) {
		t.Errorf("separator not applied:\n%s", resp.Document)
	}
}

func TestRenderIncludeToURDFFails(t *testing.T) {
	doc := boxBotDoc()
	doc.Includes = []sceneio.IncludeDoc{{Name: "ground", URI: "model://ground_plane"}}

	s := newTestServer()
	w := postJSON(t, s, "/v1/render", renderRequest{Scene: doc, Format: scene.FormatURDF})

	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	if body := decodeError(t, w); body.Code != "UNSUPPORTED" {
		t.Errorf("error code = %q", body.Code)
	}
	if strings.Contains(w.Body.String(), "document") {
		t.Errorf("hard failure must not return a partial document: %s", w.Body.String())
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	s := newTestServer()
	w := postJSON(t, s, "/v1/render", renderRequest{Scene: boxBotDoc(), Format: "collada"})

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", w.Code)
	}
	if body := decodeError(t, w); body.Code != "INVALID_FORMAT" {
		t.Errorf("error code = %q", body.Code)
	}
}

// countingCache wraps an in-memory map and counts stores.
type countingCache struct {
	mu   sync.Mutex
	data map[string][]byte
	sets int
}

func (c *countingCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	data, ok := c.data[key]
	return data, ok, nil
}

func (c *countingCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = data
	c.sets++
	return nil
}

func (c *countingCache) Delete(ctx context.Context, key string) error { return nil }
func (c *countingCache) Close() error                                 { return nil }

func TestRenderUsesCache(t *testing.T) {
	cc := &countingCache{data: make(map[string][]byte)}
	s := newTestServer(WithCache(cc))

	req := renderRequest{Scene: boxBotDoc(), Format: scene.FormatSDF}
	first := postJSON(t, s, "/v1/render", req)
	second := postJSON(t, s, "/v1/render", req)

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Fatalf("statuses = %d, %d", first.Code, second.Code)
	}
	if cc.sets != 1 {
		t.Errorf("sets = %d, want 1 (second render should hit the cache)", cc.sets)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("cached response must match the rendered one")
	}
}

func TestValidateReportsProblems(t *testing.T) {
	doc := boxBotDoc()
	doc.Joints[0].Child = "ghost"

	s := newTestServer()
	w := postJSON(t, s, "/v1/validate", validateRequest{Scene: doc})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp validateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Problems) != 1 || !strings.Contains(resp.Problems[0].Message, "ghost") {
		t.Errorf("problems = %+v", resp.Problems)
	}
}

func TestSceneCRUD(t *testing.T) {
	s := newTestServer()
	doc := boxBotDoc()

	// Put
	payload, _ := json.Marshal(doc)
	req := httptest.NewRequest(http.MethodPut, "/v1/scenes/box_bot", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)
	if w.Code != http.StatusNoContent {
		t.Fatalf("put status = %d: %s", w.Code, w.Body.String())
	}

	// List
	w = httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/scenes", nil))
	var list listScenesResponse
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatal(err)
	}
	if len(list.Scenes) != 1 || list.Scenes[0] != "box_bot" {
		t.Errorf("scenes = %v", list.Scenes)
	}

	// Get
	w = httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/scenes/box_bot", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d", w.Code)
	}
	var stored struct {
		Name string           `json:"name"`
		Doc  sceneio.ModelDoc `json:"doc"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &stored); err != nil {
		t.Fatal(err)
	}
	if stored.Name != "box_bot" || len(stored.Doc.Links) != 2 {
		t.Errorf("stored = %+v", stored)
	}

	// Delete
	w = httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/v1/scenes/box_bot", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", w.Code)
	}

	// Gone
	w = httptest.NewRecorder()
	s.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/scenes/box_bot", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("get after delete = %d", w.Code)
	}
	if body := decodeError(t, w); body.Code != "SCENE_NOT_FOUND" {
		t.Errorf("error code = %q", body.Code)
	}
}

func TestPutSceneRejectsInvalid(t *testing.T) {
	doc := boxBotDoc()
	doc.Links[0].Collisions = []sceneio.GeometryDoc{{
		Name:  "c",
		Shape: sceneio.ShapeDoc{Type: "torus"},
	}}

	s := newTestServer()
	payload, _ := json.Marshal(doc)
	req := httptest.NewRequest(http.MethodPut, "/v1/scenes/box_bot", bytes.NewReader(payload))
	w := httptest.NewRecorder()
	s.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d: %s", w.Code, w.Body.String())
	}
}
