package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/scenesmith/scenesmith/pkg/cache"
	"github.com/scenesmith/scenesmith/pkg/errors"
	"github.com/scenesmith/scenesmith/pkg/render"
	"github.com/scenesmith/scenesmith/pkg/sceneio"
	"github.com/scenesmith/scenesmith/pkg/store"
	"github.com/scenesmith/scenesmith/pkg/validate"
)

// =============================================================================
// Request / Response Types
// =============================================================================

type renderRequest struct {
	Scene     sceneio.ModelDoc `json:"scene"`
	Format    string           `json:"format"`
	Separator string           `json:"separator,omitempty"`
}

type renderResponse struct {
	Document    string   `json:"document"`
	Diagnostics []string `json:"diagnostics,omitempty"`
}

type validateRequest struct {
	Scene     sceneio.ModelDoc `json:"scene"`
	Separator string           `json:"separator,omitempty"`
}

type validateResponse struct {
	Problems []problemDoc `json:"problems"`
}

type problemDoc struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type listScenesResponse struct {
	Scenes []string `json:"scenes"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// =============================================================================
// Handlers
// =============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleRender renders a scene to the requested format. Responses for
// unchanged scenes come from the cache; a render hard failure returns the
// error alone, never a partial document.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	sceneBytes, err := json.Marshal(req.Scene)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "encode scene"))
		return
	}
	key := s.keyer.DocumentKey(cache.Hash(sceneBytes), req.Format, req.Separator)

	if payload, hit, err := s.cache.Get(r.Context(), key); err == nil && hit {
		writeJSONBytes(w, http.StatusOK, payload)
		return
	}

	m, err := sceneio.ToModel(req.Scene)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var opts []render.Option
	if req.Separator != "" {
		opts = append(opts, render.WithSeparator(req.Separator))
	}
	doc, diags, err := m.ToDocument(req.Format, opts...)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := renderResponse{Document: doc}
	for _, d := range diags {
		resp.Diagnostics = append(resp.Diagnostics, d.Message)
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode response"))
		return
	}
	if err := s.cache.Set(r.Context(), key, payload, cacheTTL); err != nil {
		s.logger.Warn("cache set failed", "err", err)
	}
	writeJSONBytes(w, http.StatusOK, payload)
}

// handleValidate runs the structural validation pass and returns every
// finding. A structurally broken scene is a 200 with problems, not an error.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode request"))
		return
	}

	m, err := sceneio.ToModel(req.Scene)
	if err != nil {
		s.writeError(w, err)
		return
	}

	var opts []validate.Option
	if req.Separator != "" {
		opts = append(opts, validate.WithSeparator(req.Separator))
	}

	resp := validateResponse{Problems: []problemDoc{}}
	for _, p := range validate.Check(m, opts...) {
		resp.Problems = append(resp.Problems, problemDoc{Path: p.Path, Message: p.Message})
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListScenes(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.writeJSON(w, http.StatusOK, listScenesResponse{Scenes: names})
}

// handlePutScene stores a scene under the URL name. The document must
// convert cleanly; the URL name wins over any name in the body.
func (s *Server) handlePutScene(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	var doc sceneio.ModelDoc
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode scene"))
		return
	}
	if doc.Name == "" {
		doc.Name = name
	}
	if _, err := sceneio.ToModel(doc); err != nil {
		s.writeError(w, err)
		return
	}

	if err := s.store.Put(r.Context(), store.Scene{Name: name, Doc: doc}); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetScene(w http.ResponseWriter, r *http.Request) {
	sc, err := s.store.Get(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sc)
}

func (s *Server) handleDeleteScene(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "name")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// Response Helpers
// =============================================================================

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInternal, err, "encode response"))
		return
	}
	writeJSONBytes(w, status, payload)
}

func writeJSONBytes(w http.ResponseWriter, status int, payload []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	status := statusFor(code)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "code", code, "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: errorBody{
		Code:    string(code),
		Message: errors.UserMessage(err),
	}})
}

// statusFor maps error codes to HTTP status codes.
func statusFor(code errors.Code) int {
	switch code {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidScene, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidShape, errors.ErrCodeInvalidScale, errors.ErrCodeInvalidManifest,
		errors.ErrCodeInvalidSeparator:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeSceneNotFound, errors.ErrCodeFileNotFound:
		return http.StatusNotFound
	case errors.ErrCodeUnsupported:
		return http.StatusUnprocessableEntity
	case errors.ErrCodeStorage:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
