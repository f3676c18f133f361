package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/suechart/pkg/chart"
	"github.com/matzehuels/suechart/pkg/document"
	"github.com/matzehuels/suechart/pkg/errors"
	"github.com/matzehuels/suechart/pkg/pipeline"
)

// syncRequest is the body of a sync request. Selection replaces the stored
// selection when present; ChartType and Data answer the prompts for a new
// chart and are ignored when refreshing.
type syncRequest struct {
	Selection []string   `json:"selection,omitempty"`
	ChartType chart.Type `json:"chartType,omitempty"`
	Data      string     `json:"data,omitempty"`
}

// unlinkRequest is the body of an unlink request.
type unlinkRequest struct {
	Selection []string `json:"selection,omitempty"`
}

// syncResponse reports what the user would have seen. Error is set when
// nothing changed.
type syncResponse struct {
	State    string             `json:"state"`
	Messages []string           `json:"messages"`
	Error    *errorBody         `json:"error,omitempty"`
	Document *document.Document `json:"document"`
}

type errorBody struct {
	Code    errors.Code `json:"code"`
	Message string      `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleChartTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"chartTypes": chart.Catalog()})
}

func (s *Server) handleGetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := s.store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handlePutDocument(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var doc document.Document
	if err := decodeBody(w, r, &doc); err != nil {
		s.writeError(w, err)
		return
	}
	if doc.ID != "" && doc.ID != id {
		s.writeError(w, errors.New(errors.ErrCodeInvalidInput, "document id %q does not match path", doc.ID))
		return
	}
	doc.ID = id

	unlock := s.locks.Lock(id)
	defer unlock()

	if err := s.store.Put(r.Context(), &doc); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, &doc)
}

func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req syncRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	doc, err := s.loadWithSelection(r, id, req.Selection)
	if err != nil {
		s.writeError(w, err)
		return
	}

	runner := pipeline.NewRunner(s.renderer, pipeline.StaticPrompter{ChartType: req.ChartType, Data: req.Data}, s.logger)
	res := runner.Sync(r.Context(), doc)
	resp := syncResponse{
		State:    res.State.String(),
		Messages: doc.DrainMessages(),
		Document: doc,
	}
	if res.Err != nil {
		resp.Error = newErrorBody(res.Err)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	if err := s.store.Put(r.Context(), doc); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleUnlink(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req unlinkRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	doc, err := s.loadWithSelection(r, id, req.Selection)
	if err != nil {
		s.writeError(w, err)
		return
	}

	state := pipeline.Classify(doc.Selection())
	runner := pipeline.NewRunner(nil, nil, s.logger)
	err = runner.Unlink(doc)
	resp := syncResponse{
		State:    state.String(),
		Messages: doc.DrainMessages(),
		Document: doc,
	}
	if err != nil {
		resp.Error = newErrorBody(err)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	if err := s.store.Put(r.Context(), doc); err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// loadWithSelection loads a document and applies the requested selection.
func (s *Server) loadWithSelection(r *http.Request, id string, selection []string) (*document.Document, error) {
	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if len(selection) == 0 {
		return doc, nil
	}
	for _, lid := range selection {
		if err := errors.ValidateLayerID(lid); err != nil {
			return nil, err
		}
		if _, ok := doc.LayerByID(lid); !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "layer %s is not in document %s", lid, id)
		}
	}
	doc.Select(selection...)
	return doc, nil
}

// decodeBody decodes a JSON request body. An empty body leaves v unchanged.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	if r.ContentLength == 0 {
		return nil
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid JSON body")
	}
	return nil
}

// writeError maps err to a status code and writes it as JSON.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{Error: *newErrorBody(err)})
}

func statusFor(err error) int {
	if stderrors.Is(err, document.ErrNotFound) {
		return http.StatusNotFound
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidStyle, errors.ErrCodeInvalidType:
		return http.StatusBadRequest
	case errors.ErrCodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func newErrorBody(err error) *errorBody {
	code := errors.GetCode(err)
	msg := errors.UserMessage(err)
	switch {
	case stderrors.Is(err, document.ErrNotFound):
		code = errors.ErrCodeNotFound
	case code == "":
		code = errors.ErrCodeInternal
		msg = http.StatusText(http.StatusInternalServerError)
	}
	return &errorBody{Code: code, Message: msg}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
