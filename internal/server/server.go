// Package server exposes the spelling engine and the correction service
// over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"github.com/tidwall/gjson"

	symspell "kosymspell/pkg"
	"kosymspell/pkg/verbosity"

	"kosymspell/internal/config"
	"kosymspell/internal/corrector"
)

const maxBodySize = 1 << 20

var errInvalidRequest = errors.New("invalid request")

// Server represents the HTTP API.
type Server struct {
	corrector  *corrector.SpellCorrector
	router     *mux.Router
	httpServer *http.Server
}

// NewServer wires the routes for sc.
func NewServer(cfg config.ServerConfig, sc *corrector.SpellCorrector) *Server {
	s := &Server{corrector: sc}
	s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router = mux.NewRouter()
	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	api := s.router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/lookup", s.handleLookup).Methods("POST")
	api.HandleFunc("/compound", s.handleCompound).Methods("POST")
	api.HandleFunc("/segment", s.handleSegment).Methods("POST")
	api.HandleFunc("/correct", s.handleCorrect).Methods("POST")
	api.HandleFunc("/custom-word", s.handleAddCustomWord).Methods("POST")
	api.HandleFunc("/custom-word/{word}", s.handleRemoveCustomWord).Methods("DELETE")
}

// Handler returns the routed handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	log.Printf("listening on %s", s.httpServer.Addr)
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting requests and waits for running ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	word := strings.TrimSpace(gjson.GetBytes(body, "word").String())
	if word == "" {
		writeError(w, http.StatusBadRequest, errInvalidRequest)
		return
	}
	v := verbosity.Top
	if name := gjson.GetBytes(body, "verbosity"); name.Exists() {
		if v, err = verbosity.Parse(name.String()); err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
	}
	suggestions, err := s.corrector.Speller().Lookup(word, v, symspell.MaxEditDistance(s.maxEditDistance(body)))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"word":        word,
		"verbosity":   v.String(),
		"suggestions": nonNil(suggestions),
	})
}

func (s *Server) handleCompound(w http.ResponseWriter, r *http.Request) {
	body, text, ok := s.textRequest(w, r)
	if !ok {
		return
	}
	suggestions, err := s.corrector.Speller().LookupCompound(text, s.maxEditDistance(body))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"original":    text,
		"suggestions": nonNil(suggestions),
	})
}

func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	body, text, ok := s.textRequest(w, r)
	if !ok {
		return
	}
	composition, err := s.corrector.Speller().WordSegmentation(text, symspell.MaxEditDistance(s.maxEditDistance(body)))
	if err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, composition)
}

func (s *Server) handleCorrect(w http.ResponseWriter, r *http.Request) {
	_, text, ok := s.textRequest(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.corrector.CorrectText(text))
}

func (s *Server) handleAddCustomWord(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	word := gjson.GetBytes(body, "word").String()
	if err := s.corrector.AddCustomWord(r.Context(), word); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *Server) handleRemoveCustomWord(w http.ResponseWriter, r *http.Request) {
	word := mux.Vars(r)["word"]
	if err := s.corrector.RemoveCustomWord(r.Context(), word); err != nil {
		writeError(w, statusFor(err), err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// textRequest reads a body carrying a non-blank "text" field.
func (s *Server) textRequest(w http.ResponseWriter, r *http.Request) ([]byte, string, bool) {
	body, err := readBody(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return nil, "", false
	}
	text := gjson.GetBytes(body, "text").String()
	if strings.TrimSpace(text) == "" {
		writeError(w, http.StatusBadRequest, errInvalidRequest)
		return nil, "", false
	}
	return body, text, true
}

func (s *Server) maxEditDistance(body []byte) int {
	if v := gjson.GetBytes(body, "max_edit_distance"); v.Exists() {
		return int(v.Int())
	}
	return s.corrector.Config().MaxEditDistance
}

func readBody(r *http.Request) ([]byte, error) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) {
		return nil, errInvalidRequest
	}
	return body, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, symspell.ErrEditDistanceTooLarge),
		errors.Is(err, symspell.ErrInvalidOption),
		errors.Is(err, corrector.ErrEmptyWord):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func nonNil(s symspell.Suggestions) symspell.Suggestions {
	if s == nil {
		return symspell.Suggestions{}
	}
	return s
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}
