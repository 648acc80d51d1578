// Package fakestore is an in-process stand-in for a Firebase-style JSON
// document store, for tests.
package fakestore

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
)

// Server serves <root>/items.json and <root>/items/<id>.json.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	records  map[string]map[string]any
	seq      int
	failWith int
	requests []string
}

// New starts a server. Call Close when done.
func New() *Server {
	s := &Server{records: map[string]map[string]any{}}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// FailWith makes every following request answer status. 0 turns it off.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = status
}

// Record returns a copy of the stored body for id.
func (s *Server) Record(id string) (map[string]any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[id]
	if !ok {
		return nil, false
	}
	out := make(map[string]any, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out, true
}

// Len reports how many records are stored.
func (s *Server) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Requests lists "METHOD path" for every request seen so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, r.Method+" "+r.URL.Path)
	if s.failWith != 0 {
		http.Error(w, `{"error":"forced"}`, s.failWith)
		return
	}

	path := r.URL.Path
	switch {
	case path == "/items.json":
		s.collection(w, r)
	case strings.HasPrefix(path, "/items/") && strings.HasSuffix(path, ".json"):
		id := strings.TrimSuffix(strings.TrimPrefix(path, "/items/"), ".json")
		s.record(w, r, id)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) collection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		if len(s.records) == 0 {
			writeJSON(w, nil)
			return
		}
		writeJSON(w, s.records)
	case http.MethodPost:
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		s.seq++
		id := fmt.Sprintf("-N%06d", s.seq)
		s.records[id] = body
		writeJSON(w, map[string]string{"name": id})
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) record(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodDelete:
		delete(s.records, id)
		writeJSON(w, nil)
	case http.MethodPatch:
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		cur, ok := s.records[id]
		if !ok {
			cur = map[string]any{}
			s.records[id] = cur
		}
		for k, v := range body {
			if v == nil {
				delete(cur, k)
				continue
			}
			cur[k] = v
		}
		writeJSON(w, body)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
