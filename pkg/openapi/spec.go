// Package openapi builds OpenAPI 3.1 documents describing HTTP endpoints.
package openapi

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Version is the OpenAPI release the documents declare.
const Version = "3.1.0"

// Spec is the root of an OpenAPI document.
type Spec struct {
	OpenAPI    string               `json:"openapi"`
	Info       *Info                `json:"info"`
	Servers    []*Server            `json:"servers,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
}

// NewSpec starts a document for info served from the given base URLs.
// The shared components are registered up front.
func NewSpec(info Info, servers ...string) *Spec {
	s := &Spec{
		OpenAPI:    Version,
		Info:       &info,
		Paths:      map[string]*PathItem{},
		Components: NewComponents(),
	}
	for _, url := range servers {
		s.Servers = append(s.Servers, &Server{URL: url})
	}
	return s
}

// AddOperation attaches op to path under method. Methods other than GET,
// POST and DELETE are ignored.
func (s *Spec) AddOperation(method, path string, op *Operation) {
	item := s.Paths[path]
	if item == nil {
		item = &PathItem{}
	}

	switch method {
	case http.MethodGet:
		item.Get = op
	case http.MethodPost:
		item.Post = op
	case http.MethodDelete:
		item.Delete = op
	default:
		return
	}
	s.Paths[path] = item
}

// JSON renders the document as indented JSON.
func (s *Spec) JSON() ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Handler renders s once and returns a handler serving the bytes.
func Handler(s *Spec) (http.HandlerFunc, error) {
	body, err := s.JSON()
	if err != nil {
		return nil, fmt.Errorf("render openapi document: %w", err)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "public, max-age=300")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}, nil
}
