package scans

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/JaimeStill/menucatch/pkg/handlers"
	"github.com/JaimeStill/menucatch/pkg/routes"
	"github.com/JaimeStill/menucatch/pkg/storage"
)

const defaultArchiveListSize int32 = 50

// Handler provides HTTP endpoints for scan sessions.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// DiagnoseRequest is the body of the single-fragment diagnostics endpoint.
type DiagnoseRequest struct {
	Text string `json:"text"`
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "scans"),
	}
}

// Routes returns the route group definition for scan endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/scans",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Create},
			{Method: "POST", Pattern: "/resolve", Handler: h.Diagnose},
			{Method: "GET", Pattern: "/{id}", Handler: h.Find},
			{Method: "DELETE", Pattern: "/{id}", Handler: h.Delete},
			{Method: "POST", Pattern: "/{id}/batches", Handler: h.Resolve},
			{Method: "DELETE", Pattern: "/{id}/records", Handler: h.Clear},
			{Method: "GET", Pattern: "/{id}/stream", Handler: h.Stream},
			{Method: "GET", Pattern: "/{id}/archive", Handler: h.Archive},
		},
	}
}

// Create starts a new scan session.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	s, err := h.sys.Create(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, s)
}

// Find returns a session with its ordered records.
func (h *Handler) Find(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	s, err := h.sys.Find(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, s)
}

// Delete discards a session and ends its streams.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	if err := h.sys.Delete(r.Context(), id); err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Resolve accepts a batch of scanner items and returns the batch report.
func (h *Handler) Resolve(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	var cmd BatchCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	report, err := h.sys.Resolve(r.Context(), id, cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, report)
}

// Clear empties a session's collection.
func (h *Handler) Clear(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	s, err := h.sys.Clear(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, s)
}

// Stream sends a snapshot event whenever the session's collection changes.
func (h *Handler) Stream(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, fmt.Errorf("streaming unsupported"))
		return
	}

	updates, cancel, err := h.sys.Subscribe(r.Context(), id)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}
	defer cancel()

	// Streams outlive the server write timeout.
	http.NewResponseController(w).SetWriteDeadline(time.Time{})

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	clientGone := r.Context().Done()

	for {
		select {
		case snap, ok := <-updates:
			if !ok {
				return
			}

			data, err := json.Marshal(snap)
			if err != nil {
				h.logger.Error("snapshot encode failed", "session", id, "error", err)
				continue
			}

			fmt.Fprintf(w, "event: snapshot\ndata: %s\n\n", data)
			flusher.Flush()

		case <-clientGone:
			return
		}
	}
}

// Archive lists the archived batch reports of a session.
func (h *Handler) Archive(w http.ResponseWriter, r *http.Request) {
	id, ok := h.sessionID(w, r)
	if !ok {
		return
	}

	maxResults, err := storage.ParseMaxResults(
		r.URL.Query().Get("max_results"),
		defaultArchiveListSize,
	)
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	list, err := h.sys.Archive(r.Context(), id, r.URL.Query().Get("marker"), maxResults)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, list)
}

// Diagnose resolves one fragment without a session and reports the ranked
// categories and every scored candidate.
func (h *Handler) Diagnose(w http.ResponseWriter, r *http.Request) {
	var req DiagnoseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	d, err := h.sys.Diagnose(r.Context(), req.Text)
	if err != nil {
		handlers.RespondError(w, h.logger, MapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, d)
}

func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, fmt.Errorf("invalid session id: %w", err))
		return uuid.Nil, false
	}
	return id, true
}
