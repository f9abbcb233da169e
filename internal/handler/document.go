package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/docvault/internal/auth"
	"github.com/sakif/docvault/internal/service"
)

// DocumentHandler manages CRUD operations on personal documents.
//
// Every route it serves sits behind auth.RequireAuth, so each method starts
// by pulling the caller's Identity from the request context and passes the
// userID down explicitly. The handler never decides ownership itself — the
// service and repository enforce it on every query.
type DocumentHandler struct {
	docs   *service.DocumentService
	logger *slog.Logger
}

// NewDocumentHandler creates a new DocumentHandler.
func NewDocumentHandler(docs *service.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		docs:   docs,
		logger: logger,
	}
}

// createDocumentRequest is the body for POST /docs.
// Content may be omitted — a new document starts empty.
type createDocumentRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// updateDocumentRequest is the body for PUT /docs/{id}.
//
// Both fields are pointers because the two "missing key" cases mean
// different things: a missing title means "leave it unchanged", while a
// missing content is a validation error — content is mandatory on every
// update, there are no partial-content patches.
type updateDocumentRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// HandleCreate saves a new document owned by the caller.
//
// HTTP: POST /docs
// REQUEST BODY: {"title": "Notes", "content": "# Monday\n..."}
func (h *DocumentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized: No token provided"})
		return
	}

	var req createDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("create document: invalid JSON body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
		return
	}

	doc, err := h.docs.Create(r.Context(), identity.UserID, req.Title, req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, doc)
}

// HandleList returns all of the caller's documents, oldest first.
//
// HTTP: GET /docs
//
// A caller with no documents gets 200 with an empty array, not an error.
func (h *DocumentHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized: No token provided"})
		return
	}

	docs, err := h.docs.List(r.Context(), identity.UserID)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, docs)
}

// HandleGet returns a single document owned by the caller.
//
// HTTP: GET /docs/{id}
//
// An id that doesn't exist, belongs to another user, or isn't even a number
// all yield the same 404 — responses never reveal whether a foreign
// document exists.
func (h *DocumentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized: No token provided"})
		return
	}

	doc, err := h.docs.Get(r.Context(), identity.UserID, docID(r))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// HandleUpdate modifies a document owned by the caller.
//
// HTTP: PUT /docs/{id}
// REQUEST BODY: {"title": "optional", "content": "required full text"}
func (h *DocumentHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized: No token provided"})
		return
	}

	var req updateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Warn("update document: invalid JSON body", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON body"})
		return
	}
	if req.Content == nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "content is required"})
		return
	}

	doc, err := h.docs.Update(r.Context(), identity.UserID, docID(r), req.Title, *req.Content)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// HandleDelete removes a document owned by the caller.
//
// HTTP: DELETE /docs/{id}
func (h *DocumentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	identity, ok := auth.IdentityFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized: No token provided"})
		return
	}

	if err := h.docs.Delete(r.Context(), identity.UserID, docID(r)); err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messageResponse{Message: "Document deleted"})
}

// docID extracts the {id} URL parameter.
//
// A malformed id parses to 0, which matches no row and therefore flows
// through the repository as the standard not-found error — the same body a
// nonexistent numeric id produces.
func docID(r *http.Request) int64 {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
