package handler_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/docvault/internal/model"
)

func TestDocumentCRUDRoundTrip(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie, userID := registerUser(t, router, "alice", "secret1")

	// Create
	rr := doRequest(t, router, http.MethodPost, "/docs",
		`{"title":"T","content":"C"}`, cookie)
	require.Equal(t, http.StatusCreated, rr.Code)

	var created model.Document
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))
	assert.Positive(t, created.ID)
	assert.Equal(t, "T", created.Title)
	assert.Equal(t, "C", created.Content)
	assert.Equal(t, userID, created.OwnerID)

	// Get it back
	rr = doRequest(t, router, http.MethodGet, fmt.Sprintf("/docs/%d", created.ID), "", cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	var fetched model.Document
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, "T", fetched.Title)
	assert.Equal(t, "C", fetched.Content)
	assert.Equal(t, userID, fetched.OwnerID)

	// List contains exactly this document
	rr = doRequest(t, router, http.MethodGet, "/docs", "", cookie)
	require.Equal(t, http.StatusOK, rr.Code)

	var docs []model.Document
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&docs))
	require.Len(t, docs, 1)
	assert.Equal(t, created.ID, docs[0].ID)

	// Delete
	rr = doRequest(t, router, http.MethodDelete, fmt.Sprintf("/docs/%d", created.ID), "", cookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"message":"Document deleted"}`, rr.Body.String())

	// Gone
	rr = doRequest(t, router, http.MethodGet, fmt.Sprintf("/docs/%d", created.ID), "", cookie)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestDocumentList_EmptyIsOK(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie, _ := registerUser(t, router, "alice", "secret1")

	rr := doRequest(t, router, http.MethodGet, "/docs", "", cookie)

	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())
}

// Another user probing alice's document id must see a response that is
// byte-for-byte the same as probing an id that doesn't exist.
func TestDocumentCrossOwnerLooksLikeMissing(t *testing.T) {
	router, _ := newTestRouter(t)
	aliceCookie, _ := registerUser(t, router, "alice", "secret1")
	bobCookie, _ := registerUser(t, router, "bob", "secret2")

	rr := doRequest(t, router, http.MethodPost, "/docs",
		`{"title":"private","content":"secret"}`, aliceCookie)
	require.Equal(t, http.StatusCreated, rr.Code)
	var doc model.Document
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&doc))

	foreign := doRequest(t, router, http.MethodGet, fmt.Sprintf("/docs/%d", doc.ID), "", bobCookie)
	missing := doRequest(t, router, http.MethodGet, "/docs/999999", "", bobCookie)

	assert.Equal(t, http.StatusNotFound, foreign.Code)
	assert.Equal(t, http.StatusNotFound, missing.Code)
	assert.Equal(t, missing.Body.String(), foreign.Body.String(),
		"foreign and missing documents must be indistinguishable")
	assert.JSONEq(t, `{"error":"Document not found or unauthorized"}`, foreign.Body.String())

	// Same policy on update and delete.
	foreignPut := doRequest(t, router, http.MethodPut, fmt.Sprintf("/docs/%d", doc.ID),
		`{"content":"overwritten"}`, bobCookie)
	assert.Equal(t, http.StatusNotFound, foreignPut.Code)

	foreignDel := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/docs/%d", doc.ID), "", bobCookie)
	assert.Equal(t, http.StatusNotFound, foreignDel.Code)

	// Alice's document survived, untouched.
	rr = doRequest(t, router, http.MethodGet, fmt.Sprintf("/docs/%d", doc.ID), "", aliceCookie)
	require.Equal(t, http.StatusOK, rr.Code)
	var after model.Document
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&after))
	assert.Equal(t, "secret", after.Content)
}

func TestDocumentUpdate(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie, _ := registerUser(t, router, "alice", "secret1")

	rr := doRequest(t, router, http.MethodPost, "/docs",
		`{"title":"keep me","content":"old"}`, cookie)
	require.Equal(t, http.StatusCreated, rr.Code)
	var created model.Document
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&created))

	t.Run("content only keeps title", func(t *testing.T) {
		time.Sleep(5 * time.Millisecond) // ensure updatedAt can move forward

		rr := doRequest(t, router, http.MethodPut, fmt.Sprintf("/docs/%d", created.ID),
			`{"content":"new"}`, cookie)
		require.Equal(t, http.StatusOK, rr.Code)

		var updated model.Document
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&updated))
		assert.Equal(t, "keep me", updated.Title)
		assert.Equal(t, "new", updated.Content)
		assert.True(t, updated.UpdatedAt.After(created.UpdatedAt),
			"updatedAt must strictly increase")
	})

	t.Run("with title replaces it", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPut, fmt.Sprintf("/docs/%d", created.ID),
			`{"title":"renamed","content":"newer"}`, cookie)
		require.Equal(t, http.StatusOK, rr.Code)

		var updated model.Document
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&updated))
		assert.Equal(t, "renamed", updated.Title)
	})

	t.Run("missing content rejected", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPut, fmt.Sprintf("/docs/%d", created.ID),
			`{"title":"only a title"}`, cookie)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"content is required"}`, rr.Body.String())
	})
}

func TestDocumentValidation(t *testing.T) {
	router, _ := newTestRouter(t)
	cookie, _ := registerUser(t, router, "alice", "secret1")

	t.Run("missing title", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/docs", `{"content":"C"}`, cookie)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("empty content allowed", func(t *testing.T) {
		rr := doRequest(t, router, http.MethodPost, "/docs", `{"title":"just a title"}`, cookie)
		assert.Equal(t, http.StatusCreated, rr.Code)
	})
}

func TestDocumentRoutesRequireAuth(t *testing.T) {
	router, _ := newTestRouter(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodPost, "/docs"},
		{http.MethodGet, "/docs"},
		{http.MethodGet, "/docs/1"},
		{http.MethodPut, "/docs/1"},
		{http.MethodDelete, "/docs/1"},
	} {
		rr := doRequest(t, router, tc.method, tc.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", tc.method, tc.path)
		assert.JSONEq(t, `{"error":"Unauthorized: No token provided"}`, rr.Body.String())
	}
}
