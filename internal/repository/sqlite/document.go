package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/docvault/internal/apperror"
	"github.com/sakif/docvault/internal/model"
	"github.com/sakif/docvault/internal/repository"
)

// compile-time check that *DB implements repository.DocumentRepository
var _ repository.DocumentRepository = (*DB)(nil)

// notFoundMessage is the one message used for every failed document lookup.
// "doesn't exist" and "belongs to someone else" must be indistinguishable in
// responses, otherwise an attacker could probe which IDs exist.
const notFoundMessage = "Document not found or unauthorized"

// Create inserts a new document and fills in the generated ID and timestamps.
func (db *DB) Create(ctx context.Context, doc *model.Document) error {
	now := time.Now().UTC()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO documents (title, content, owner_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		doc.Title,
		doc.Content,
		doc.OwnerID,
		doc.CreatedAt,
		doc.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating document: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new document id: %w", err)
	}
	doc.ID = id

	return nil
}

// GetByID retrieves a single document by (id, owner).
//
// The WHERE clause includes owner_id, so the ownership check happens in the
// same statement as the lookup — there is no window where a foreign document
// is loaded and then rejected, and both failure cases produce the same
// apperror.ErrNotFound.
func (db *DB) GetByID(ctx context.Context, id, ownerID int64) (*model.Document, error) {
	var d model.Document

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, content, owner_id, created_at, updated_at
		 FROM documents
		 WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	).Scan(
		&d.ID,
		&d.Title,
		&d.Content,
		&d.OwnerID,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound(notFoundMessage)
		}
		return nil, fmt.Errorf("sqlite: getting document %d: %w", id, err)
	}

	return &d, nil
}

// ListByOwner retrieves all documents belonging to one user, oldest first.
// A user with no documents gets an empty slice, not an error.
func (db *DB) ListByOwner(ctx context.Context, ownerID int64) ([]model.Document, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, content, owner_id, created_at, updated_at
		 FROM documents
		 WHERE owner_id = ?
		 ORDER BY created_at ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing documents: %w", err)
	}
	defer rows.Close()

	docs := []model.Document{}
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(
			&d.ID, &d.Title, &d.Content, &d.OwnerID,
			&d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning document row: %w", err)
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating documents: %w", err)
	}

	return docs, nil
}

// Update persists changed title/content for a document the owner holds.
//
// The WHERE clause repeats the owner_id check, so even a caller that skipped
// GetByID cannot overwrite a foreign row. RowsAffected == 0 means the row
// vanished (or was never the caller's) → same ErrNotFound as GetByID.
func (db *DB) Update(ctx context.Context, doc *model.Document) error {
	doc.UpdatedAt = time.Now().UTC()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE documents
		 SET title = ?, content = ?, updated_at = ?
		 WHERE id = ? AND owner_id = ?`,
		doc.Title,
		doc.Content,
		doc.UpdatedAt,
		doc.ID,
		doc.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating document %d: %w", doc.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound(notFoundMessage)
	}

	return nil
}

// Delete removes a document by (id, owner). Same RowsAffected pattern as
// Update — zero rows means not found or not yours, reported identically.
func (db *DB) Delete(ctx context.Context, id, ownerID int64) error {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM documents WHERE id = ? AND owner_id = ?`,
		id, ownerID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: deleting document %d: %w", id, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound(notFoundMessage)
	}

	return nil
}
