package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/docvault/internal/apperror"
	"github.com/sakif/docvault/internal/model"
	"github.com/sakif/docvault/internal/repository"
)

// Validation bounds for documents.
const (
	MaxTitleLength   = 255
	MaxContentLength = 1_000_000 // ~1MB of raw text
)

// DocumentService handles business logic for personal documents.
//
// Every method takes the caller's ownerID as an explicit parameter — the
// identity resolved by the auth middleware is passed down rather than read
// from ambient state, and the repository scopes each query to that owner.
type DocumentService struct {
	repo   repository.DocumentRepository
	logger *slog.Logger
}

// NewDocumentService creates a new DocumentService.
func NewDocumentService(repo repository.DocumentRepository, logger *slog.Logger) *DocumentService {
	return &DocumentService{
		repo:   repo,
		logger: logger,
	}
}

// Create validates and saves a new document owned by ownerID.
//
// Title is required, 1–255 characters after trimming. Content may be empty
// (a freshly created document has no text yet) but is capped at 1MB.
func (s *DocumentService) Create(ctx context.Context, ownerID int64, title, content string) (*model.Document, error) {
	title = strings.TrimSpace(title)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if len(title) > MaxTitleLength {
		return nil, apperror.ValidationFailed("title",
			fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}
	if len(content) > MaxContentLength {
		return nil, apperror.ValidationFailed("content",
			fmt.Sprintf("content must be %d characters or less", MaxContentLength))
	}

	doc := &model.Document{
		Title:   title,
		Content: content,
		OwnerID: ownerID,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		s.logger.Error("failed to create document",
			slog.Int64("ownerID", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating document: %w", err)
	}

	s.logger.Info("document created",
		slog.Int64("id", doc.ID),
		slog.Int64("ownerID", ownerID),
	)

	return doc, nil
}

// List returns all of ownerID's documents, oldest first.
// A user with no documents gets an empty slice — that's a valid result,
// never an error.
func (s *DocumentService) List(ctx context.Context, ownerID int64) ([]model.Document, error) {
	docs, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		s.logger.Error("failed to list documents",
			slog.Int64("ownerID", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("listing documents: %w", err)
	}

	return docs, nil
}

// Get retrieves a single document owned by ownerID.
//
// A nonexistent id and an id owned by another user both come back from the
// repository as the same apperror.ErrNotFound — the error propagates as-is
// so the two cases stay indistinguishable.
func (s *DocumentService) Get(ctx context.Context, ownerID, id int64) (*model.Document, error) {
	return s.repo.GetByID(ctx, id, ownerID)
}

// Update modifies a document owned by ownerID.
//
// Content is replaced on every update — there is no partial-content patch.
// Title is optional: nil leaves it unchanged, a provided value replaces it
// (and must satisfy the same 1–255 bound as Create).
//
// STRATEGY: fetch then update. The fetch re-checks ownership (same not-found
// policy as Get), and the repository's UPDATE repeats the owner predicate,
// so the check holds even if the row changed hands in between.
func (s *DocumentService) Update(ctx context.Context, ownerID, id int64, title *string, content string) (*model.Document, error) {
	doc, err := s.repo.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if title != nil {
		t := strings.TrimSpace(*title)
		if t == "" {
			return nil, apperror.ValidationFailed("title", "title is required")
		}
		if len(t) > MaxTitleLength {
			return nil, apperror.ValidationFailed("title",
				fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
		}
		doc.Title = t
	}

	if len(content) > MaxContentLength {
		return nil, apperror.ValidationFailed("content",
			fmt.Sprintf("content must be %d characters or less", MaxContentLength))
	}
	doc.Content = content

	if err := s.repo.Update(ctx, doc); err != nil {
		s.logger.Error("failed to update document",
			slog.Int64("id", id),
			slog.Int64("ownerID", ownerID),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("document updated",
		slog.Int64("id", doc.ID),
		slog.Int64("ownerID", ownerID),
	)

	return doc, nil
}

// Delete removes a document owned by ownerID.
// Same ownership re-check and not-found policy as Get.
func (s *DocumentService) Delete(ctx context.Context, ownerID, id int64) error {
	if err := s.repo.Delete(ctx, id, ownerID); err != nil {
		return err
	}

	s.logger.Info("document deleted",
		slog.Int64("id", id),
		slog.Int64("ownerID", ownerID),
	)
	return nil
}
