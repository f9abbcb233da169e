package repository

import (
	"context"

	"github.com/sakif/docvault/internal/model"
)

// UserRepository methods carry the User suffix because the sqlite.DB type
// implements this interface and DocumentRepository side by side — the
// document methods own the bare names.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
}

// DocumentRepository scopes every single-document operation to an owner.
// A lookup for a document that exists but belongs to someone else behaves
// exactly like a lookup for a document that doesn't exist — both return
// apperror.ErrNotFound. That property is relied on all the way up the stack.
type DocumentRepository interface {
	Create(ctx context.Context, doc *model.Document) error
	GetByID(ctx context.Context, id, ownerID int64) (*model.Document, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Document, error)
	Update(ctx context.Context, doc *model.Document) error
	Delete(ctx context.Context, id, ownerID int64) error
}
