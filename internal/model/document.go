package model

import "time"

// Document represents a personal text document owned by a single user.
//
// OwnerID is the access-control boundary of the whole service: every read,
// update, and delete is scoped to (id, owner_id) so one user can never see
// or touch another user's documents.
type Document struct {
	ID        int64     `json:"id"        db:"id"`
	Title     string    `json:"title"     db:"title"`
	Content   string    `json:"content"   db:"content"`
	OwnerID   int64     `json:"ownerId"   db:"owner_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
