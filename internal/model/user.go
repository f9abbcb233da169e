// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// WHY int64 IDs?
// User and document IDs are auto-incrementing integers assigned by the
// database (INTEGER PRIMARY KEY). int64 matches what database/sql returns
// from LastInsertId, so no conversions are needed anywhere.
//
// WHY json:"-" ON PasswordHash?
// The hash must never appear in an API response. The "-" tag tells
// encoding/json to skip the field entirely, so even if a handler
// accidentally serializes a whole User, the hash stays server-side.
type User struct {
	ID           int64     `json:"id"        db:"id"`
	Username     string    `json:"username"  db:"username"`
	PasswordHash string    `json:"-"         db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
