// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is an account that signs in with email and password.
type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
}
