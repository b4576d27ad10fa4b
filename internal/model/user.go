// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// Identity is email + password. The password is stored only as a bcrypt
// hash — the `json:"-"` tag guarantees it can never leak into a response,
// no matter which handler serialises the struct.
//
// A user owns goals, todos and activities; every owned table carries a
// user_id foreign key with ON DELETE CASCADE, so deleting the account
// removes everything it owned.
type User struct {
	ID             string    `json:"id"`
	Email          string    `json:"email"`
	Username       string    `json:"username"`
	FullName       string    `json:"full_name"`
	HashedPassword string    `json:"-"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UserPatch is a partial update to the caller's own account.
//
// Pointer fields distinguish "not sent" (nil) from "sent" — only non-nil
// fields are applied. Password, when present, is re-hashed before storage.
type UserPatch struct {
	Email    *string `json:"email"`
	Username *string `json:"username"`
	FullName *string `json:"full_name"`
	Password *string `json:"password"`
}
