package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Email uniqueness is enforced by the store.  Users are created at
// registration and never updated or deleted through the API.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique email address, stored lower-cased.
//  Name         – optional display name.
//  PasswordHash – bcrypt hashed password.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	Name         string    // users.name
	PasswordHash string    // users.password_hash
	CreatedAt    time.Time // users.created_at
}
