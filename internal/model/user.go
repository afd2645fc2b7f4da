// Package model defines the data structures used throughout the application.
package model

import "time"

// User represents a registered account.
//
// The email is the unique identifier and the partition key for every other
// per-user record (recipes, meal plan). PasswordHash is the full bcrypt
// output — salt and cost are embedded in the string, so no extra columns are
// needed. The hash never leaves the server; the json:"-" tag makes a leak
// through an accidental json.Marshal impossible.
type User struct {
	Email        string    `json:"email"     db:"email"`
	PasswordHash string    `json:"-"         db:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}
