package auth

import "time"

// User is the item stored in the users table.
type User struct {
	UserID       string    `dynamodbav:"user_id"` // PK, uuid
	Email        string    `dynamodbav:"email"`   // GSI email-index
	Name         string    `dynamodbav:"name"`
	PasswordHash string    `dynamodbav:"password_hash"`
	Verified     bool      `dynamodbav:"verified"`
	CreatedAt    time.Time `dynamodbav:"created_at"`
}

// Code purposes. Only email verification is wired today; password reset
// reuses the same store shape.
const (
	PurposeEmailVerify   = "email_verify"
	PurposePasswordReset = "password_reset"
)
