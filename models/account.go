package models

import "time"

// Account is a registered user of the terms service.
type Account struct {
	ID             string       `bson:"id" json:"id"`
	Email          string       `bson:"email" json:"email"`
	PasswordHash   string       `bson:"password_hash" json:"-"`
	Category       UserCategory `bson:"category" json:"category"`
	DisplayName    string       `bson:"display_name" json:"displayName"`
	BusinessNumber string       `bson:"business_number,omitempty" json:"businessNumber,omitempty"`
	TokenHash      string       `bson:"token_hash,omitempty" json:"-"`
	CreatedAt      time.Time    `bson:"created_at" json:"createdAt"`
	UpdatedAt      time.Time    `bson:"updated_at" json:"updatedAt"`
}

// AuthResponse is returned to the client after a successful login or signup.
type AuthResponse struct {
	ID       string       `json:"id"`
	Token    string       `json:"token"`
	Email    string       `json:"email"`
	Category UserCategory `json:"category"`
}
