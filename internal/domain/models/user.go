package models

import "time"

// User is a registered account. PasswordHash is a bcrypt hash and is never serialized.
type User struct {
	ID           int64     `json:"id"`
	Username     string    `json:"user_name"`
	Email        string    `json:"user_email"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// WatchList is owned one-to-one by a user and created together with it.
//
// Symbols is replaced wholesale after every successful symbols-data request;
// it only ever holds symbols for which the market-data API returned data.
type WatchList struct {
	UserID    int64     `json:"user_id"`
	Symbols   []string  `json:"symbols"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthToken is the opaque key a user presents in the Authorization header.
type AuthToken struct {
	Key       string    `json:"token"`
	UserID    int64     `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}
