package models

import "time"

type User struct {
	Sub         string    `json:"sub"`
	Iss         string    `json:"iss"`
	Username    string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Email       string    `json:"email"`
	ClientID    int64     `json:"client_id"`
	AccountID   int64     `json:"account_id"`
	LoggedInAt  time.Time `json:"logged_in_at"`
}

// PendingLogin carries the values of an authorization request until its callback.
type PendingLogin struct {
	State        string
	Nonce        string
	CodeVerifier string
	StartedAt    time.Time
}
