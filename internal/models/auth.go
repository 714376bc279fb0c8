package models

import "encoding/json"

// Credentials are the inputs to the sign-in operation
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the authentication endpoint's success payload.
// UserID arrives as a bare number from some deployments of the backend,
// so it is decoded leniently.
type LoginResponse struct {
	User   User        `json:"user"`
	UserID json.Number `json:"userId"`
	Token  string      `json:"token"`
}

// Session is the in-memory representation of the authenticated user
type Session struct {
	User            User   `json:"user"`
	UserID          string `json:"userId"`
	Token           string `json:"token"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Empty reports whether the session holds no authenticated user.
// Token and user are set together or not at all.
func (s Session) Empty() bool {
	return s.Token == "" && s.User.IsEmpty()
}
