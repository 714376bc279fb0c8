package storage

import (
	"context"

	"github.com/kenziemed/medclient/internal/models"
)

// Record holds the durable session state: the user record, the user id
// and the credential token. The three are written together on sign-in
// and profile edit, and read once at start-up.
type Record struct {
	User   models.User `json:"user"`
	UserID string      `json:"userId"`
	Token  string      `json:"token"`
}

// Storage is the durable key-value collaborator for session state.
//
// Read returns models.ErrSessionNotFound when nothing was persisted and
// models.ErrCorruptSession when the persisted data cannot be decoded.
type Storage interface {
	Read(ctx context.Context) (*Record, error)
	Write(ctx context.Context, record *Record) error
	Clear(ctx context.Context) error
}
