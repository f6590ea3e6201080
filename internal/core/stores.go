package core

import (
	"context"
	"errors"

	"github.com/go-authgate/tokenguard/internal/models"
)

var (
	// ErrTokenNotFound is returned by a ReferenceTokenStore when the handle is
	// unknown or its record has expired. The two cases are indistinguishable.
	ErrTokenNotFound = errors.New("reference token not found")

	// ErrClientNotFound is returned by a ClientStore for unknown client ids.
	ErrClientNotFound = errors.New("client not found")
)

// ReferenceTokenStore maps opaque handles to issued token records.
type ReferenceTokenStore interface {
	StoreToken(ctx context.Context, handle string, token *models.Token) error
	GetToken(ctx context.Context, handle string) (*models.Token, error)
	// RevokeToken removes handle. Unknown handles are not an error.
	RevokeToken(ctx context.Context, handle string) error
}

// ClientStore resolves the client that owns a token.
type ClientStore interface {
	FindClient(ctx context.Context, clientID string) (*models.Client, error)
}

// ClientRegistry is a ClientStore that can also list and enable or disable
// clients.
type ClientRegistry interface {
	ClientStore
	SetClientActive(ctx context.Context, clientID string, active bool) error
	ListClients(ctx context.Context, page, pageSize int) ([]models.Client, int64, error)
}

// UserService reports whether the subject of a delegated token is still active.
type UserService interface {
	IsActive(ctx context.Context, subject string, claims []models.Claim) (bool, error)
}
