package services

import (
	"context"

	"projectgate/internal/core/domain"
)

// UserDirectory resolves user identity attributes. Identity is owned by the
// main site; this core only needs role and active flags.
type UserDirectory interface {
	GetByID(ctx context.Context, id uint) (*domain.User, error)
}

// ProjectCatalog resolves project catalog entries, including the gated
// demo/download URLs that only the gateway may release.
type ProjectCatalog interface {
	GetByID(ctx context.Context, id uint) (*domain.Project, error)
}

// Authorizer answers whether a caller may perform admin review, independent
// of transport.
type Authorizer interface {
	RequireAdmin(ctx context.Context, userID uint) error
}
