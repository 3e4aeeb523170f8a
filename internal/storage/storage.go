// Package storage provides the persistence capability behind the API: one
// logical CRUD contract per entity kind, satisfied by interchangeable
// strategies (JSON files, MongoDB, SQLite) selected at startup. Handlers
// depend only on the Store interface and treat record ids as opaque tokens.
package storage

import (
	"context"
	"errors"

	"github.com/israil64/laptop-galaxy/internal/models"
)

// ErrNotFound signals that an update target does not exist. Deletes do not
// return it; removing a missing id is a no-op success.
var ErrNotFound = errors.New("record not found")

type Store interface {
	Laptops() LaptopStore
	Reviews() ReviewStore
	Messages() MessageStore
	Users() UserStore
	Close(ctx context.Context) error
}

// LaptopStore is the inventory collection. List is fail-open: an unreadable
// or missing backing store yields an empty slice, never an error, so a fresh
// install serves an empty catalog instead of crashing.
type LaptopStore interface {
	List(ctx context.Context) ([]models.Laptop, error)
	Create(ctx context.Context, l models.Laptop) (models.Laptop, error)
	Update(ctx context.Context, id string, p models.LaptopPatch) (models.Laptop, error)
	Delete(ctx context.Context, id string) error
}

type ReviewStore interface {
	List(ctx context.Context) ([]models.Review, error)
	Create(ctx context.Context, r models.Review) (models.Review, error)
	Update(ctx context.Context, id string, p models.ReviewPatch) (models.Review, error)
	Delete(ctx context.Context, id string) error
}

// MessageStore has no update: contact submissions are append-only from the
// public side and only ever deleted by an administrator.
type MessageStore interface {
	List(ctx context.Context) ([]models.Message, error)
	Create(ctx context.Context, m models.Message) (models.Message, error)
	Delete(ctx context.Context, id string) error
}

type UserStore interface {
	List(ctx context.Context) ([]models.User, error)
	Create(ctx context.Context, u models.User) (models.User, error)
	// FindByEmail returns (nil, nil) when no user matches.
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Delete(ctx context.Context, id string) error
}
