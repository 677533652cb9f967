package store

import (
	"context"
	"errors"

	"github.com/tasktrack/tasktrack/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite,
// postgres) implement this. It exposes sub-repositories to keep concerns
// tidy and testable.
type Store interface {
	Users() Users
	Todos() Todos

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed. Rollback also
	// runs on every early exit path, including panics.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds
// Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id int64) (domain.User, error)

	// GetUserByUsername is used during login.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user and returns it with the allocated id.
	// Duplicate usernames or emails surface as ErrAlreadyExists via the
	// schema's unique constraints.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	// UpdatePasswordHash sets the password_hash and bumps updated_at. Used
	// when a legacy-scheme hash is transparently upgraded on login.
	UpdatePasswordHash(ctx context.Context, userID int64, newHash string) error
}

type Todos interface {
	// ListByOwner returns all todos owned by ownerID, oldest first.
	ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error)

	// GetByIDForOwner returns the todo only when it exists AND is owned by
	// ownerID; otherwise ErrNotFound. A record owned by someone else is
	// indistinguishable from an absent one.
	GetByIDForOwner(ctx context.Context, id, ownerID int64) (domain.Todo, error)

	// Create inserts a new todo and returns it with the allocated id.
	Create(ctx context.Context, t domain.Todo) (domain.Todo, error)

	// UpdateForOwner rewrites title/description/priority/completed of the
	// todo when owned by ownerID and returns the stored result;
	// ErrNotFound otherwise.
	UpdateForOwner(ctx context.Context, t domain.Todo) (domain.Todo, error)

	// DeleteForOwner removes the todo when owned by ownerID; ErrNotFound
	// otherwise.
	DeleteForOwner(ctx context.Context, id, ownerID int64) error
}
