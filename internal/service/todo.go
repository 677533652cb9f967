package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/tasktrack/tasktrack/internal/domain"
	"github.com/tasktrack/tasktrack/internal/expand"
	"github.com/tasktrack/tasktrack/internal/store"
	"github.com/tasktrack/tasktrack/pkg/slogx"
)

// TodoService implements ownership-scoped todo CRUD. Every operation
// takes the caller's user id and only ever touches rows that belong to
// it; records owned by someone else are indistinguishable from records
// that do not exist.
type TodoService struct {
	Store    store.Store
	Expander expand.Expander

	// ExpandTimeout bounds the description expansion call on create.
	ExpandTimeout time.Duration
}

// TodoParams is the client-supplied portion of a todo. The owner is
// never taken from the client; it always comes from the authenticated
// identity.
type TodoParams struct {
	Title       string
	Description string
	Priority    int
	Completed   bool
}

func (p TodoParams) validate() error {
	switch {
	case utf8.RuneCountInString(strings.TrimSpace(p.Title)) < 3:
		return fmt.Errorf("%w: title must be at least 3 characters", ErrValidation)
	case utf8.RuneCountInString(p.Description) < 3 || utf8.RuneCountInString(p.Description) > 1000:
		return fmt.Errorf("%w: description must be between 3 and 1000 characters", ErrValidation)
	case p.Priority < domain.MinPriority || p.Priority > domain.MaxPriority:
		return fmt.Errorf("%w: priority must be between %d and %d", ErrValidation, domain.MinPriority, domain.MaxPriority)
	}
	return nil
}

func (s *TodoService) List(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	todos, err := s.Store.Todos().ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

func (s *TodoService) Get(ctx context.Context, id, ownerID int64) (domain.Todo, error) {
	todo, err := s.Store.Todos().GetByIDForOwner(ctx, id, ownerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Todo{}, ErrNotFound
		}
		return domain.Todo{}, fmt.Errorf("get todo: %w", err)
	}
	return todo, nil
}

// Create validates and persists a new todo for ownerID. The description
// is run through the expander first; if expansion fails the original
// text is stored unchanged.
func (s *TodoService) Create(ctx context.Context, ownerID int64, p TodoParams) (domain.Todo, error) {
	if err := p.validate(); err != nil {
		return domain.Todo{}, err
	}

	todo, err := s.Store.Todos().Create(ctx, domain.Todo{
		Title:       p.Title,
		Description: s.expandDescription(ctx, p.Description),
		Priority:    p.Priority,
		Completed:   p.Completed,
		OwnerID:     ownerID,
	})
	if err != nil {
		return domain.Todo{}, fmt.Errorf("create todo: %w", err)
	}
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, id, ownerID int64, p TodoParams) (domain.Todo, error) {
	if err := p.validate(); err != nil {
		return domain.Todo{}, err
	}

	// The rewrite and the read-back of the stored row must see the same
	// state, so both run in one transaction.
	var updated domain.Todo
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		var err error
		updated, err = tx.Todos().UpdateForOwner(ctx, domain.Todo{
			ID:          id,
			Title:       p.Title,
			Description: p.Description,
			Priority:    p.Priority,
			Completed:   p.Completed,
			OwnerID:     ownerID,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Todo{}, ErrNotFound
		}
		return domain.Todo{}, fmt.Errorf("update todo: %w", err)
	}
	return updated, nil
}

func (s *TodoService) Delete(ctx context.Context, id, ownerID int64) error {
	if err := s.Store.Todos().DeleteForOwner(ctx, id, ownerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("delete todo: %w", err)
	}
	return nil
}

func (s *TodoService) expandDescription(ctx context.Context, text string) string {
	if s.Expander == nil {
		return text
	}

	timeout := s.ExpandTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	expanded, err := s.Expander.Expand(ctx, text)
	if err != nil {
		slogx.FromContext(ctx).Warn("description expansion failed, keeping original",
			slog.Any("error", err))
		return text
	}
	return expanded
}
