package sqlite

import (
	"context"
	"time"

	"github.com/tasktrack/tasktrack/internal/domain"
	"github.com/tasktrack/tasktrack/internal/store"
)

type todosRepo struct {
	q querier
}

const todoColumns = `id, title, description, priority, completed, owner_id,
	created_at, updated_at`

func (r *todosRepo) ListByOwner(ctx context.Context, ownerID int64) ([]domain.Todo, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE owner_id = ? ORDER BY id`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Description, &t.Priority, &t.Completed,
			&t.OwnerID, &t.CreatedAt, &t.UpdatedAt,
		); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *todosRepo) GetByIDForOwner(ctx context.Context, id, ownerID int64) (domain.Todo, error) {
	row := r.q.QueryRowContext(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = ? AND owner_id = ?`, id, ownerID)

	var t domain.Todo
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Priority, &t.Completed,
		&t.OwnerID, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return domain.Todo{}, mapNotFound(err)
	}
	return t, nil
}

func (r *todosRepo) Create(ctx context.Context, t domain.Todo) (domain.Todo, error) {
	now := time.Now().UTC()
	res, err := r.q.ExecContext(ctx,
		`INSERT INTO todos (title, description, priority, completed, owner_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.Title, t.Description, t.Priority, t.Completed, t.OwnerID, now, now,
	)
	if err != nil {
		return domain.Todo{}, err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return domain.Todo{}, err
	}

	t.ID = id
	t.CreatedAt = now
	t.UpdatedAt = now
	return t, nil
}

func (r *todosRepo) UpdateForOwner(ctx context.Context, t domain.Todo) (domain.Todo, error) {
	res, err := r.q.ExecContext(ctx,
		`UPDATE todos SET title = ?, description = ?, priority = ?, completed = ?, updated_at = ?
		 WHERE id = ? AND owner_id = ?`,
		t.Title, t.Description, t.Priority, t.Completed, time.Now().UTC(),
		t.ID, t.OwnerID,
	)
	if err != nil {
		return domain.Todo{}, err
	}
	if err := requireRowAffected(res); err != nil {
		return domain.Todo{}, err
	}
	return r.GetByIDForOwner(ctx, t.ID, t.OwnerID)
}

func (r *todosRepo) DeleteForOwner(ctx context.Context, id, ownerID int64) error {
	res, err := r.q.ExecContext(ctx,
		`DELETE FROM todos WHERE id = ? AND owner_id = ?`, id, ownerID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func requireRowAffected(res interface{ RowsAffected() (int64, error) }) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}
