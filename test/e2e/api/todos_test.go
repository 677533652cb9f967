package api_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack/pkg/apierr"
)

func TestTodoLifecycle(t *testing.T) {
	client := setupServer(t)
	session := registerAndLogin(t, client, "alice", "s3cretpw")
	ctx := t.Context()

	todos, err := session.ListTodos(ctx)
	require.NoError(t, err)
	require.Empty(t, todos)

	created, err := session.CreateTodo(ctx, validTodo())
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.False(t, created.Completed)
	require.NotZero(t, created.OwnerID)

	todos, err = session.ListTodos(ctx)
	require.NoError(t, err)
	require.Len(t, todos, 1)
	require.Equal(t, created.ID, todos[0].ID)
	require.Equal(t, created.OwnerID, todos[0].OwnerID)

	update := validTodo()
	update.Title = "Water the plants twice"
	update.Completed = true
	updated, err := session.UpdateTodo(ctx, created.ID, update)
	require.NoError(t, err)
	require.Equal(t, "Water the plants twice", updated.Title)
	require.True(t, updated.Completed)

	require.NoError(t, session.DeleteTodo(ctx, created.ID))

	_, err = session.GetTodo(ctx, created.ID)
	requireNotFound(t, err)
}

func TestTodosAreScopedToOwner(t *testing.T) {
	client := setupServer(t)
	alice := registerAndLogin(t, client, "alice", "s3cretpw")
	mallory := registerAndLogin(t, client, "mallory", "s3cretpw")
	ctx := t.Context()

	created, err := alice.CreateTodo(ctx, validTodo())
	require.NoError(t, err)

	todos, err := mallory.ListTodos(ctx)
	require.NoError(t, err)
	require.Empty(t, todos)

	_, err = mallory.GetTodo(ctx, created.ID)
	requireNotFound(t, err)

	_, err = mallory.UpdateTodo(ctx, created.ID, validTodo())
	requireNotFound(t, err)

	requireNotFound(t, mallory.DeleteTodo(ctx, created.ID))

	// Alice's record survives every attempt unchanged.
	got, err := alice.GetTodo(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, created.Title, got.Title)
	require.Equal(t, created.UpdatedAt, got.UpdatedAt)
}

func TestTodoValidation(t *testing.T) {
	client := setupServer(t)
	session := registerAndLogin(t, client, "alice", "s3cretpw")
	ctx := t.Context()

	bad := validTodo()
	bad.Priority = 9
	_, err := session.CreateTodo(ctx, bad)

	var apiErr *apierr.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	require.Equal(t, apierr.CodeValidation, apiErr.Code)
}

func TestTodoUnknownIDIs404(t *testing.T) {
	client := setupServer(t)
	session := registerAndLogin(t, client, "alice", "s3cretpw")

	_, err := session.GetTodo(t.Context(), 424242)
	requireNotFound(t, err)
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()

	var apiErr *apierr.APIError
	require.True(t, errors.As(err, &apiErr), "expected API error, got %v", err)
	require.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	require.Equal(t, apierr.CodeNotFound, apiErr.Code)
}
