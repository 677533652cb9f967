package sqlite

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack/internal/domain"
	"github.com/tasktrack/tasktrack/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func seedUser(t *testing.T, s *Store, username string) domain.User {
	t.Helper()

	u, err := s.Users().CreateUser(context.Background(), domain.User{
		Username:     username,
		Email:        username + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: "$2b$12$notarealhashnotarealhashnotarealhash",
		Role:         "user",
		IsActive:     true,
	})
	require.NoError(t, err)
	return u
}

func TestUsersRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created := seedUser(t, s, "alice")
	require.Positive(t, created.ID)

	byID, err := s.Users().GetUserByID(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)
	require.Equal(t, "alice@example.com", byID.Email)
	require.True(t, byID.IsActive)

	byName, err := s.Users().GetUserByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, created.ID, byName.ID)

	_, err = s.Users().GetUserByUsername(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestUsersUniqueConstraints(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	seedUser(t, s, "alice")

	_, err := s.Users().CreateUser(ctx, domain.User{
		Username:     "alice",
		Email:        "other@example.com",
		PasswordHash: "x",
		Role:         "user",
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	_, err = s.Users().CreateUser(ctx, domain.User{
		Username:     "alice2",
		Email:        "alice@example.com",
		PasswordHash: "x",
		Role:         "user",
	})
	require.ErrorIs(t, err, store.ErrAlreadyExists)
}

func TestUpdatePasswordHash(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	u := seedUser(t, s, "alice")
	require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "$2b$12$newhash"))

	got, err := s.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, "$2b$12$newhash", got.PasswordHash)
}

func TestTodosOwnershipFiltering(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	aliceTodo, err := s.Todos().Create(ctx, domain.Todo{
		Title: "Buy milk", Description: "get milk", Priority: 3, OwnerID: alice.ID,
	})
	require.NoError(t, err)

	bobTodo, err := s.Todos().Create(ctx, domain.Todo{
		Title: "Walk dog", Description: "around the block", Priority: 2, OwnerID: bob.ID,
	})
	require.NoError(t, err)

	// Each owner only sees their own records.
	aliceList, err := s.Todos().ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, aliceList, 1)
	require.Equal(t, aliceTodo.ID, aliceList[0].ID)

	// Fetching someone else's record by id looks exactly like a miss.
	_, err = s.Todos().GetByIDForOwner(ctx, bobTodo.ID, alice.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	got, err := s.Todos().GetByIDForOwner(ctx, bobTodo.ID, bob.ID)
	require.NoError(t, err)
	require.Equal(t, "Walk dog", got.Title)
}

func TestTodosUpdateAndDeleteForOwner(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice")
	bob := seedUser(t, s, "bob")

	todo, err := s.Todos().Create(ctx, domain.Todo{
		Title: "Buy milk", Description: "get milk", Priority: 3, OwnerID: alice.ID,
	})
	require.NoError(t, err)

	// Cross-owner update and delete are both a NotFound, and leave the
	// record intact.
	crossUpdate := todo
	crossUpdate.OwnerID = bob.ID
	crossUpdate.Title = "hijacked"
	_, err = s.Todos().UpdateForOwner(ctx, crossUpdate)
	require.ErrorIs(t, err, store.ErrNotFound)
	require.ErrorIs(t, s.Todos().DeleteForOwner(ctx, todo.ID, bob.ID), store.ErrNotFound)

	kept, err := s.Todos().GetByIDForOwner(ctx, todo.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "Buy milk", kept.Title)

	// Owner update works and returns the stored row.
	todo.Title = "Buy oat milk"
	todo.Completed = true
	updated, err := s.Todos().UpdateForOwner(ctx, todo)
	require.NoError(t, err)
	require.Equal(t, "Buy oat milk", updated.Title)
	require.True(t, updated.Completed)

	// Owner delete works.
	require.NoError(t, s.Todos().DeleteForOwner(ctx, todo.ID, alice.ID))
	_, err = s.Todos().GetByIDForOwner(ctx, todo.ID, alice.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice")
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Todos().Create(ctx, domain.Todo{
			Title: "ephemeral", Description: "never lands", Priority: 1, OwnerID: alice.ID,
		})
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	todos, err := s.Todos().ListByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, todos)
}

func TestWithTxCommitsUpdate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	alice := seedUser(t, s, "alice")
	todo, err := s.Todos().Create(ctx, domain.Todo{
		Title: "Buy milk", Description: "get milk", Priority: 3, OwnerID: alice.ID,
	})
	require.NoError(t, err)

	todo.Title = "Buy oat milk"
	var updated domain.Todo
	err = s.WithTx(ctx, func(tx store.Tx) error {
		var err error
		updated, err = tx.Todos().UpdateForOwner(ctx, todo)
		return err
	})
	require.NoError(t, err)
	require.Equal(t, "Buy oat milk", updated.Title)

	// The committed change is visible outside the transaction.
	got, err := s.Todos().GetByIDForOwner(ctx, todo.ID, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "Buy oat milk", got.Title)
}

func TestMemoryDatabaseSharedAcrossConnections(t *testing.T) {
	s := newTestStore(t)

	alice := seedUser(t, s, "alice")

	// With an unbounded pool each new connection would open its own
	// empty in-memory database, so concurrent reads would miss the
	// seeded row. The single-connection cap keeps them on one database.
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Users().GetUserByID(context.Background(), alice.ID)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
}
