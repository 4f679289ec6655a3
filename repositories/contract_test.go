package repositories

import (
	"context"
	"testing"

	"orders-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testUserRepository exercises behaviour every UserRepository must share.
// Callers hand in an empty store.
func testUserRepository(t *testing.T, repo UserRepository) {
	t.Helper()
	ctx := context.Background()

	users, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.NotNil(t, users)
	assert.Empty(t, users)

	ana := &models.User{Name: "Ana", Email: "ana@example.com", Password: "hash-a"}
	require.NoError(t, repo.Create(ctx, ana))
	require.NotEmpty(t, ana.ID)
	assert.False(t, ana.CreatedAt.IsZero())

	bob := &models.User{Name: "Bob", Email: "bob@example.com", Password: "hash-b"}
	require.NoError(t, repo.Create(ctx, bob))

	users, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, ana.ID, users[0].ID)
	assert.Equal(t, bob.ID, users[1].ID)

	found, err := repo.FindByEmail(ctx, "bob@example.com")
	require.NoError(t, err)
	assert.Equal(t, bob.ID, found.ID)
	assert.Equal(t, "hash-b", found.Password)

	byName, err := repo.FindByName(ctx, "Ana")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, ana.ID, byName[0].ID)

	none, err := repo.FindByName(ctx, "Nobody")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	ana.Name = "Ana Maria"
	require.NoError(t, repo.Update(ctx, ana))
	got, err := repo.FindByID(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", got.Name)

	require.NoError(t, repo.Delete(ctx, bob.ID))
	_, err = repo.FindByID(ctx, bob.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, bob.ID), ErrNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &models.User{ID: bob.ID}), ErrNotFound)

	_, err = repo.FindByEmail(ctx, "bob@example.com")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.FindByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func testOrderRepository(t *testing.T, repo OrderRepository) {
	t.Helper()
	ctx := context.Background()

	orders, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, orders)

	first := &models.Order{Email: "ana@example.com", Name: "Latte", Status: "pending"}
	require.NoError(t, repo.Create(ctx, first))
	require.NotEmpty(t, first.ID)

	second := &models.Order{Email: "bob@example.com", Name: "Mocha", Status: "shipped"}
	require.NoError(t, repo.Create(ctx, second))

	pending, err := repo.FindByStatus(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, first.ID, pending[0].ID)

	got, err := repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "Mocha", got.Name)

	second.Status = "delivered"
	require.NoError(t, repo.Update(ctx, second))
	got, err = repo.FindByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "delivered", got.Status)

	require.NoError(t, repo.Delete(ctx, first.ID))
	orders, err = repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, second.ID, orders[0].ID)

	assert.ErrorIs(t, repo.Delete(ctx, first.ID), ErrNotFound)
	_, err = repo.FindByID(ctx, "not-an-id")
	assert.ErrorIs(t, err, ErrNotFound)
}
