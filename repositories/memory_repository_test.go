package repositories

import (
	"context"
	"testing"

	"orders-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryUserRepository(t *testing.T) {
	testUserRepository(t, NewMemoryUserRepository())
}

func TestMemoryOrderRepository(t *testing.T) {
	testOrderRepository(t, NewMemoryOrderRepository())
}

func TestMemoryRepositoryHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryUserRepository().FindAll(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	err = NewMemoryOrderRepository().Create(ctx, &models.Order{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryUserRepositoryReturnsCopies(t *testing.T) {
	repo := NewMemoryUserRepository()
	user := &models.User{Name: "Ana"}
	require.NoError(t, repo.Create(context.Background(), user))

	user.Name = "mutated"
	got, err := repo.FindByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
}
