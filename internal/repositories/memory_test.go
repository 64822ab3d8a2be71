package repositories_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	m "inkfolio/internal/models"
	. "inkfolio/internal/repositories"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTattooStore()

	created, err := store.Create(ctx, m.Tattoo{Owner: "user-1", Design: "Wave"})

	assert.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())

	fetched, err := store.Get(ctx, created.ID)

	assert.NoError(t, err)
	assert.Equal(t, "Wave", fetched.Design)

	fetched.Design = "Tidal wave"
	updated, err := store.Update(ctx, created.ID, fetched)

	assert.NoError(t, err)
	assert.Equal(t, "Tidal wave", updated.Design)
	assert.Equal(t, created.ID, updated.ID)

	assert.NoError(t, store.Delete(ctx, created.ID))

	_, err = store.Get(ctx, created.ID)
	assert.True(t, errors.Is(err, m.ErrNotFound))
}

func TestMemoryStoreListKeepsInsertionOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryTattooStore()

	first, _ := store.Create(ctx, m.Tattoo{Design: "First"})
	second, _ := store.Create(ctx, m.Tattoo{Design: "Second"})

	tattoos, err := store.List(ctx)

	assert.NoError(t, err)
	assert.Len(t, tattoos, 2)
	assert.Equal(t, first.ID, tattoos[0].ID)
	assert.Equal(t, second.ID, tattoos[1].ID)
}

func TestMemoryUserStoreGetByName(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryUserStore()

	store.Create(ctx, m.User{Name: "named-user", Email: "named@example.com"})

	user, err := store.GetByName(ctx, "named-user")

	assert.NoError(t, err)
	assert.Equal(t, "named-user", user.Name)

	_, err = store.GetByName(ctx, "unknown")
	assert.True(t, errors.Is(err, m.ErrNotFound))
}
