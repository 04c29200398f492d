package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xenking/budogu-admin/internal/domain/product"
)

func TestProductRepository_CRUD(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(
		product.Product{ID: 5, NameJP: "グローブA"},
		product.Product{NameJP: "ミットB"},
	)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(5), list[0].ID)
	assert.Equal(t, int64(6), list[1].ID)

	created, err := repo.Create(ctx, product.Product{NameJP: "道着C"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), created.ID)

	updated, err := repo.Update(ctx, product.Product{ID: 7, NameJP: "道着D", Price: 9000})
	require.NoError(t, err)
	assert.Equal(t, "道着D", updated.NameJP)

	got, err := repo.GetByID(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, int64(9000), got.Price)

	require.NoError(t, repo.Delete(ctx, 5))

	list, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, int64(6), list[0].ID)
}

func TestProductRepository_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	_, err := repo.GetByID(ctx, 1)
	assert.ErrorIs(t, err, product.ErrNotFound)

	_, err = repo.Update(ctx, product.Product{ID: 1})
	assert.ErrorIs(t, err, product.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, 1), product.ErrNotFound)
}

func TestProductRepository_IDsNotReused(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository()

	first, err := repo.Create(ctx, product.Product{})
	require.NoError(t, err)
	require.NoError(t, repo.Delete(ctx, first.ID))

	second, err := repo.Create(ctx, product.Product{})
	require.NoError(t, err)
	assert.Greater(t, second.ID, first.ID)
}
