package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/pokedex-core/internal/domain/entities"
	"github.com/ersonp/pokedex-core/internal/domain/mocks"
	"github.com/ersonp/pokedex-core/internal/domain/services"
)

func newTestCatalogHandler(t *testing.T, names ...string) (*CatalogHandler, *mocks.CatalogDB) {
	t.Helper()
	db := mocks.NewCatalogDB()
	svc := services.NewCatalogService(db, services.CatalogOptions{DefaultLimit: 2}, nil)
	handler := NewCatalogHandler(svc)
	for i, name := range names {
		_, err := handler.HandleCreate(context.Background(), entities.PokemonDraft{No: i + 1, Name: name})
		require.NoError(t, err)
	}
	return handler, db
}

func TestCatalogHandler_HandleCreate(t *testing.T) {
	handler, db := newTestCatalogHandler(t)

	p, err := handler.HandleCreate(context.Background(), entities.PokemonDraft{No: 25, Name: " Pikachu"})

	require.NoError(t, err)
	assert.Equal(t, "pikachu", p.Name)
	assert.NotEmpty(t, p.ID)
	assert.Len(t, db.Records, 1)
}

func TestCatalogHandler_HandleList(t *testing.T) {
	handler, _ := newTestCatalogHandler(t, "bulbasaur", "ivysaur", "venusaur")

	t.Run("default limit", func(t *testing.T) {
		result, err := handler.HandleList(context.Background(), 0, 0)

		require.NoError(t, err)
		assert.Len(t, result.Pokemon, 2)
		assert.Equal(t, 3, result.Total)
		assert.Equal(t, 2, result.Limit)
		assert.Equal(t, "bulbasaur", result.Pokemon[0].Name)
	})

	t.Run("explicit page", func(t *testing.T) {
		result, err := handler.HandleList(context.Background(), 5, 2)

		require.NoError(t, err)
		require.Len(t, result.Pokemon, 1)
		assert.Equal(t, "venusaur", result.Pokemon[0].Name)
		assert.Equal(t, 5, result.Limit)
		assert.Equal(t, 2, result.Offset)
	})

	t.Run("negative offset", func(t *testing.T) {
		_, err := handler.HandleList(context.Background(), 5, -1)
		assert.ErrorIs(t, err, entities.ErrBadRequest)
	})
}

func TestCatalogHandler_HandleGet(t *testing.T) {
	handler, _ := newTestCatalogHandler(t, "bulbasaur", "ivysaur")

	byNo, err := handler.HandleGet(context.Background(), "2")
	require.NoError(t, err)
	assert.Equal(t, "ivysaur", byNo.Name)

	byID, err := handler.HandleGet(context.Background(), byNo.ID)
	require.NoError(t, err)
	assert.Equal(t, byNo.ID, byID.ID)

	byName, err := handler.HandleGet(context.Background(), "IVYSAUR")
	require.NoError(t, err)
	assert.Equal(t, byNo.ID, byName.ID)

	_, err = handler.HandleGet(context.Background(), "missingno")
	assert.ErrorIs(t, err, entities.ErrNotFound)
}

func TestCatalogHandler_HandleUpdate(t *testing.T) {
	handler, _ := newTestCatalogHandler(t, "bulbasaur", "ivysaur")
	name := "Venusaur"

	updated, err := handler.HandleUpdate(context.Background(), "ivysaur", entities.PokemonPatch{Name: &name})

	require.NoError(t, err)
	assert.Equal(t, "venusaur", updated.Name)
	assert.Equal(t, 2, updated.No)

	taken := "bulbasaur"
	_, err = handler.HandleUpdate(context.Background(), "venusaur", entities.PokemonPatch{Name: &taken})
	assert.ErrorIs(t, err, entities.ErrConflict)
}

func TestCatalogHandler_HandleDelete(t *testing.T) {
	handler, db := newTestCatalogHandler(t, "bulbasaur")
	p, err := handler.HandleGet(context.Background(), "1")
	require.NoError(t, err)

	require.NoError(t, handler.HandleDelete(context.Background(), p.ID))
	assert.Empty(t, db.Records)

	err = handler.HandleDelete(context.Background(), p.ID)
	assert.ErrorIs(t, err, entities.ErrBadRequest)

	count, err := handler.HandleCount(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count)
}
