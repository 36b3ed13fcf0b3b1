package cache

import (
	"certportal/internal/mocks"
	"certportal/internal/models"
	"certportal/internal/storage"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var activeTypes = []models.DocumentType{
	{ID: 3, Code: "equiposdemedicion", Title: "Equipos de medición", Active: true},
	{ID: 1, Code: "personas", Title: "Personas", Active: true},
	{ID: 7, Code: "personas", Title: "Personas (duplicado)", Active: true},
}

func newTestCatalog(t *testing.T, cache CacheProvider) (*Catalog, *mocks.MockStorageProvider) {
	t.Helper()
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStorageProvider(ctrl)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewCatalog(store, cache, time.Minute, logger), store
}

func TestCatalog_ListIsCached(t *testing.T) {
	ctx := context.Background()
	catalog, store := newTestCatalog(t, NewMemCache())

	store.EXPECT().ListActiveDocumentTypes(gomock.Any()).Return(activeTypes, nil).Times(1)

	first, err := catalog.ListActiveDocumentTypes(ctx)
	require.NoError(t, err)
	second, err := catalog.ListActiveDocumentTypes(ctx)
	require.NoError(t, err)

	assert.Equal(t, activeTypes, first)
	assert.Equal(t, first, second)

	second[0].Code = "mutated"
	third, err := catalog.ListActiveDocumentTypes(ctx)
	require.NoError(t, err)
	assert.Equal(t, "equiposdemedicion", third[0].Code, "callers must not share cached slices")
}

func TestCatalog_GetActiveDocumentType(t *testing.T) {
	ctx := context.Background()
	catalog, store := newTestCatalog(t, NewMemCache())

	store.EXPECT().ListActiveDocumentTypes(gomock.Any()).Return(activeTypes, nil).Times(1)

	dt, err := catalog.GetActiveDocumentType(ctx, "personas")
	require.NoError(t, err)
	assert.Equal(t, int64(1), dt.ID, "first entry for a code wins")

	_, err = catalog.GetActiveDocumentType(ctx, "elementosdeizaje")
	assert.ErrorIs(t, err, storage.DocumentTypeNotFoundError)
}

func TestCatalog_StoreErrorIsNotCached(t *testing.T) {
	ctx := context.Background()
	catalog, store := newTestCatalog(t, NewMemCache())

	gomock.InOrder(
		store.EXPECT().ListActiveDocumentTypes(gomock.Any()).Return(nil, errors.New("connection reset")),
		store.EXPECT().ListActiveDocumentTypes(gomock.Any()).Return(activeTypes, nil),
	)

	_, err := catalog.GetActiveDocumentType(ctx, "personas")
	assert.Error(t, err)

	dt, err := catalog.GetActiveDocumentType(ctx, "personas")
	require.NoError(t, err)
	assert.Equal(t, "personas", dt.Code)
}

func TestCatalog_InvalidateAndCorruptEntry(t *testing.T) {
	ctx := context.Background()
	mem := NewMemCache()
	catalog, store := newTestCatalog(t, mem)

	store.EXPECT().ListActiveDocumentTypes(gomock.Any()).Return(activeTypes, nil).Times(3)

	_, err := catalog.ListActiveDocumentTypes(ctx)
	require.NoError(t, err)

	catalog.Invalidate(ctx)
	_, err = catalog.ListActiveDocumentTypes(ctx)
	require.NoError(t, err)

	mem.Set(ctx, activeTypesKey, []byte("{not json"), time.Minute)
	types, err := catalog.ListActiveDocumentTypes(ctx)
	require.NoError(t, err)
	assert.Len(t, types, 3)
}

func TestCatalog_NoCachePassesThrough(t *testing.T) {
	ctx := context.Background()
	catalog, store := newTestCatalog(t, nil)

	store.EXPECT().GetActiveDocumentType(gomock.Any(), "personas").Return(&activeTypes[1], nil)
	store.EXPECT().ListActiveDocumentTypes(gomock.Any()).Return(activeTypes, nil).Times(2)
	store.EXPECT().Ping(gomock.Any()).Return(nil)

	dt, err := catalog.GetActiveDocumentType(ctx, "personas")
	require.NoError(t, err)
	assert.Equal(t, int64(1), dt.ID)

	for i := 0; i < 2; i++ {
		_, err := catalog.ListActiveDocumentTypes(ctx)
		require.NoError(t, err)
	}

	assert.NoError(t, catalog.Ping(ctx))
	catalog.Invalidate(ctx)
}
