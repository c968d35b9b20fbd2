package client

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotel/internal/database"
	"hotel/internal/pkg/apperr"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Connect(database.MemoryDSN("client_"+t.Name()), nil)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func strPtr(s string) *string { return &s }

func TestService_CreateAndGet(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateClientRequest{Name: " Alice Martin ", Email: "Alice@Example.com"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, "Alice Martin", created.Name)
	assert.Equal(t, "alice@example.com", created.Email)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "alice@example.com", got.Email)
}

func TestService_DuplicateEmailIsConflict(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateClientRequest{Name: "A", Email: "dup@example.com"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateClientRequest{Name: "B", Email: "DUP@example.com"})
	assert.ErrorIs(t, err, ErrEmailTaken)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestService_GetMissing(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)

	_, err := svc.Get(context.Background(), 404)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestService_UpdatePartial(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	c, err := svc.Create(ctx, CreateClientRequest{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, c.ID, UpdateClientRequest{Name: strPtr("Robert")})
	require.NoError(t, err)
	assert.Equal(t, "Robert", updated.Name)
	assert.Equal(t, "bob@example.com", updated.Email)

	_, err = svc.Update(ctx, 999, UpdateClientRequest{Name: strPtr("Nobody")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestService_ListAndDelete(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateClientRequest{Name: "One", Email: "one@example.com"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateClientRequest{Name: "Two", Email: "two@example.com"})
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "One", all[0].Name)

	require.NoError(t, svc.Delete(ctx, first.ID))
	assert.ErrorIs(t, svc.Delete(ctx, first.ID), ErrNotFound)

	all, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
