package room

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

	db, err := database.Connect(database.MemoryDSN("room_"+t.Name()), nil)
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return db
}

func TestService_CreateListsInInventoryOrder(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	for _, n := range []string{"201", "101", "301"} {
		_, err := svc.Create(ctx, CreateRoomRequest{Number: n, Type: "double", Price: 80})
		require.NoError(t, err)
	}

	rooms, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 3)
	assert.Equal(t, "201", rooms[0].Number)
	assert.Equal(t, "101", rooms[1].Number)
	assert.Equal(t, "301", rooms[2].Number)
}

func TestService_DuplicateNumberIsConflict(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRoomRequest{Number: "101", Type: "single", Price: 50})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateRoomRequest{Number: " 101 ", Type: "suite", Price: 200})
	assert.ErrorIs(t, err, ErrNumberTaken)
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestService_UpdateKeepsAbsentFields(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	r, err := svc.Create(ctx, CreateRoomRequest{Number: "101", Type: "single", Price: 50})
	require.NoError(t, err)

	price := 65.5
	updated, err := svc.Update(ctx, r.ID, UpdateRoomRequest{Price: &price})
	require.NoError(t, err)
	assert.Equal(t, "101", updated.Number)
	assert.Equal(t, "single", updated.Type)
	assert.InDelta(t, 65.5, updated.Price, 0.0001)

	suite := "suite"
	updated, err = svc.Update(ctx, r.ID, UpdateRoomRequest{Type: &suite})
	require.NoError(t, err)
	assert.Equal(t, "suite", updated.Type)
	assert.InDelta(t, 65.5, updated.Price, 0.0001)
}

func TestService_MissingRoom(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)
	ctx := context.Background()

	_, err := svc.Get(ctx, 7)
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, 7), apperr.ErrNotFound)
}

func TestService_EmptyInventory(t *testing.T) {
	svc := NewService(NewRepository(setupTestDB(t)), nil)

	rooms, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, rooms)
	assert.Empty(t, rooms)
}
