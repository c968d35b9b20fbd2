package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotel/internal/database"
	"hotel/internal/domain/client"
	"hotel/internal/domain/room"
)

type fixture struct {
	db       *gorm.DB
	clients  client.Repository
	rooms    room.Repository
	repo     Repository
	checker  *Checker
	service  *Service
	recorder *countingRecorder
	events   *capturingBroadcaster
}

func newFixture(t *testing.T, listing OverlapMode) *fixture {
	t.Helper()

	db, err := database.Connect(database.MemoryDSN("reservation_"+t.Name()), nil)
	require.NoError(t, err)
	require.NoError(t, client.AutoMigrate(db))
	require.NoError(t, room.AutoMigrate(db))
	require.NoError(t, AutoMigrate(db))

	f := &fixture{
		db:       db,
		clients:  client.NewRepository(db),
		rooms:    room.NewRepository(db),
		repo:     NewRepository(db),
		recorder: &countingRecorder{outcomes: map[string]int{}},
		events:   &capturingBroadcaster{},
	}
	f.checker = NewChecker(f.rooms, f.repo, listing)
	f.service = NewService(f.checker, f.repo, f.clients, &mutexLocker{}, f.events, f.recorder, nil)
	return f
}

func (f *fixture) addClient(t *testing.T, name string) *client.Client {
	t.Helper()
	c := &client.Client{Name: name, Email: name + "@example.com"}
	require.NoError(t, f.clients.Create(context.Background(), c))
	return c
}

func (f *fixture) addRoom(t *testing.T, number string) *room.Room {
	t.Helper()
	r := &room.Room{Number: number, Type: "double", Price: 90}
	require.NoError(t, f.rooms.Create(context.Background(), r))
	return r
}

func (f *fixture) book(t *testing.T, clientID, roomID int64, arrival, departure string) *Reservation {
	t.Helper()
	res, err := f.service.BookRoom(context.Background(), clientID, roomID, day(arrival), day(departure))
	require.NoError(t, err)
	return res
}

func (f *fixture) count(t *testing.T) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Table("reservations").Count(&n).Error)
	return n
}

func day(s string) time.Time {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}
	return d
}

func roomNumbers(rooms []room.Room) []string {
	out := make([]string, 0, len(rooms))
	for _, r := range rooms {
		out = append(out, r.Number)
	}
	return out
}
