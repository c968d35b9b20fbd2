package main

import (
	"context"
	"errors"
	"log"
	"time"

	"go.uber.org/zap"

	"hotel/internal/config"
	"hotel/internal/database"
	"hotel/internal/database/migrate"
	"hotel/internal/domain/client"
	"hotel/internal/domain/reservation"
	"hotel/internal/domain/room"
	"hotel/internal/pkg/apperr"
	"hotel/internal/pkg/logger"
)

var seedClients = []client.CreateClientRequest{
	{Name: "Alice Martin", Email: "alice@example.com"},
	{Name: "Bruno Keller", Email: "bruno@example.com"},
	{Name: "Chiara Rossi", Email: "chiara@example.com"},
}

var seedRooms = []room.CreateRoomRequest{
	{Number: "101", Type: "single", Price: 59},
	{Number: "102", Type: "double", Price: 89},
	{Number: "201", Type: "double", Price: 95},
	{Number: "301", Type: "suite", Price: 180},
}

// stays are offsets in days from today: client index, room index, arrival, nights.
var seedStays = [][4]int{
	{0, 0, 1, 3},
	{1, 0, 4, 2},
	{2, 1, 2, 5},
	{0, 3, 10, 7},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	zlog, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := seed(context.Background(), cfg, zlog); err != nil {
		zlog.Fatal("seed failed", zap.Error(err))
	}
	zlog.Info("seed completed")
}

func seed(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	db, err := database.Connect(cfg.DatabaseURL, log)
	if err != nil {
		return err
	}
	if err := migrate.Run(db); err != nil {
		return err
	}

	clientRepo := client.NewRepository(db)
	roomRepo := room.NewRepository(db)
	reservationRepo := reservation.NewRepository(db)

	clients := client.NewService(clientRepo, log)
	rooms := room.NewService(roomRepo, log)
	bookings := reservation.NewService(
		reservation.NewChecker(roomRepo, reservationRepo, reservation.OverlapInclusive),
		reservationRepo, clientRepo, nil, nil, nil, log,
	)

	clientIDs := make([]int64, 0, len(seedClients))
	for _, req := range seedClients {
		c, err := clients.Create(ctx, req)
		if errors.Is(err, client.ErrEmailTaken) {
			log.Info("client already seeded", zap.String("email", req.Email))
			return nil
		}
		if err != nil {
			return err
		}
		clientIDs = append(clientIDs, c.ID)
	}

	roomIDs := make([]int64, 0, len(seedRooms))
	for _, req := range seedRooms {
		r, err := rooms.Create(ctx, req)
		if err != nil {
			return err
		}
		roomIDs = append(roomIDs, r.ID)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	for _, s := range seedStays {
		arrival := today.AddDate(0, 0, s[2])
		departure := arrival.AddDate(0, 0, s[3])
		_, err := bookings.BookRoom(ctx, clientIDs[s[0]], roomIDs[s[1]], arrival, departure)
		if apperr.KindOf(err) == apperr.KindConflict {
			log.Warn("skipping overlapping stay", zap.Int64("room_id", roomIDs[s[1]]))
			continue
		}
		if err != nil {
			return err
		}
	}

	log.Info("seeded",
		zap.Int("clients", len(clientIDs)),
		zap.Int("rooms", len(roomIDs)),
		zap.Int("reservations", len(seedStays)),
	)
	return nil
}
