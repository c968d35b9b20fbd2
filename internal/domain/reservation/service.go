package reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"hotel/internal/domain/room"
	"hotel/internal/lock"
	"hotel/internal/pkg/apperr"
	"hotel/internal/pkg/logger"
)

// Booking outcomes reported to the Recorder.
const (
	OutcomeBooked   = "booked"
	OutcomeConflict = "conflict"
	OutcomeNotFound = "not_found"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
)

type Service struct {
	checker      *Checker
	reservations Repository
	clients      ClientReader
	locker       Locker
	events       Broadcaster
	metrics      Recorder
	log          *zap.Logger
}

// NewService wires the booking workflow. locker, events and metrics may be
// nil; without a locker bookings rely on the database transaction alone.
func NewService(
	checker *Checker,
	reservations Repository,
	clients ClientReader,
	locker Locker,
	events Broadcaster,
	metrics Recorder,
	log *zap.Logger,
) *Service {
	return &Service{
		checker:      checker,
		reservations: reservations,
		clients:      clients,
		locker:       locker,
		events:       events,
		metrics:      metrics,
		log:          logger.OrNop(log).Named("reservation"),
	}
}

// BookRoom reserves the room for [arrival, departure) on behalf of the
// client. It fails with ErrRoomUnavailable when an existing reservation
// strictly overlaps the stay.
func (s *Service) BookRoom(ctx context.Context, clientID, roomID int64, arrival, departure time.Time) (*Reservation, error) {
	res, err := s.bookRoom(ctx, clientID, roomID, arrival, departure)
	s.record(err)
	if err != nil {
		if apperr.KindOf(err) != apperr.KindInternal {
			s.log.Info("booking rejected",
				zap.Int64("client_id", clientID),
				zap.Int64("room_id", roomID),
				zap.Error(err),
			)
		}
		return nil, err
	}

	s.log.Info("reservation created",
		zap.Int64("reservation_id", res.ID),
		zap.Int64("client_id", clientID),
		zap.Int64("room_id", roomID),
		zap.String("arrival", res.Arrival.Format(DateLayout)),
		zap.String("departure", res.Departure.Format(DateLayout)),
	)
	s.broadcast(EventCreated, *res)
	return res, nil
}

func (s *Service) bookRoom(ctx context.Context, clientID, roomID int64, arrival, departure time.Time) (*Reservation, error) {
	fields := map[string]string{}
	if clientID <= 0 {
		fields["client_id"] = "must be a positive integer"
	}
	if roomID <= 0 {
		fields["room_id"] = "must be a positive integer"
	}
	if len(fields) > 0 {
		return nil, apperr.Validation("invalid reservation", fields)
	}

	stay := Interval{Arrival: arrival.UTC(), Departure: departure.UTC()}
	if !stay.Valid() {
		return nil, ErrInvalidDates
	}

	if _, err := s.checker.rooms.GetByID(ctx, roomID); err != nil {
		return nil, err
	}
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		return nil, err
	}

	if s.locker != nil {
		unlock, err := s.locker.Lock(ctx, roomLockKey(roomID))
		if err != nil {
			if errors.Is(err, lock.ErrNotAcquired) {
				return nil, apperr.Wrap(ErrRoomBusy, err)
			}
			return nil, fmt.Errorf("lock room %d: %w", roomID, err)
		}
		defer unlock()
	}

	res := &Reservation{
		ClientID:  clientID,
		RoomID:    roomID,
		Arrival:   stay.Arrival,
		Departure: stay.Departure,
		Status:    StatusConfirmed,
	}
	err := s.reservations.WithinTx(ctx, func(tx Repository) error {
		if err := tx.LockRoom(ctx, roomID); err != nil {
			return err
		}
		free, err := roomFree(ctx, tx, roomID, stay, OverlapStrict)
		if err != nil {
			return err
		}
		if !free {
			return ErrRoomUnavailable
		}
		return tx.Create(ctx, res)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// CancelReservation deletes the reservation. Unknown ids yield ErrNotFound
// and leave the store untouched.
func (s *Service) CancelReservation(ctx context.Context, id int64) error {
	res, err := s.reservations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.reservations.Delete(ctx, id); err != nil {
		return err
	}

	if s.metrics != nil {
		s.metrics.ReservationCancelled()
	}
	s.log.Info("reservation cancelled", zap.Int64("reservation_id", id), zap.Int64("room_id", res.RoomID))
	s.broadcast(EventCancelled, *res)
	return nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Reservation, error) {
	return s.reservations.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Reservation, error) {
	return s.reservations.List(ctx)
}

func (s *Service) IsRoomFree(ctx context.Context, roomID int64, arrival, departure time.Time) (bool, error) {
	if err := validStay(arrival, departure); err != nil {
		return false, err
	}
	return s.checker.IsRoomFree(ctx, roomID, arrival.UTC(), departure.UTC())
}

func (s *Service) ListFreeRooms(ctx context.Context, arrival, departure time.Time) ([]room.Room, error) {
	if err := validStay(arrival, departure); err != nil {
		return nil, err
	}
	return s.checker.ListFreeRooms(ctx, arrival.UTC(), departure.UTC())
}

func validStay(arrival, departure time.Time) error {
	if !(Interval{Arrival: arrival, Departure: departure}).Valid() {
		return ErrInvalidDates
	}
	return nil
}

func (s *Service) record(err error) {
	if s.metrics == nil {
		return
	}
	outcome := OutcomeBooked
	if err != nil {
		switch apperr.KindOf(err) {
		case apperr.KindConflict:
			outcome = OutcomeConflict
		case apperr.KindNotFound:
			outcome = OutcomeNotFound
		case apperr.KindValidation:
			outcome = OutcomeInvalid
		default:
			outcome = OutcomeError
		}
	}
	s.metrics.BookingAttempt(outcome)
}

func (s *Service) broadcast(kind string, res Reservation) {
	if s.events == nil {
		return
	}
	s.events.Broadcast(Event{Type: kind, Reservation: res})
}

func roomLockKey(roomID int64) string {
	return fmt.Sprintf("room:%d", roomID)
}
