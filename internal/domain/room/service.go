package room

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"hotel/internal/pkg/apperr"
	"hotel/internal/pkg/logger"
)

type Service struct {
	rooms Repository
	log   *zap.Logger
}

func NewService(rooms Repository, log *zap.Logger) *Service {
	return &Service{rooms: rooms, log: logger.OrNop(log).Named("room")}
}

func (s *Service) Create(ctx context.Context, req CreateRoomRequest) (*Room, error) {
	r := &Room{Number: strings.TrimSpace(req.Number), Type: strings.TrimSpace(req.Type), Price: req.Price}
	if err := validateRoom(r); err != nil {
		return nil, err
	}
	if err := s.rooms.Create(ctx, r); err != nil {
		return nil, err
	}
	s.log.Info("room created", zap.Int64("room_id", r.ID), zap.String("number", r.Number))
	return r, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Room, error) {
	return s.rooms.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Room, error) {
	return s.rooms.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateRoomRequest) (*Room, error) {
	r, err := s.rooms.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Number != nil {
		r.Number = strings.TrimSpace(*req.Number)
	}
	if req.Type != nil {
		r.Type = strings.TrimSpace(*req.Type)
	}
	if req.Price != nil {
		r.Price = *req.Price
	}
	if err := validateRoom(r); err != nil {
		return nil, err
	}
	if err := s.rooms.Update(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.rooms.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("room deleted", zap.Int64("room_id", id))
	return nil
}

// validateRoom rejects values that are blank once trimmed; binding tags
// only see the raw input.
func validateRoom(r *Room) error {
	fields := map[string]string{}
	if r.Number == "" {
		fields["number"] = "required"
	}
	if r.Type == "" {
		fields["type"] = "required"
	}
	if len(fields) > 0 {
		return apperr.Validation("invalid room", fields)
	}
	return nil
}
