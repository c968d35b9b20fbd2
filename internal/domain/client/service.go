package client

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"hotel/internal/pkg/apperr"
	"hotel/internal/pkg/logger"
)

type Service struct {
	clients Repository
	log     *zap.Logger
}

func NewService(clients Repository, log *zap.Logger) *Service {
	return &Service{clients: clients, log: logger.OrNop(log).Named("client")}
}

func (s *Service) Create(ctx context.Context, req CreateClientRequest) (*Client, error) {
	c := &Client{Name: strings.TrimSpace(req.Name), Email: normalizeEmail(req.Email)}
	if err := validateClient(c); err != nil {
		return nil, err
	}
	if err := s.clients.Create(ctx, c); err != nil {
		return nil, err
	}
	s.log.Info("client created", zap.Int64("client_id", c.ID))
	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*Client, error) {
	return s.clients.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Client, error) {
	return s.clients.List(ctx)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateClientRequest) (*Client, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		c.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		c.Email = normalizeEmail(*req.Email)
	}
	if err := validateClient(c); err != nil {
		return nil, err
	}
	if err := s.clients.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info("client deleted", zap.Int64("client_id", id))
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// validateClient rejects values that are blank once trimmed; binding tags
// only see the raw input.
func validateClient(c *Client) error {
	fields := map[string]string{}
	if c.Name == "" {
		fields["name"] = "required"
	}
	if c.Email == "" {
		fields["email"] = "required"
	}
	if len(fields) > 0 {
		return apperr.Validation("invalid client", fields)
	}
	return nil
}
