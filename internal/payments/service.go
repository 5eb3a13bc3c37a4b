package payments

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ameedanxari/menumaker-backend/pkg/db/models"
	pkgerrors "github.com/ameedanxari/menumaker-backend/pkg/errors"
)

// Service exposes processor and payout queries to the API layer.
type Service interface {
	ListProcessors(ctx context.Context, businessID uuid.UUID) ([]models.PaymentProcessor, error)
	ConnectProcessor(ctx context.Context, businessID uuid.UUID, name string) (*models.PaymentProcessor, error)
	ListPayouts(ctx context.Context, businessID uuid.UUID) ([]models.Payout, error)
}

type service struct {
	repo Repository
}

// NewService builds the payments service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("payments repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) ListProcessors(ctx context.Context, businessID uuid.UUID) ([]models.PaymentProcessor, error) {
	if businessID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business id required")
	}
	processors, err := s.repo.GetProcessors(ctx, businessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list processors")
	}
	return processors, nil
}

func (s *service) ConnectProcessor(ctx context.Context, businessID uuid.UUID, name string) (*models.PaymentProcessor, error) {
	if businessID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business id required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "processor name is required")
	}
	processor, err := s.repo.ConnectProcessor(ctx, businessID, name)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "connect processor")
	}
	return processor, nil
}

func (s *service) ListPayouts(ctx context.Context, businessID uuid.UUID) ([]models.Payout, error) {
	if businessID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "business id required")
	}
	payouts, err := s.repo.GetPayouts(ctx, businessID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list payouts")
	}
	return payouts, nil
}
