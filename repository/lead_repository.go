package repository

import (
	"context"

	"sparta-mortgage/domain"
)

type LeadRepository interface {
	Save(ctx context.Context, lead domain.Lead) error
	List(ctx context.Context) ([]domain.Lead, error)
}

// LeadPublisher hands a lead to downstream CRM tooling.
type LeadPublisher interface {
	Publish(ctx context.Context, lead domain.Lead) error
	Close() error
}
