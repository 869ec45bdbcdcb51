package repository

import (
	"context"

	"github.com/manzafir/manzafir-backend/internal/domain"
)

type PackageRepository interface {
	Create(ctx context.Context, pkg *domain.TravelPackage) error
	List(ctx context.Context) ([]*domain.TravelPackage, error)
	Count(ctx context.Context) (int, error)
}
