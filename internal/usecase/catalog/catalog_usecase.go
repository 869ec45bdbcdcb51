package catalog

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/manzafir/manzafir-backend/internal/domain"
	"github.com/manzafir/manzafir-backend/internal/repository"
)

type CatalogUseCase struct {
	packageRepo repository.PackageRepository
}

func NewCatalogUseCase(packageRepo repository.PackageRepository) *CatalogUseCase {
	return &CatalogUseCase{packageRepo: packageRepo}
}

// CreatePackageRequest represents a new catalog entry
type CreatePackageRequest struct {
	Name         string   `json:"name" binding:"required,max=200"`
	Description  string   `json:"description" binding:"required"`
	Destinations []string `json:"destinations" binding:"required,min=1"`
	Price        float64  `json:"price" binding:"required,gt=0"`
	Duration     string   `json:"duration" binding:"required"`
	Images       []string `json:"images"`
	Highlights   []string `json:"highlights"`
	Category     string   `json:"category" binding:"required"`
}

func (uc *CatalogUseCase) ListPackages(ctx context.Context) ([]*domain.TravelPackage, error) {
	packages, err := uc.packageRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list packages: %w", err)
	}
	if packages == nil {
		packages = []*domain.TravelPackage{}
	}
	return packages, nil
}

func (uc *CatalogUseCase) CreatePackage(ctx context.Context, req *CreatePackageRequest) (*domain.TravelPackage, error) {
	pkg := &domain.TravelPackage{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Description:  req.Description,
		Destinations: req.Destinations,
		Price:        req.Price,
		Duration:     req.Duration,
		Images:       req.Images,
		Highlights:   req.Highlights,
		Category:     req.Category,
	}

	if err := uc.packageRepo.Create(ctx, pkg); err != nil {
		return nil, fmt.Errorf("failed to create package: %w", err)
	}

	return pkg, nil
}

// SeedSampleData inserts the sample catalog iff the table is empty. Returns
// how many packages were inserted (0 when data already existed).
func (uc *CatalogUseCase) SeedSampleData(ctx context.Context) (int, error) {
	count, err := uc.packageRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count packages: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	for _, pkg := range samplePackages() {
		if err := uc.packageRepo.Create(ctx, pkg); err != nil {
			return 0, fmt.Errorf("failed to seed package %q: %w", pkg.Name, err)
		}
	}
	return len(samplePackages()), nil
}

func samplePackages() []*domain.TravelPackage {
	return []*domain.TravelPackage{
		{
			ID:           uuid.NewString(),
			Name:         "Tropical Paradise - Maldives",
			Description:  "Luxury overwater villas in crystal clear waters with world-class diving and pristine beaches.",
			Destinations: []string{"Maldives", "Male", "Hulhumale"},
			Price:        2500.0,
			Duration:     "7 days / 6 nights",
			Images:       []string{"https://res.cloudinary.com/dqixczuzs/image/upload/v1/sample/maldives1.jpg"},
			Highlights:   []string{"Overwater villas", "Snorkeling & diving", "Spa treatments", "Sunset dinners"},
			Category:     "beaches",
		},
		{
			ID:           uuid.NewString(),
			Name:         "Himalayan Adventure - Nepal",
			Description:  "Trek through stunning mountain landscapes and experience rich Buddhist culture in the heart of the Himalayas.",
			Destinations: []string{"Kathmandu", "Pokhara", "Annapurna Base Camp"},
			Price:        1200.0,
			Duration:     "12 days / 11 nights",
			Images:       []string{"https://res.cloudinary.com/dqixczuzs/image/upload/v1/sample/nepal1.jpg"},
			Highlights:   []string{"Mountain trekking", "Buddhist temples", "Local culture", "Sunrise views"},
			Category:     "mountains",
		},
		{
			ID:           uuid.NewString(),
			Name:         "Historic Wonders - Egypt",
			Description:  "Explore ancient pyramids, tombs, and temples while cruising the legendary Nile River.",
			Destinations: []string{"Cairo", "Luxor", "Aswan", "Abu Simbel"},
			Price:        1800.0,
			Duration:     "10 days / 9 nights",
			Images:       []string{"https://res.cloudinary.com/dqixczuzs/image/upload/v1/sample/egypt1.jpg"},
			Highlights:   []string{"Great Pyramids", "Nile cruise", "Valley of Kings", "Ancient temples"},
			Category:     "historical",
		},
	}
}
