package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/manzafir/manzafir-backend/internal/domain"
	"github.com/manzafir/manzafir-backend/internal/repository"
)

type packageRepository struct {
	db *sqlx.DB
}

func NewPackageRepository(db *sqlx.DB) repository.PackageRepository {
	return &packageRepository{db: db}
}

func (r *packageRepository) Create(ctx context.Context, pkg *domain.TravelPackage) error {
	query := `
		INSERT INTO travel_packages (id, name, description, destinations, price, duration, images, highlights, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at
	`
	return r.db.QueryRowContext(
		ctx, query,
		pkg.ID, pkg.Name, pkg.Description, pq.Array(pkg.Destinations),
		pkg.Price, pkg.Duration, pq.Array(pkg.Images), pq.Array(pkg.Highlights), pkg.Category,
	).Scan(&pkg.CreatedAt)
}

func (r *packageRepository) List(ctx context.Context) ([]*domain.TravelPackage, error) {
	query := `
		SELECT id, name, description, destinations, price, duration, images, highlights, category, created_at
		FROM travel_packages
		ORDER BY created_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var packages []*domain.TravelPackage
	for rows.Next() {
		var pkg domain.TravelPackage
		if err := rows.Scan(
			&pkg.ID, &pkg.Name, &pkg.Description, pq.Array(&pkg.Destinations),
			&pkg.Price, &pkg.Duration, pq.Array(&pkg.Images), pq.Array(&pkg.Highlights),
			&pkg.Category, &pkg.CreatedAt,
		); err != nil {
			return nil, err
		}
		packages = append(packages, &pkg)
	}
	return packages, rows.Err()
}

func (r *packageRepository) Count(ctx context.Context) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM travel_packages`
	err := r.db.GetContext(ctx, &count, query)
	return count, err
}
