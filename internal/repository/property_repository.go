package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
)

// PropertyRepository manages property listing persistence.
type PropertyRepository interface {
	Create(ctx context.Context, property *domain.Property) error
	Update(ctx context.Context, property *domain.Property) error
	GetByID(ctx context.Context, id int64) (*domain.Property, error)
	List(ctx context.Context) ([]domain.Property, error)
	Delete(ctx context.Context, id int64) error
	CountByCategory(ctx context.Context, categoryID int64) (int64, error)
}

type propertyRepository struct {
	pool *pgxpool.Pool
}

// NewPropertyRepository builds the repository.
func NewPropertyRepository(pool *pgxpool.Pool) PropertyRepository {
	return &propertyRepository{pool: pool}
}

func (r *propertyRepository) Create(ctx context.Context, property *domain.Property) error {
	const query = `
        INSERT INTO properties (category_id, name, city, bathrooms, rooms, description, image)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		property.CategoryID,
		property.Name,
		property.City,
		property.Bathrooms,
		property.Rooms,
		property.Description,
		property.Image,
	).Scan(&property.ID, &property.CreatedAt, &property.UpdatedAt)
}

func (r *propertyRepository) Update(ctx context.Context, property *domain.Property) error {
	const query = `
        UPDATE properties
        SET category_id=$1, name=$2, city=$3, bathrooms=$4, rooms=$5,
            description=$6, image=$7, updated_at=NOW()
        WHERE id=$8`

	cmd, err := r.pool.Exec(ctx, query,
		property.CategoryID,
		property.Name,
		property.City,
		property.Bathrooms,
		property.Rooms,
		property.Description,
		property.Image,
		property.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepository) GetByID(ctx context.Context, id int64) (*domain.Property, error) {
	const query = `
        SELECT id, category_id, name, city, bathrooms, rooms, description, image, created_at, updated_at
        FROM properties WHERE id=$1`
	var property domain.Property
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&property.ID,
		&property.CategoryID,
		&property.Name,
		&property.City,
		&property.Bathrooms,
		&property.Rooms,
		&property.Description,
		&property.Image,
		&property.CreatedAt,
		&property.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &property, nil
}

func (r *propertyRepository) List(ctx context.Context) ([]domain.Property, error) {
	const query = `
        SELECT id, category_id, name, city, bathrooms, rooms, description, image, created_at, updated_at
        FROM properties ORDER BY id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Property
	for rows.Next() {
		var property domain.Property
		if err := rows.Scan(
			&property.ID,
			&property.CategoryID,
			&property.Name,
			&property.City,
			&property.Bathrooms,
			&property.Rooms,
			&property.Description,
			&property.Image,
			&property.CreatedAt,
			&property.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, property)
	}
	return result, rows.Err()
}

func (r *propertyRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM properties WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *propertyRepository) CountByCategory(ctx context.Context, categoryID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM properties WHERE category_id=$1`
	var count int64
	if err := r.pool.QueryRow(ctx, query, categoryID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
