package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/realty-service/internal/domain"
)

// InquiryRepository manages inquiry message persistence.
type InquiryRepository interface {
	Create(ctx context.Context, inquiry *domain.Inquiry) error
	Update(ctx context.Context, inquiry *domain.Inquiry) error
	GetByID(ctx context.Context, id int64) (*domain.Inquiry, error)
	ListWithDetails(ctx context.Context) ([]domain.InquiryListing, error)
	Delete(ctx context.Context, id int64) error
	CountByProperty(ctx context.Context, propertyID int64) (int64, error)
}

type inquiryRepository struct {
	pool *pgxpool.Pool
}

// NewInquiryRepository builds the repository.
func NewInquiryRepository(pool *pgxpool.Pool) InquiryRepository {
	return &inquiryRepository{pool: pool}
}

func (r *inquiryRepository) Create(ctx context.Context, inquiry *domain.Inquiry) error {
	const query = `
        INSERT INTO inquiries (user_id, property_id, title, content, status)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		inquiry.UserID,
		inquiry.PropertyID,
		inquiry.Title,
		inquiry.Content,
		inquiry.Status,
	).Scan(&inquiry.ID, &inquiry.CreatedAt, &inquiry.UpdatedAt)
}

func (r *inquiryRepository) Update(ctx context.Context, inquiry *domain.Inquiry) error {
	const query = `
        UPDATE inquiries
        SET title=$1, content=$2, status=$3, response=$4, updated_at=NOW()
        WHERE id=$5`

	cmd, err := r.pool.Exec(ctx, query,
		inquiry.Title,
		inquiry.Content,
		inquiry.Status,
		inquiry.Response,
		inquiry.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inquiryRepository) GetByID(ctx context.Context, id int64) (*domain.Inquiry, error) {
	const query = `
        SELECT id, user_id, property_id, title, content, status, response, created_at, updated_at
        FROM inquiries WHERE id=$1`
	var inquiry domain.Inquiry
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&inquiry.ID,
		&inquiry.UserID,
		&inquiry.PropertyID,
		&inquiry.Title,
		&inquiry.Content,
		&inquiry.Status,
		&inquiry.Response,
		&inquiry.CreatedAt,
		&inquiry.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &inquiry, nil
}

func (r *inquiryRepository) ListWithDetails(ctx context.Context) ([]domain.InquiryListing, error) {
	const query = `
        SELECT i.id, i.user_id, i.property_id, i.title, i.content, i.status, i.response,
               i.created_at, i.updated_at, u.name, p.name
        FROM inquiries i
        JOIN users u ON u.id = i.user_id
        JOIN properties p ON p.id = i.property_id
        ORDER BY i.id`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.InquiryListing
	for rows.Next() {
		var listing domain.InquiryListing
		if err := rows.Scan(
			&listing.ID,
			&listing.UserID,
			&listing.PropertyID,
			&listing.Title,
			&listing.Content,
			&listing.Status,
			&listing.Response,
			&listing.CreatedAt,
			&listing.UpdatedAt,
			&listing.SenderName,
			&listing.PropertyName,
		); err != nil {
			return nil, err
		}
		result = append(result, listing)
	}
	return result, rows.Err()
}

func (r *inquiryRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM inquiries WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *inquiryRepository) CountByProperty(ctx context.Context, propertyID int64) (int64, error) {
	const query = `SELECT COUNT(*) FROM inquiries WHERE property_id=$1`
	var count int64
	if err := r.pool.QueryRow(ctx, query, propertyID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}
