package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/talenthub/jobboard-be/internal/api/domain"
	"github.com/talenthub/jobboard-be/internal/api/model"
)

const mediaColumns = `
	id, company_id, media_type, title, description, url, is_featured,
	position, created_at, updated_at
`

func (s *Storage) GetMedia(ctx context.Context, id int64) (*model.CompanyMedia, error) {
	var media model.CompanyMedia
	query := `SELECT` + mediaColumns + `FROM company_media WHERE id = $1`

	err := s.db.GetContext(ctx, &media, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrMediaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get media item: %w", err)
	}

	return &media, nil
}

func (s *Storage) ListMedia(ctx context.Context, companyID int64, mediaType string) ([]model.CompanyMedia, error) {
	where := " WHERE company_id = $1"
	args := []interface{}{companyID}

	if mediaType != "" {
		where += " AND media_type = $2"
		args = append(args, mediaType)
	}

	query := `SELECT` + mediaColumns + `FROM company_media` + where + ` ORDER BY position ASC, id ASC`

	var items []model.CompanyMedia
	if err := s.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to list media items: %w", err)
	}

	return items, nil
}

func (s *Storage) CreateMedia(ctx context.Context, media *model.CompanyMedia) error {
	query := `
		INSERT INTO company_media (
			company_id, media_type, title, description, url, is_featured, position
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowxContext(
		ctx,
		query,
		media.CompanyID,
		media.MediaType,
		media.Title,
		media.Description,
		media.URL,
		media.IsFeatured,
		media.Position,
	).Scan(&media.ID, &media.CreatedAt, &media.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create media item: %w", err)
	}

	return nil
}

func (s *Storage) UpdateMedia(ctx context.Context, media *model.CompanyMedia) error {
	query := `
		UPDATE company_media
		SET media_type = $1, title = $2, description = $3, url = $4,
		    is_featured = $5, position = $6, updated_at = NOW()
		WHERE id = $7
		RETURNING updated_at
	`

	err := s.db.QueryRowxContext(
		ctx,
		query,
		media.MediaType,
		media.Title,
		media.Description,
		media.URL,
		media.IsFeatured,
		media.Position,
		media.ID,
	).Scan(&media.UpdatedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.ErrMediaNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update media item: %w", err)
	}

	return nil
}

func (s *Storage) DeleteMedia(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM company_media WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete media item: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrMediaNotFound
	}

	return nil
}
