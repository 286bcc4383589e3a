package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/shesaidimnothing/filrouge-api/internal/models"
)

type AdRepository struct {
	db DBTX
}

func NewAdRepository(db DBTX) *AdRepository {
	return &AdRepository{db: db}
}

const adWithOwnerColumns = `
	a.id, a.title, a.description, a.price, a.category, a.user_id,
	a.image_url, a.created_at, a.updated_at,
	u.id, u.name, u.email
`

func (r *AdRepository) Create(ctx context.Context, ad *models.Ad) error {
	query := `
		INSERT INTO ads (title, description, price, category, user_id, image_url)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.db.QueryRow(
		ctx,
		query,
		ad.Title,
		ad.Description,
		ad.Price,
		ad.Category,
		ad.UserID,
		ad.ImageURL,
	).Scan(&ad.ID, &ad.CreatedAt, &ad.UpdatedAt)
}

func (r *AdRepository) GetByID(ctx context.Context, id int64) (*models.Ad, error) {
	query := `
		SELECT ` + adWithOwnerColumns + `
		FROM ads a
		JOIN users u ON u.id = a.user_id
		WHERE a.id = $1
	`
	var ad models.Ad
	var owner models.UserSummary
	err := r.db.QueryRow(ctx, query, id).Scan(
		&ad.ID,
		&ad.Title,
		&ad.Description,
		&ad.Price,
		&ad.Category,
		&ad.UserID,
		&ad.ImageURL,
		&ad.CreatedAt,
		&ad.UpdatedAt,
		&owner.ID,
		&owner.Name,
		&owner.Email,
	)
	if err != nil {
		return nil, err
	}
	ad.User = &owner
	return &ad, nil
}

func (r *AdRepository) List(ctx context.Context) ([]models.Ad, error) {
	query := `
		SELECT ` + adWithOwnerColumns + `
		FROM ads a
		JOIN users u ON u.id = a.user_id
		ORDER BY a.created_at DESC, a.id DESC
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAds(rows)
}

func (r *AdRepository) ListByUser(ctx context.Context, userID int64) ([]models.Ad, error) {
	query := `
		SELECT ` + adWithOwnerColumns + `
		FROM ads a
		JOIN users u ON u.id = a.user_id
		WHERE a.user_id = $1
		ORDER BY a.created_at DESC, a.id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanAds(rows)
}

// Update persists the final field values; the handler resolves partial
// bodies against the existing row before calling.
func (r *AdRepository) Update(ctx context.Context, ad *models.Ad) error {
	query := `
		UPDATE ads
		SET title = $2, description = $3, price = $4, category = $5,
		    image_url = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	return r.db.QueryRow(
		ctx,
		query,
		ad.ID,
		ad.Title,
		ad.Description,
		ad.Price,
		ad.Category,
		ad.ImageURL,
	).Scan(&ad.UpdatedAt)
}

func (r *AdRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM ads WHERE id = $1`, id)
	return err
}

func (r *AdRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM ads`)
	return err
}

func scanAds(rows pgx.Rows) ([]models.Ad, error) {
	ads := make([]models.Ad, 0)
	for rows.Next() {
		var ad models.Ad
		var owner models.UserSummary
		if err := rows.Scan(
			&ad.ID,
			&ad.Title,
			&ad.Description,
			&ad.Price,
			&ad.Category,
			&ad.UserID,
			&ad.ImageURL,
			&ad.CreatedAt,
			&ad.UpdatedAt,
			&owner.ID,
			&owner.Name,
			&owner.Email,
		); err != nil {
			return nil, err
		}
		ad.User = &owner
		ads = append(ads, ad)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return ads, nil
}
