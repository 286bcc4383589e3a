package repository

import (
	"context"

	"github.com/shesaidimnothing/filrouge-api/internal/models"
)

type ResponseRepository struct {
	db DBTX
}

func NewResponseRepository(db DBTX) *ResponseRepository {
	return &ResponseRepository{db: db}
}

func (r *ResponseRepository) Create(ctx context.Context, response *models.AdResponse) error {
	query := `
		INSERT INTO responses (message, user_id, ad_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, response.Message, response.UserID, response.AdID).
		Scan(&response.ID, &response.CreatedAt)
}

func (r *ResponseRepository) GetByID(ctx context.Context, id int64) (*models.AdResponse, error) {
	query := `
		SELECT
			res.id, res.message, res.user_id, res.ad_id, res.created_at,
			u.id, u.name, u.email,
			a.id, a.title, a.description, a.price, a.category, a.user_id,
			a.image_url, a.created_at, a.updated_at
		FROM responses res
		JOIN users u ON u.id = res.user_id
		JOIN ads a ON a.id = res.ad_id
		WHERE res.id = $1
	`
	var response models.AdResponse
	var author models.UserSummary
	var ad models.Ad
	err := r.db.QueryRow(ctx, query, id).Scan(
		&response.ID,
		&response.Message,
		&response.UserID,
		&response.AdID,
		&response.CreatedAt,
		&author.ID,
		&author.Name,
		&author.Email,
		&ad.ID,
		&ad.Title,
		&ad.Description,
		&ad.Price,
		&ad.Category,
		&ad.UserID,
		&ad.ImageURL,
		&ad.CreatedAt,
		&ad.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	response.User = &author
	response.Ad = &ad
	return &response, nil
}

func (r *ResponseRepository) ListByAd(ctx context.Context, adID int64) ([]models.AdResponse, error) {
	query := `
		SELECT
			res.id, res.message, res.user_id, res.ad_id, res.created_at,
			u.id, u.name, u.email
		FROM responses res
		JOIN users u ON u.id = res.user_id
		WHERE res.ad_id = $1
		ORDER BY res.created_at DESC, res.id DESC
	`
	rows, err := r.db.Query(ctx, query, adID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]models.AdResponse, 0)
	for rows.Next() {
		var response models.AdResponse
		var author models.UserSummary
		if err := rows.Scan(
			&response.ID,
			&response.Message,
			&response.UserID,
			&response.AdID,
			&response.CreatedAt,
			&author.ID,
			&author.Name,
			&author.Email,
		); err != nil {
			return nil, err
		}
		response.User = &author
		responses = append(responses, response)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

func (r *ResponseRepository) ListByUser(ctx context.Context, userID int64) ([]models.AdResponse, error) {
	query := `
		SELECT
			res.id, res.message, res.user_id, res.ad_id, res.created_at,
			a.id, a.title, a.description, a.price, a.category, a.user_id,
			a.image_url, a.created_at, a.updated_at
		FROM responses res
		JOIN ads a ON a.id = res.ad_id
		WHERE res.user_id = $1
		ORDER BY res.created_at DESC, res.id DESC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	responses := make([]models.AdResponse, 0)
	for rows.Next() {
		var response models.AdResponse
		var ad models.Ad
		if err := rows.Scan(
			&response.ID,
			&response.Message,
			&response.UserID,
			&response.AdID,
			&response.CreatedAt,
			&ad.ID,
			&ad.Title,
			&ad.Description,
			&ad.Price,
			&ad.Category,
			&ad.UserID,
			&ad.ImageURL,
			&ad.CreatedAt,
			&ad.UpdatedAt,
		); err != nil {
			return nil, err
		}
		response.Ad = &ad
		responses = append(responses, response)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return responses, nil
}

func (r *ResponseRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM responses WHERE id = $1`, id)
	return err
}

func (r *ResponseRepository) DeleteByAd(ctx context.Context, adID int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM responses WHERE ad_id = $1`, adID)
	return err
}

func (r *ResponseRepository) DeleteAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `DELETE FROM responses`)
	return err
}
