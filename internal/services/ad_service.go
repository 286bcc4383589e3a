package services

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shesaidimnothing/filrouge-api/internal/repository"
)

// AdService owns the ad mutations that touch more than one table: deleting
// an ad drops its responses first, inside one transaction.
type AdService struct {
	db           *pgxpool.Pool
	adRepo       *repository.AdRepository
	responseRepo *repository.ResponseRepository
}

func NewAdService(
	db *pgxpool.Pool,
	adRepo *repository.AdRepository,
	responseRepo *repository.ResponseRepository,
) *AdService {
	return &AdService{
		db:           db,
		adRepo:       adRepo,
		responseRepo: responseRepo,
	}
}

func (s *AdService) Delete(ctx context.Context, adID int64) error {
	if adID <= 0 {
		return ErrInvalidInput
	}

	// Existence check first so a missing ad surfaces as pgx.ErrNoRows
	// instead of a silent no-op delete.
	if _, err := s.adRepo.GetByID(ctx, adID); err != nil {
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txResponseRepo := repository.NewResponseRepository(tx)
	txAdRepo := repository.NewAdRepository(tx)

	if err := txResponseRepo.DeleteByAd(ctx, adID); err != nil {
		return err
	}
	if err := txAdRepo.Delete(ctx, adID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *AdService) DeleteAll(ctx context.Context) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	txResponseRepo := repository.NewResponseRepository(tx)
	txAdRepo := repository.NewAdRepository(tx)

	if err := txResponseRepo.DeleteAll(ctx); err != nil {
		return err
	}
	if err := txAdRepo.DeleteAll(ctx); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
