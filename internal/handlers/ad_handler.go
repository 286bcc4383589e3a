package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/shesaidimnothing/filrouge-api/internal/models"
)

type adStore interface {
	Create(ctx context.Context, ad *models.Ad) error
	GetByID(ctx context.Context, id int64) (*models.Ad, error)
	List(ctx context.Context) ([]models.Ad, error)
	ListByUser(ctx context.Context, userID int64) ([]models.Ad, error)
	Update(ctx context.Context, ad *models.Ad) error
}

type adResponseLister interface {
	ListByAd(ctx context.Context, adID int64) ([]models.AdResponse, error)
}

type adRemover interface {
	Delete(ctx context.Context, adID int64) error
	DeleteAll(ctx context.Context) error
}

type AdHandler struct {
	adRepo       adStore
	responseRepo adResponseLister
	service      adRemover
}

func NewAdHandler(adRepo adStore, responseRepo adResponseLister, service adRemover) *AdHandler {
	return &AdHandler{
		adRepo:       adRepo,
		responseRepo: responseRepo,
		service:      service,
	}
}

type createAdRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	UserID      int64   `json:"userId"`
	ImageURL    *string `json:"imageUrl"`
}

type updateAdRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Category    *string  `json:"category"`
	ImageURL    *string  `json:"imageUrl"`
}

func (h *AdHandler) List(c *fiber.Ctx) error {
	ads, err := h.adRepo.List(c.Context())
	if err != nil {
		log.Printf("list ads failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch ads"})
	}

	return c.JSON(ads)
}

func (h *AdHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	ads, err := h.adRepo.ListByUser(c.Context(), userID)
	if err != nil {
		log.Printf("list ads for user %d failed: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch ads"})
	}

	return c.JSON(ads)
}

func (h *AdHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ad id"})
	}

	ad, err := h.adRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Ad not found"})
		}
		log.Printf("fetch ad %d failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch ad"})
	}

	responses, err := h.responseRepo.ListByAd(c.Context(), id)
	if err != nil {
		log.Printf("fetch responses for ad %d failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch ad"})
	}
	ad.Responses = responses

	return c.JSON(ad)
}

func (h *AdHandler) Create(c *fiber.Ctx) error {
	var req createAdRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Title == "" || req.Description == "" || req.Category == "" ||
		req.Price <= 0 || req.UserID <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "All required fields must be provided"})
	}

	ad := &models.Ad{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		UserID:      req.UserID,
		ImageURL:    req.ImageURL,
	}
	if err := h.adRepo.Create(c.Context(), ad); err != nil {
		log.Printf("create ad failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create ad"})
	}

	return c.Status(fiber.StatusCreated).JSON(ad)
}

func (h *AdHandler) Update(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ad id"})
	}

	var req updateAdRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	ad, err := h.adRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Ad not found"})
		}
		log.Printf("fetch ad %d failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch ad"})
	}

	// Absent fields keep their stored values.
	if req.Title != nil {
		ad.Title = *req.Title
	}
	if req.Description != nil {
		ad.Description = *req.Description
	}
	if req.Price != nil {
		ad.Price = *req.Price
	}
	if req.Category != nil {
		ad.Category = *req.Category
	}
	if req.ImageURL != nil {
		ad.ImageURL = req.ImageURL
	}

	if err := h.adRepo.Update(c.Context(), ad); err != nil {
		log.Printf("update ad %d failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to update ad"})
	}

	return c.JSON(ad)
}

func (h *AdHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ad id"})
	}

	if err := h.service.Delete(c.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Ad not found"})
		}
		log.Printf("delete ad %d failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to delete ad"})
	}

	return c.JSON(fiber.Map{"message": "Ad deleted successfully"})
}

func (h *AdHandler) DeleteAll(c *fiber.Ctx) error {
	if err := h.service.DeleteAll(c.Context()); err != nil {
		log.Printf("delete all ads failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to delete ads"})
	}

	return c.JSON(fiber.Map{"message": "All ads deleted successfully"})
}
