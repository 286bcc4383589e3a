package handlers

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/shesaidimnothing/filrouge-api/internal/models"
)

type responseStore interface {
	Create(ctx context.Context, response *models.AdResponse) error
	GetByID(ctx context.Context, id int64) (*models.AdResponse, error)
	ListByAd(ctx context.Context, adID int64) ([]models.AdResponse, error)
	ListByUser(ctx context.Context, userID int64) ([]models.AdResponse, error)
	Delete(ctx context.Context, id int64) error
}

type adReader interface {
	GetByID(ctx context.Context, id int64) (*models.Ad, error)
}

type responseUserReader interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

type ResponseHandler struct {
	responseRepo responseStore
	adRepo       adReader
	userRepo     responseUserReader
}

func NewResponseHandler(responseRepo responseStore, adRepo adReader, userRepo responseUserReader) *ResponseHandler {
	return &ResponseHandler{
		responseRepo: responseRepo,
		adRepo:       adRepo,
		userRepo:     userRepo,
	}
}

type createResponseRequest struct {
	Message string `json:"message"`
	UserID  int64  `json:"userId"`
	AdID    int64  `json:"adId"`
}

func (h *ResponseHandler) ListByAd(c *fiber.Ctx) error {
	adID, err := parseIDParam(c, "adId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ad id"})
	}

	responses, err := h.responseRepo.ListByAd(c.Context(), adID)
	if err != nil {
		log.Printf("list responses for ad %d failed: %v", adID, err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch responses"})
	}

	return c.JSON(responses)
}

func (h *ResponseHandler) ListByUser(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user id"})
	}

	responses, err := h.responseRepo.ListByUser(c.Context(), userID)
	if err != nil {
		log.Printf("list responses for user %d failed: %v", userID, err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch responses"})
	}

	return c.JSON(responses)
}

func (h *ResponseHandler) Get(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid response id"})
	}

	response, err := h.responseRepo.GetByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Response not found"})
		}
		log.Printf("fetch response %d failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch response"})
	}

	return c.JSON(response)
}

func (h *ResponseHandler) Create(c *fiber.Ctx) error {
	var req createResponseRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	if req.Message == "" || req.UserID <= 0 || req.AdID <= 0 {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"error": "All required fields must be provided"})
	}

	if _, err := h.adRepo.GetByID(c.Context(), req.AdID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Ad not found"})
		}
		log.Printf("fetch ad %d failed: %v", req.AdID, err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create response"})
	}

	user, err := h.userRepo.GetByID(c.Context(), req.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
		}
		log.Printf("fetch user %d failed: %v", req.UserID, err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create response"})
	}

	response := &models.AdResponse{
		Message: req.Message,
		UserID:  req.UserID,
		AdID:    req.AdID,
	}
	if err := h.responseRepo.Create(c.Context(), response); err != nil {
		log.Printf("create response failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to create response"})
	}

	author := user.Summary()
	response.User = &author

	return c.Status(fiber.StatusCreated).JSON(response)
}

func (h *ResponseHandler) Delete(c *fiber.Ctx) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid response id"})
	}

	if _, err := h.responseRepo.GetByID(c.Context(), id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Response not found"})
		}
		log.Printf("fetch response %d failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to fetch response"})
	}

	if err := h.responseRepo.Delete(c.Context(), id); err != nil {
		log.Printf("delete response %d failed: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).
			JSON(fiber.Map{"error": "Failed to delete response"})
	}

	return c.JSON(fiber.Map{"message": "Response deleted successfully"})
}
