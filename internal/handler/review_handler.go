package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/service"
	"github.com/gatherly/gatherly-backend/pkg/utils"
)

type ReviewHandler struct {
	reviewService *service.ReviewService
	validator     *utils.Validator
}

func NewReviewHandler(reviewService *service.ReviewService, validator *utils.Validator) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		validator:     validator,
	}
}

func (h *ReviewHandler) CreateReview(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	var req models.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	review, err := h.reviewService.CreateReview(currentUser(c), eventID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(review, "Review submitted"))
}

func (h *ReviewHandler) GetEventReviews(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	page, limit := parsePagination(c)
	reviews, pagination, err := h.reviewService.GetEventReviews(eventID, page, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"reviews":    reviews,
		"pagination": pagination,
	}, ""))
}
