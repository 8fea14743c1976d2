package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/service"
	"github.com/gatherly/gatherly-backend/pkg/utils"
)

type UserHandler struct {
	userService   *service.UserService
	reviewService *service.ReviewService
	validator     *utils.Validator
}

func NewUserHandler(userService *service.UserService, reviewService *service.ReviewService, validator *utils.Validator) *UserHandler {
	return &UserHandler{
		userService:   userService,
		reviewService: reviewService,
		validator:     validator,
	}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	return c.JSON(models.SuccessResponse(currentUser(c), ""))
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	user, err := h.userService.GetProfile(userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(user, ""))
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var req models.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	user, err := h.userService.UpdateProfile(currentUser(c).ID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(user, "Profile updated successfully"))
}

func (h *UserHandler) UpdateFCMToken(c *fiber.Ctx) error {
	var req models.UpdateFCMTokenRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.userService.UpdateFCMToken(currentUser(c).ID, req.FCMToken); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Device token updated"))
}

// GetUserReviews lists the reviews a user received (default) or wrote
// (?type=given).
func (h *UserHandler) GetUserReviews(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	received := c.Query("type", "received") != "given"
	page, limit := parsePagination(c)

	reviews, pagination, err := h.reviewService.GetUserReviews(userID, received, page, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"reviews":    reviews,
		"pagination": pagination,
	}, ""))
}
