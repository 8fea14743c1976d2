package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/repository"
	"github.com/gatherly/gatherly-backend/internal/service"
	"github.com/gatherly/gatherly-backend/pkg/utils"
)

type AdminHandler struct {
	adminService *service.AdminService
	validator    *utils.Validator
}

func NewAdminHandler(adminService *service.AdminService, validator *utils.Validator) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
		validator:    validator,
	}
}

func (h *AdminHandler) GetDashboard(c *fiber.Ctx) error {
	stats, err := h.adminService.GetDashboardStats()
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(stats, ""))
}

func (h *AdminHandler) GetUsers(c *fiber.Ctx) error {
	filter := repository.UserSearchFilter{
		Search: c.Query("search"),
		Role:   models.UserRole(c.Query("role")),
	}
	if raw := c.Query("is_active"); raw != "" {
		active := raw == "true"
		filter.IsActive = &active
	}

	page, limit := parsePagination(c)
	users, pagination, err := h.adminService.GetUsers(filter, page, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"users":      users,
		"pagination": pagination,
	}, ""))
}

func (h *AdminHandler) UpdateUserStatus(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	var req service.UpdateUserStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	user, err := h.adminService.UpdateUserStatus(userID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(user, "User updated"))
}

func (h *AdminHandler) GetEvents(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	events, pagination, err := h.adminService.GetEvents(
		c.Query("search"),
		models.EventStatus(c.Query("status")),
		page, limit,
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"events":     events,
		"pagination": pagination,
	}, ""))
}

func (h *AdminHandler) DeleteEvent(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.adminService.DeleteEvent(eventID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Event deleted"))
}
