package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/service"
)

const (
	defaultPageSize = 10
	maxPageSize     = 50
)

// currentUser returns the authenticated account loaded by the auth
// middleware. Routes using it must be registered behind that middleware.
func currentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return uint(id), nil
}

func parsePagination(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", defaultPageSize)
	if limit < 1 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return page, limit
}

// errorDetailKey marks whether respondError may expose internal error text.
const errorDetailKey = "exposeErrorDetail"

// ErrorVisibility controls the body of unexpected 500 responses: outside
// production the raw error message is returned to ease debugging, in
// production clients only ever see a generic message.
func ErrorVisibility(expose bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(errorDetailKey, expose)
		return c.Next()
	}
}

// respondError translates service sentinels into HTTP responses. Conflict
// conditions (duplicate attendance, full event, duplicate review) come back
// as 400 with their specific message; unknown errors collapse to a 500.
func respondError(c *fiber.Ctx, err error) error {
	var status int

	switch {
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrEventNotFound),
		errors.Is(err, service.ErrMessageNotFound),
		errors.Is(err, service.ErrNotificationNotFound),
		errors.Is(err, service.ErrNotAttending):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrInvalidCredentials):
		status = fiber.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden),
		errors.Is(err, service.ErrMustBeAttending):
		status = fiber.StatusForbidden
	case errors.Is(err, service.ErrEmailExists),
		errors.Is(err, service.ErrAlreadyAttending),
		errors.Is(err, service.ErrEventFull),
		errors.Is(err, service.ErrDuplicateReview),
		errors.Is(err, service.ErrEventNotJoinable),
		errors.Is(err, service.ErrAttendanceNotPending),
		errors.Is(err, service.ErrEventNotCompleted):
		status = fiber.StatusBadRequest
	default:
		message := "Internal server error"
		if expose, _ := c.Locals(errorDetailKey).(bool); expose {
			message = err.Error()
		}
		return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse(message))
	}

	return c.Status(status).JSON(models.ErrorResponse(err.Error()))
}
