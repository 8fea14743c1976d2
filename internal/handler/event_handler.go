package handler

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gatherly/gatherly-backend/internal/models"
	"github.com/gatherly/gatherly-backend/internal/service"
	"github.com/gatherly/gatherly-backend/pkg/utils"
)

type EventHandler struct {
	eventService     *service.EventService
	admissionService *service.AdmissionService
	validator        *utils.Validator
}

func NewEventHandler(
	eventService *service.EventService,
	admissionService *service.AdmissionService,
	validator *utils.Validator,
) *EventHandler {
	return &EventHandler{
		eventService:     eventService,
		admissionService: admissionService,
		validator:        validator,
	}
}

func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	var req models.CreateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	event, err := h.eventService.CreateEvent(currentUser(c).ID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(models.SuccessResponse(event, "Event created successfully"))
}

func (h *EventHandler) GetEvent(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	event, err := h.eventService.GetEvent(eventID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(event, ""))
}

func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	filter := models.EventFilter{
		Location: c.Query("location"),
		Status:   models.EventStatus(c.Query("status")),
	}
	if tags := c.Query("tags"); tags != "" {
		filter.Tags = strings.Split(tags, ",")
	}
	if raw := c.Query("start_date"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.StartDate = &t
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if t, err := time.Parse(time.RFC3339, raw); err == nil {
			filter.EndDate = &t
		}
	}

	page, limit := parsePagination(c)
	events, pagination, err := h.eventService.ListEvents(filter, page, limit)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{
		"events":     events,
		"pagination": pagination,
	}, ""))
}

func (h *EventHandler) UpdateEvent(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	var req models.UpdateEventRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	event, err := h.eventService.UpdateEvent(currentUser(c), eventID, req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(event, "Event updated successfully"))
}

func (h *EventHandler) DeleteEvent(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.eventService.DeleteEvent(currentUser(c), eventID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Event deleted successfully"))
}

func (h *EventHandler) JoinEvent(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	status, err := h.admissionService.RequestJoin(currentUser(c), eventID)
	if err != nil {
		return respondError(c, err)
	}

	message := "Joined event successfully"
	if status == models.AttendancePending {
		message = "Join request submitted for approval"
	}

	return c.JSON(models.SuccessResponse(models.JoinEventResponse{Status: status}, message))
}

func (h *EventHandler) LeaveEvent(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.admissionService.Leave(currentUser(c).ID, eventID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Left event successfully"))
}

func (h *EventHandler) GetAttendees(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	attendees, err := h.admissionService.GetAttendees(eventID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(attendees, ""))
}

func (h *EventHandler) ApproveAttendee(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.admissionService.Approve(currentUser(c), eventID, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Attendance approved"))
}

func (h *EventHandler) RejectAttendee(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.admissionService.Reject(currentUser(c), eventID, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Attendance rejected"))
}

func (h *EventHandler) LikeEvent(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	if err := h.eventService.LikeEvent(eventID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(nil, "Event liked"))
}

func (h *EventHandler) UploadImage(c *fiber.Ctx) error {
	eventID, err := parseIDParam(c, "id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse(err.Error()))
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.ErrorResponse("Failed to read image file"))
	}
	defer file.Close()

	url, err := h.eventService.UploadEventImage(
		c.Context(),
		currentUser(c),
		eventID,
		fileHeader.Filename,
		file,
		fileHeader.Header.Get("Content-Type"),
	)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(models.SuccessResponse(fiber.Map{"url": url}, "Image uploaded successfully"))
}
