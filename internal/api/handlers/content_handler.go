package handlers

import (
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"

	"github.com/brandsync/api/internal/queue"
	"github.com/brandsync/api/internal/service"
	"github.com/brandsync/api/internal/transfer"
)

type ContentHandler struct {
	cs          service.ContentService
	as          service.AssignmentService
	AsynqClient *asynq.Client
}

func NewContentHandler(cs service.ContentService, as service.AssignmentService, asynqClient *asynq.Client) *ContentHandler {
	return &ContentHandler{
		cs:          cs,
		as:          as,
		AsynqClient: asynqClient,
	}
}

func (h *ContentHandler) CreatePost(c *fiber.Ctx) error {
	rc := GetRequestContext(c)

	pc := transfer.PostCreation{
		Title:         c.FormValue("title"),
		Description:   c.FormValue("description"),
		Platforms:     splitCSV(c.FormValue("platforms")),
		ScheduledTime: c.FormValue("scheduled_time"),
		IsEvergreen:   c.FormValue("is_evergreen") == "true",
		Tags:          splitCSV(c.FormValue("tags")),
		Category:      c.FormValue("category"),
	}

	file, err := c.FormFile("file")
	if err != nil {
		// Media is optional; a missing part is not an error.
		file = nil
	}

	postID, err := h.cs.CreatePost(c.Context(), rc, &pc, file)
	if err != nil {
		return ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"id": postID,
	})
}

func (h *ContentHandler) ListPosts(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	postID := c.QueryInt("id", 0)

	if postID != 0 {
		post, err := h.cs.PostInfo(c.Context(), rc, int64(postID))
		if err != nil {
			return ErrorResponse(c, err)
		}
		return c.Status(fiber.StatusOK).JSON(post)
	}

	posts, err := h.cs.List(c.Context(), rc)
	if err != nil {
		return ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(posts)
}

func (h *ContentHandler) UpdatePost(c *fiber.Ctx) error {
	rc := GetRequestContext(c)

	var pu transfer.PostUpdate
	if err := c.BodyParser(&pu); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}

	if err := h.cs.Update(c.Context(), rc, &pu); err != nil {
		return ErrorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

func (h *ContentHandler) RemovePost(c *fiber.Ctx) error {
	rc := GetRequestContext(c)
	postID := c.QueryInt("id", 0)

	if err := h.cs.Remove(c.Context(), rc, int64(postID)); err != nil {
		return ErrorResponse(c, err)
	}

	return c.SendStatus(fiber.StatusOK)
}

// ScheduleEvergreen creates one assignment batch and enqueues a publish task
// per assignment, delayed until the batch's scheduled time.
func (h *ContentHandler) ScheduleEvergreen(c *fiber.Ctx) error {
	rc := GetRequestContext(c)

	var req transfer.EvergreenSchedule
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "unable to parse request body",
		})
	}

	result, err := h.as.ScheduleEvergreen(c.Context(), rc, &req)
	if err != nil {
		return ErrorResponse(c, err)
	}

	delay := time.Until(result.ScheduledTime)
	for _, id := range result.AssignmentIDs {
		if err := queue.EnqueueAssignment(h.AsynqClient, queue.PublishAssignmentPayload{AssignmentID: id}, delay); err != nil {
			slog.Info(err.Error(), "assignment_id", id)
		}
	}

	return c.Status(fiber.StatusOK).JSON(result.Summary)
}

func (h *ContentHandler) ListAssignments(c *fiber.Ctx) error {
	rc := GetRequestContext(c)

	assignments, err := h.as.ListByBrand(c.Context(), rc)
	if err != nil {
		return ErrorResponse(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(assignments)
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
