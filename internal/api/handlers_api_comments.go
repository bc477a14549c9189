package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitfeed/internal/metrics"
)

func (handler *Handler) ListCommentsAPI(c *fiber.Ctx) error {
	comments, err := handler.commentService.ListComments()
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	commentIDs := make([]uint, 0, len(comments))
	for _, comment := range comments {
		commentIDs = append(commentIDs, comment.ID)
	}
	newsIDs, err := handler.commentService.NewsIDsForComments(commentIDs)
	if err != nil {
		return handler.apiServiceError(c, err)
	}

	payload := make([]commentJSON, 0, len(comments))
	for _, comment := range comments {
		payload = append(payload, serializeComment(comment, newsIDs[comment.ID]))
	}
	return c.JSON(fiber.Map{"comments": payload})
}

func (handler *Handler) GetCommentAPI(c *fiber.Ctx) error {
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	comment, err := handler.commentService.FindComment(commentID)
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	newsID, err := handler.commentService.NewsIDFor(commentID)
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	return c.JSON(fiber.Map{"comment": serializeComment(comment, newsID)})
}

func (handler *Handler) CreateCommentAPI(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	input := commentCreateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.NewsID == 0 {
		return apiError(c, fiber.StatusBadRequest, "news_id is required")
	}

	comment, err := handler.commentService.AddComment(user.ID, input.NewsID, input.Content)
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	metrics.RecordEvent(metrics.EventComment)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": comment.ID})
}

func (handler *Handler) UpdateCommentAPI(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	input := commentPatchInput{}
	if err := c.BodyParser(&input); err != nil || input.Content == nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.commentService.UpdateComment(user.ID, commentID, *input.Content); err != nil {
		return handler.apiServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": "OK"})
}

func (handler *Handler) DeleteCommentAPI(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	commentID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	if err := handler.commentService.DeleteComment(user.ID, commentID); err != nil {
		return handler.apiServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": "OK"})
}
