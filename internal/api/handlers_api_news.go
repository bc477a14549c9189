package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitfeed/internal/metrics"
	"github.com/terraincognita07/habitfeed/internal/services"
)

func (handler *Handler) ListNewsAPI(c *fiber.Ctx) error {
	items, err := handler.newsService.ListNews()
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	newsIDs := make([]uint, 0, len(items))
	for _, item := range items {
		newsIDs = append(newsIDs, item.ID)
	}
	commentIDs, err := handler.newsService.CommentIDsForNews(newsIDs)
	if err != nil {
		return handler.apiServiceError(c, err)
	}

	payload := make([]newsJSON, 0, len(items))
	for _, item := range items {
		payload = append(payload, serializeNews(item, commentIDs[item.ID]))
	}
	return c.JSON(fiber.Map{"news": payload})
}

func (handler *Handler) GetNewsAPI(c *fiber.Ctx) error {
	newsID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	item, err := handler.newsService.FindNews(newsID)
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	commentIDs, err := handler.newsService.CommentIDs(newsID)
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	return c.JSON(fiber.Map{"news": serializeNews(item, commentIDs)})
}

func (handler *Handler) CreateNewsAPI(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	input := newsCreateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	item, err := handler.newsService.CreateNews(user.ID, input.Title, input.Content)
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	metrics.RecordEvent(metrics.EventNewsCreated)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": item.ID})
}

func (handler *Handler) UpdateNewsAPI(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	newsID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	input := newsPatchInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	err := handler.newsService.UpdateNews(user.ID, newsID, services.NewsPatch{Title: input.Title, Content: input.Content})
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": "OK"})
}

func (handler *Handler) DeleteNewsAPI(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	newsID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	if err := handler.newsService.DeleteNews(user.ID, newsID); err != nil {
		return handler.apiServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": "OK"})
}
