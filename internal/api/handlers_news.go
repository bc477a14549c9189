package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitfeed/internal/metrics"
	"github.com/terraincognita07/habitfeed/internal/models"
	"github.com/terraincognita07/habitfeed/internal/services"
)

func (handler *Handler) ShowAddNewsPage(c *fiber.Ctx) error {
	return handler.renderAddNewsPage(c, fiber.StatusOK, newsForm{}, "")
}

func (handler *Handler) AddNews(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	form := newsForm{}
	if err := c.BodyParser(&form); err != nil {
		return handler.renderAddNewsPage(c, fiber.StatusBadRequest, form, "news.error.invalid")
	}

	if _, err := handler.newsService.CreateNews(user.ID, form.NewsName, form.NewsContent); err != nil {
		status, key, ok := formError(err)
		if !ok {
			return handler.internalError(c, err)
		}
		return handler.renderAddNewsPage(c, status, form, key)
	}

	metrics.RecordEvent(metrics.EventNewsCreated)
	return c.Redirect("/office", fiber.StatusSeeOther)
}

func (handler *Handler) ShowAddCommentPage(c *fiber.Ctx) error {
	news, found, err := handler.newsFromParam(c)
	if err != nil {
		return handler.internalError(c, err)
	}
	if !found {
		return handler.NotFound(c)
	}
	return handler.renderAddCommentPage(c, fiber.StatusOK, news, commentForm{}, "")
}

func (handler *Handler) AddComment(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	news, found, err := handler.newsFromParam(c)
	if err != nil {
		return handler.internalError(c, err)
	}
	if !found {
		return handler.NotFound(c)
	}

	form := commentForm{}
	if err := c.BodyParser(&form); err != nil {
		return handler.renderAddCommentPage(c, fiber.StatusBadRequest, news, form, "comment.error.invalid")
	}

	if _, err := handler.commentService.AddComment(user.ID, news.ID, form.Content); err != nil {
		if errors.Is(err, services.ErrNewsNotFound) {
			return handler.NotFound(c)
		}
		status, key, ok := formError(err)
		if !ok {
			return handler.internalError(c, err)
		}
		return handler.renderAddCommentPage(c, status, news, form, key)
	}

	metrics.RecordEvent(metrics.EventComment)
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (handler *Handler) newsFromParam(c *fiber.Ctx) (models.News, bool, error) {
	newsID, ok := parseIDParam(c, "id")
	if !ok {
		return models.News{}, false, nil
	}
	news, err := handler.newsService.FindNews(newsID)
	if err != nil {
		if errors.Is(err, services.ErrNewsNotFound) {
			return models.News{}, false, nil
		}
		return models.News{}, false, err
	}
	return news, true, nil
}

func (handler *Handler) renderAddNewsPage(c *fiber.Ctx, status int, form newsForm, errorKey string) error {
	c.Status(status)
	return handler.render(c, "add_news", fiber.Map{
		"Title":    localizedPageTitle(currentMessages(c), "meta.title.add_news", "Add news"),
		"Form":     form,
		"ErrorKey": errorKey,
	})
}

func (handler *Handler) renderAddCommentPage(c *fiber.Ctx, status int, news models.News, form commentForm, errorKey string) error {
	c.Status(status)
	return handler.render(c, "add_com", fiber.Map{
		"Title":    localizedPageTitle(currentMessages(c), "meta.title.add_comment", "Add a comment"),
		"News":     news,
		"Form":     form,
		"ErrorKey": errorKey,
	})
}
