package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ShowHome(c *fiber.Ctx) error {
	page, err := handler.feedService.Home()
	if err != nil {
		return handler.internalError(c, err)
	}

	return handler.render(c, "index", fiber.Map{
		"Title":     localizedPageTitle(currentMessages(c), "meta.title.home", "Home"),
		"TopHabits": buildHabitViews(page.Habits),
		"TopNews":   handler.buildNewsViews(c, page.News),
	})
}

func (handler *Handler) ShowFeed(c *fiber.Ctx) error {
	cards, err := handler.feedService.Feed()
	if err != nil {
		return handler.internalError(c, err)
	}

	return handler.render(c, "news", fiber.Map{
		"Title":   localizedPageTitle(currentMessages(c), "meta.title.news", "Feed"),
		"TopNews": handler.buildNewsViews(c, cards),
	})
}

func (handler *Handler) ShowInfo(c *fiber.Ctx) error {
	return handler.render(c, "about", fiber.Map{
		"Title": localizedPageTitle(currentMessages(c), "meta.title.info", "About"),
	})
}
