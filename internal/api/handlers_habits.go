package api

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitfeed/internal/metrics"
	"github.com/terraincognita07/habitfeed/internal/services"
)

func (handler *Handler) ShowAddHabitPage(c *fiber.Ctx) error {
	return handler.renderAddHabitPage(c, fiber.StatusOK, habitForm{}, "")
}

func (handler *Handler) AddHabit(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	form := habitForm{}
	if err := c.BodyParser(&form); err != nil {
		return handler.renderAddHabitPage(c, fiber.StatusBadRequest, form, "habit.error.invalid")
	}

	_, err := handler.habitService.CreateHabit(user.ID, services.HabitInput{
		Type:      form.HabitName,
		Period:    form.Duration,
		AboutLink: form.AboutHabit,
	})
	if err != nil {
		status, key, ok := formError(err)
		if !ok {
			return handler.internalError(c, err)
		}
		return handler.renderAddHabitPage(c, status, form, key)
	}

	metrics.RecordEvent(metrics.EventHabitCreated)
	return c.Redirect("/office", fiber.StatusSeeOther)
}

func (handler *Handler) ShowRepostHabitPage(c *fiber.Ctx) error {
	habitID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.NotFound(c)
	}
	habit, err := handler.habitService.FindHabit(habitID)
	if err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			return handler.NotFound(c)
		}
		return handler.internalError(c, err)
	}

	return handler.render(c, "repost_habit", fiber.Map{
		"Title": localizedPageTitle(currentMessages(c), "meta.title.repost_habit", "Repost a habit"),
		"Habit": habit,
	})
}

// RepostHabit subscribes the current user; a repeated repost leaves the counter unchanged.
func (handler *Handler) RepostHabit(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	habitID, ok := parseIDParam(c, "id")
	if !ok {
		return handler.NotFound(c)
	}

	subscribed, err := handler.habitService.Repost(user.ID, habitID)
	if err != nil {
		if errors.Is(err, services.ErrHabitNotFound) {
			return handler.NotFound(c)
		}
		return handler.internalError(c, err)
	}
	if subscribed {
		metrics.RecordEvent(metrics.EventHabitRepost)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (handler *Handler) renderAddHabitPage(c *fiber.Ctx, status int, form habitForm, errorKey string) error {
	c.Status(status)
	return handler.render(c, "add_habit", fiber.Map{
		"Title":    localizedPageTitle(currentMessages(c), "meta.title.add_habit", "Add a habit"),
		"Form":     form,
		"ErrorKey": errorKey,
	})
}
