package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitfeed/internal/metrics"
	"github.com/terraincognita07/habitfeed/internal/services"
)

func (handler *Handler) ListHabitsAPI(c *fiber.Ctx) error {
	habits, err := handler.habitService.ListHabits()
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	payload := make([]habitJSON, 0, len(habits))
	for _, habit := range habits {
		payload = append(payload, serializeHabit(habit))
	}
	return c.JSON(fiber.Map{"habits": payload})
}

func (handler *Handler) GetHabitAPI(c *fiber.Ctx) error {
	habitID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	habit, err := handler.habitService.FindHabit(habitID)
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	return c.JSON(fiber.Map{"habit": serializeHabit(habit)})
}

func (handler *Handler) CreateHabitAPI(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	input := habitCreateInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	habit, err := handler.habitService.CreateHabit(user.ID, services.HabitInput{
		Type:      input.Type,
		Period:    input.Period,
		AboutLink: input.AboutLink,
	})
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	metrics.RecordEvent(metrics.EventHabitCreated)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": habit.ID})
}

func (handler *Handler) UpdateHabitAPI(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	habitID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	input := habitPatchInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	err := handler.habitService.UpdateHabit(user.ID, habitID, services.HabitPatch{
		Type:      input.Type,
		Period:    input.Period,
		AboutLink: input.AboutLink,
		Count:     input.Count,
	})
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": "OK"})
}

func (handler *Handler) DeleteHabitAPI(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	habitID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	if err := handler.habitService.DeleteHabit(user.ID, habitID); err != nil {
		return handler.apiServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": "OK"})
}
