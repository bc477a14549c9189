package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitfeed/internal/metrics"
	"github.com/terraincognita07/habitfeed/internal/services"
)

func (handler *Handler) ListUsersAPI(c *fiber.Ctx) error {
	users, err := handler.profileService.ListUsers()
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	userIDs := make([]uint, 0, len(users))
	for _, user := range users {
		userIDs = append(userIDs, user.ID)
	}
	habitIDs, err := handler.profileService.HabitIDsForUsers(userIDs)
	if err != nil {
		return handler.apiServiceError(c, err)
	}

	payload := make([]userJSON, 0, len(users))
	for _, user := range users {
		payload = append(payload, serializeUser(user, habitIDs[user.ID]))
	}
	return c.JSON(fiber.Map{"users": payload})
}

func (handler *Handler) GetUserAPI(c *fiber.Ctx) error {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	user, err := handler.profileService.FindUser(userID)
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	habitIDs, err := handler.profileService.HabitIDs(userID)
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	return c.JSON(fiber.Map{"user": serializeUser(user, habitIDs)})
}

// CreateUserAPI registers an account. An omitted confirmation counts as matching.
func (handler *Handler) CreateUserAPI(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if input.PasswordAgain == "" {
		input.PasswordAgain = input.Password
	}

	user, err := handler.authService.Register(toRegisterInput(input))
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	metrics.RecordEvent(metrics.EventRegistration)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": user.ID})
}

func (handler *Handler) UpdateUserAPI(c *fiber.Ctx) error {
	actor, _ := currentUser(c)
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	if _, err := handler.profileService.FindUser(userID); err != nil {
		return handler.apiServiceError(c, err)
	}
	if actor.ID != userID {
		return apiError(c, fiber.StatusForbidden, "forbidden")
	}

	input := userPatchInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	err := handler.profileService.UpdateProfile(userID, services.ProfilePatch{
		Name:     input.Name,
		Surname:  input.Surname,
		Nickname: input.Nickname,
		Age:      input.Age,
		Status:   input.Status,
		About:    input.About,
		Email:    input.Email,
		CityFrom: input.CityFrom,
	})
	if err != nil {
		return handler.apiServiceError(c, err)
	}
	return c.JSON(fiber.Map{"success": "OK"})
}

func (handler *Handler) DeleteUserAPI(c *fiber.Ctx) error {
	actor, _ := currentUser(c)
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	if _, err := handler.profileService.FindUser(userID); err != nil {
		return handler.apiServiceError(c, err)
	}
	if err := handler.profileService.DeleteAccount(actor.ID, userID); err != nil {
		return handler.apiServiceError(c, err)
	}
	handler.clearAuthCookie(c)
	return c.JSON(fiber.Map{"success": "OK"})
}

// apiServiceError answers with the mapped status or falls back to a logged 500.
func (handler *Handler) apiServiceError(c *fiber.Ctx, err error) error {
	if status, message, ok := apiErrorStatus(err); ok {
		return apiError(c, status, message)
	}
	return handler.internalError(c, err)
}

