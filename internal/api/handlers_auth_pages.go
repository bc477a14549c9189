package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitfeed/internal/metrics"
	"github.com/terraincognita07/habitfeed/internal/services"
)

func (handler *Handler) ShowLoginPage(c *fiber.Ctx) error {
	return handler.renderLoginPage(c, fiber.StatusOK, "", "")
}

func (handler *Handler) ShowRegisterPage(c *fiber.Ctx) error {
	return handler.renderRegisterPage(c, fiber.StatusOK, registerInput{}, "")
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	input := credentialsInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.renderLoginPage(c, fiber.StatusBadRequest, "", "auth.error.invalid_input")
	}

	user, err := handler.authService.Authenticate(input.Email, input.Password)
	if err != nil {
		status, key, ok := formError(err)
		if !ok {
			return handler.internalError(c, err)
		}
		metrics.RecordEvent(metrics.EventLoginFailed)
		return handler.renderLoginPage(c, status, input.Email, key)
	}

	if err := handler.setAuthCookie(c, &user, input.RememberMe); err != nil {
		return handler.internalError(c, err)
	}
	metrics.RecordEvent(metrics.EventLogin)
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	input := registerInput{}
	if err := c.BodyParser(&input); err != nil {
		return handler.renderRegisterPage(c, fiber.StatusBadRequest, input, "auth.error.invalid_input")
	}

	if _, err := handler.authService.Register(toRegisterInput(input)); err != nil {
		status, key, ok := formError(err)
		if !ok {
			return handler.internalError(c, err)
		}
		return handler.renderRegisterPage(c, status, input, key)
	}

	metrics.RecordEvent(metrics.EventRegistration)
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	handler.clearAuthCookie(c)
	return c.Redirect("/", fiber.StatusSeeOther)
}

func (handler *Handler) renderLoginPage(c *fiber.Ctx, status int, email string, errorKey string) error {
	c.Status(status)
	return handler.render(c, "login", fiber.Map{
		"Title":    localizedPageTitle(currentMessages(c), "meta.title.login", "Sign in"),
		"Email":    email,
		"ErrorKey": errorKey,
	})
}

func (handler *Handler) renderRegisterPage(c *fiber.Ctx, status int, input registerInput, errorKey string) error {
	c.Status(status)
	return handler.render(c, "register", fiber.Map{
		"Title":    localizedPageTitle(currentMessages(c), "meta.title.register", "Sign up"),
		"Form":     input,
		"ErrorKey": errorKey,
	})
}

func toRegisterInput(input registerInput) services.RegisterInput {
	return services.RegisterInput{
		Email:         input.Email,
		Password:      input.Password,
		PasswordAgain: input.PasswordAgain,
		Name:          input.Name,
		Nickname:      input.Nickname,
		About:         input.About,
	}
}
