package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitfeed/internal/services"
)

func translateMessage(messages map[string]string, key string) string {
	if key == "" {
		return ""
	}
	if messages != nil {
		if value, ok := messages[key]; ok && strings.TrimSpace(value) != "" {
			return value
		}
	}
	return key
}

// formError maps a service validation error to its HTTP status and message key.
// ok is false for errors that are not user-correctable.
func formError(err error) (status int, key string, ok bool) {
	switch {
	case errors.Is(err, services.ErrPasswordMismatch):
		return fiber.StatusBadRequest, "auth.error.password_mismatch", true
	case errors.Is(err, services.ErrAuthCredentialsInvalid):
		return fiber.StatusBadRequest, "auth.error.invalid_input", true
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, "auth.error.invalid_credentials", true
	case errors.Is(err, services.ErrEmailExists):
		return fiber.StatusConflict, "auth.error.email_exists", true
	case errors.Is(err, services.ErrHabitInvalid):
		return fiber.StatusBadRequest, "habit.error.invalid", true
	case errors.Is(err, services.ErrNewsInvalid):
		return fiber.StatusBadRequest, "news.error.invalid", true
	case errors.Is(err, services.ErrCommentInvalid):
		return fiber.StatusBadRequest, "comment.error.invalid", true
	case errors.Is(err, services.ErrProfileInvalid):
		return fiber.StatusBadRequest, "profile.error.invalid", true
	case errors.Is(err, services.ErrPhotoInvalid):
		return fiber.StatusBadRequest, "profile.error.photo_invalid", true
	case errors.Is(err, services.ErrPhotoTooLarge):
		return fiber.StatusRequestEntityTooLarge, "profile.error.photo_too_large", true
	default:
		return 0, "", false
	}
}

// apiErrorStatus maps service errors to JSON API responses.
func apiErrorStatus(err error) (int, string, bool) {
	switch {
	case errors.Is(err, services.ErrUserNotFound),
		errors.Is(err, services.ErrHabitNotFound),
		errors.Is(err, services.ErrNewsNotFound),
		errors.Is(err, services.ErrCommentNotFound):
		return fiber.StatusNotFound, "not found", true
	case errors.Is(err, services.ErrForbidden):
		return fiber.StatusForbidden, "forbidden", true
	case errors.Is(err, services.ErrEmailExists):
		return fiber.StatusConflict, "email already exists", true
	case errors.Is(err, services.ErrPasswordMismatch):
		return fiber.StatusBadRequest, "password mismatch", true
	}
	if status, _, ok := formError(err); ok {
		return status, "invalid input", true
	}
	return 0, "", false
}
