package api

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitfeed/internal/models"
)

func newTemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"t":             templateTranslate,
		"tf":            templateTranslatef,
		"photo":         templateUserPhoto,
		"isActiveRoute": isActiveTemplateRoute,
		"card":          templateNewsCard,
	}
}

func templateTranslate(messages map[string]string, key string) string {
	return translateMessage(messages, key)
}

func templateTranslatef(messages map[string]string, key string, args ...any) string {
	return fmt.Sprintf(translateMessage(messages, key), args...)
}

func templateUserPhoto(user *models.User) string {
	if user == nil {
		return models.DefaultPhotoPath
	}
	return user.Photo()
}

// templateNewsCard bundles what the shared news_card block needs from the page.
func templateNewsCard(messages map[string]string, user *models.User, item newsView) map[string]any {
	return map[string]any{"Messages": messages, "CurrentUser": user, "News": item}
}

func isActiveTemplateRoute(currentPath string, route string) bool {
	path := strings.TrimSpace(currentPath)
	if route == "/" {
		return path == "/" || path == ""
	}
	return path == route || strings.HasPrefix(path, route+"/")
}

func (handler *Handler) withTemplateDefaults(c *fiber.Ctx, data fiber.Map) fiber.Map {
	payload := fiber.Map{}
	for key, value := range data {
		payload[key] = value
	}

	if _, ok := payload["CurrentUser"]; !ok {
		if user, ok := currentUser(c); ok {
			payload["CurrentUser"] = user
		} else {
			payload["CurrentUser"] = (*models.User)(nil)
		}
	}
	payload["Messages"] = currentMessages(c)
	payload["Lang"] = currentLanguage(c)
	payload["Languages"] = handler.i18n.SupportedLanguages()
	payload["CSRFToken"] = csrfToken(c)
	payload["CurrentPath"] = c.Path()
	if _, ok := payload["Title"]; !ok {
		payload["Title"] = translateMessage(currentMessages(c), "app.name")
	}
	return payload
}
