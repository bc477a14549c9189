package api

import (
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitfeed/internal/metrics"
	"github.com/terraincognita07/habitfeed/internal/models"
	"github.com/terraincognita07/habitfeed/internal/services"
)

func (handler *Handler) ShowOffice(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	return handler.renderOfficePage(c, fiber.StatusOK, user, "")
}

// UpdateOffice saves the profile form. An attached photo is stored before any column is
// written, so a rejected or failed upload leaves the profile untouched.
func (handler *Handler) UpdateOffice(c *fiber.Ctx) error {
	user, _ := currentUser(c)
	form := officeForm{}
	if err := c.BodyParser(&form); err != nil {
		return handler.renderOfficePage(c, fiber.StatusBadRequest, user, "profile.error.invalid")
	}

	patch, ok := officePatch(form)
	if !ok {
		return handler.renderOfficePage(c, fiber.StatusBadRequest, user, "profile.error.invalid")
	}

	filename, photo, err := readOfficePhoto(c)
	if err != nil {
		return handler.internalError(c, err)
	}
	if photo == nil {
		if err := handler.profileService.UpdateProfile(user.ID, patch); err != nil {
			return handler.officeFormError(c, user, err)
		}
		return c.Redirect("/office", fiber.StatusSeeOther)
	}

	if _, err := handler.profileService.UpdateProfileWithPhoto(c.UserContext(), user.ID, patch, filename, photo); err != nil {
		return handler.officeFormError(c, user, err)
	}
	metrics.RecordEvent(metrics.EventPhotoUpload)
	return c.Redirect("/office", fiber.StatusSeeOther)
}

func (handler *Handler) officeFormError(c *fiber.Ctx, user *models.User, err error) error {
	if errors.Is(err, services.ErrEmailExists) {
		return handler.renderOfficePage(c, fiber.StatusConflict, user, "profile.error.email_exists")
	}
	status, key, ok := formError(err)
	if !ok {
		return handler.internalError(c, err)
	}
	return handler.renderOfficePage(c, status, user, key)
}

func (handler *Handler) renderOfficePage(c *fiber.Ctx, status int, user *models.User, errorKey string) error {
	page, err := handler.feedService.Profile(user.ID)
	if err != nil {
		return handler.internalError(c, err)
	}

	c.Status(status)
	return handler.render(c, "office", fiber.Map{
		"Title":    localizedPageTitle(currentMessages(c), "meta.title.office", "Profile"),
		"Profile":  user,
		"Habits":   buildHabitViews(page.Habits),
		"News":     handler.buildNewsViews(c, page.News),
		"ErrorKey": errorKey,
	})
}

// officePatch keeps empty inputs out of the update, matching a form that only changes
// the fields the user filled in.
func officePatch(form officeForm) (services.ProfilePatch, bool) {
	patch := services.ProfilePatch{
		Name:     nonEmpty(form.Name),
		Surname:  nonEmpty(form.Surname),
		Status:   nonEmpty(form.Status),
		Email:    nonEmpty(form.Email),
		CityFrom: nonEmpty(form.CityFrom),
	}
	if age := strings.TrimSpace(form.Age); age != "" {
		value, err := strconv.Atoi(age)
		if err != nil {
			return services.ProfilePatch{}, false
		}
		patch.Age = &value
	}
	return patch, true
}

func nonEmpty(value string) *string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	return &value
}

func readOfficePhoto(c *fiber.Ctx) (string, []byte, error) {
	header, err := c.FormFile("file")
	if err != nil || header == nil || header.Size == 0 {
		return "", nil, nil
	}
	file, err := header.Open()
	if err != nil {
		return "", nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, services.MaxPhotoBytes+1))
	if err != nil {
		return "", nil, err
	}
	return header.Filename, data, nil
}
