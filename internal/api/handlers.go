package api

import (
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"time"

	"github.com/terraincognita07/habitfeed/internal/i18n"
	"github.com/terraincognita07/habitfeed/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var pageTemplates = []string{
	"index",
	"login",
	"register",
	"about",
	"add_habit",
	"repost_habit",
	"add_com",
	"add_news",
	"office",
	"news",
	"not_found",
}

func NewHandler(database *gorm.DB, secret string, templateFiles fs.FS, location *time.Location, i18nManager *i18n.Manager, cookieSecure bool) (*Handler, error) {
	if location == nil {
		location = time.Local
	}
	if i18nManager == nil {
		return nil, errors.New("i18n manager is required")
	}
	if templateFiles == nil {
		return nil, errors.New("templates are required")
	}

	funcMap := newTemplateFuncMap()
	templates := make(map[string]*template.Template, len(pageTemplates))
	for _, page := range pageTemplates {
		parsed, err := template.New("base").Funcs(funcMap).ParseFS(templateFiles, "base.html", page+".html")
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = parsed
	}

	handler := &Handler{
		db:           database,
		secretKey:    []byte(secret),
		location:     location,
		cookieSecure: cookieSecure,
		i18n:         i18nManager,
		templates:    templates,
		logger:       zap.NewNop(),
	}
	return handler.withDependencies(database), nil
}

// WithLogger replaces the no-op logger used for internal errors.
func (handler *Handler) WithLogger(logger *zap.Logger) *Handler {
	if logger != nil {
		handler.logger = logger
	}
	return handler
}

// WithPhotoStore sets where office photo uploads are written.
func (handler *Handler) WithPhotoStore(store services.PhotoStore) *Handler {
	handler.photos = store
	handler.profileService = services.NewProfileService(handler.repositories.Users, store)
	return handler
}
