package api

import (
	"github.com/terraincognita07/habitfeed/internal/db"
	"github.com/terraincognita07/habitfeed/internal/services"
	"gorm.io/gorm"
)

func (handler *Handler) withDependencies(database *gorm.DB) *Handler {
	handler.repositories = db.NewRepositories(database)
	handler.authService = services.NewAuthService(handler.repositories.Users)
	handler.habitService = services.NewHabitService(handler.repositories.Habits)
	handler.newsService = services.NewNewsService(handler.repositories.News)
	handler.commentService = services.NewCommentService(handler.repositories.Comments)
	handler.profileService = services.NewProfileService(handler.repositories.Users, handler.photos)
	handler.feedService = services.NewFeedService(handler.repositories.Habits, handler.repositories.News, handler.repositories.Comments)
	return handler
}
