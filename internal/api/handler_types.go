package api

import (
	"html/template"
	"time"

	"github.com/terraincognita07/habitfeed/internal/db"
	"github.com/terraincognita07/habitfeed/internal/i18n"
	"github.com/terraincognita07/habitfeed/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	i18n         *i18n.Manager
	templates    map[string]*template.Template
	logger       *zap.Logger
	photos       services.PhotoStore

	repositories   *db.Repositories
	authService    *services.AuthService
	habitService   *services.HabitService
	newsService    *services.NewsService
	commentService *services.CommentService
	profileService *services.ProfileService
	feedService    *services.FeedService
}

type credentialsInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type registerInput struct {
	Email         string `json:"email" form:"email"`
	Password      string `json:"password" form:"password"`
	PasswordAgain string `json:"password_again" form:"password_again"`
	Name          string `json:"name" form:"name"`
	Nickname      string `json:"nickname" form:"nickname"`
	About         string `json:"about" form:"about"`
}

type habitForm struct {
	HabitName  string `form:"habit_name"`
	Duration   string `form:"duration"`
	AboutHabit string `form:"about_habit"`
}

type newsForm struct {
	NewsName    string `form:"news_name"`
	NewsContent string `form:"news_content"`
}

type commentForm struct {
	Content string `form:"content"`
}

type officeForm struct {
	Name     string `form:"name"`
	Surname  string `form:"surname"`
	Age      string `form:"age"`
	Status   string `form:"status"`
	Email    string `form:"email"`
	CityFrom string `form:"city_from"`
}

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
)
