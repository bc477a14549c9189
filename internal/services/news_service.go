package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/habitfeed/internal/models"
	"gorm.io/gorm"
)

var (
	ErrNewsNotFound = errors.New("news not found")
	ErrNewsInvalid  = errors.New("news invalid")
)

type NewsRepository interface {
	Create(news *models.News) error
	FindByID(newsID uint) (models.News, error)
	List() ([]models.News, error)
	CommentIDs(newsID uint) ([]uint, error)
	CommentIDsForNews(newsIDs []uint) (map[uint][]uint, error)
	UpdateByID(newsID uint, updates map[string]any) error
	Delete(newsID uint) error
}

type NewsPatch struct {
	Title   *string
	Content *string
}

type NewsService struct {
	news NewsRepository
}

func NewNewsService(news NewsRepository) *NewsService {
	return &NewsService{news: news}
}

func (service *NewsService) CreateNews(userID uint, title string, content string) (models.News, error) {
	cleanTitle := strings.TrimSpace(title)
	if cleanTitle == "" {
		return models.News{}, ErrNewsInvalid
	}

	news := models.News{
		UserID:      userID,
		Title:       cleanTitle,
		Content:     strings.TrimSpace(content),
		CreatedDate: nowUTC(),
	}
	if err := service.news.Create(&news); err != nil {
		return models.News{}, fmt.Errorf("create news: %w", err)
	}
	return news, nil
}

func (service *NewsService) FindNews(newsID uint) (models.News, error) {
	news, err := service.news.FindByID(newsID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.News{}, ErrNewsNotFound
		}
		return models.News{}, err
	}
	return news, nil
}

func (service *NewsService) ListNews() ([]models.News, error) {
	return service.news.List()
}

func (service *NewsService) CommentIDs(newsID uint) ([]uint, error) {
	return service.news.CommentIDs(newsID)
}

func (service *NewsService) CommentIDsForNews(newsIDs []uint) (map[uint][]uint, error) {
	return service.news.CommentIDsForNews(newsIDs)
}

func (service *NewsService) UpdateNews(actorID uint, newsID uint, patch NewsPatch) error {
	news, err := service.FindNews(newsID)
	if err != nil {
		return err
	}
	if news.UserID != actorID {
		return ErrForbidden
	}

	updates := map[string]any{}
	if patch.Title != nil {
		title := strings.TrimSpace(*patch.Title)
		if title == "" {
			return ErrNewsInvalid
		}
		updates["title"] = title
	}
	if patch.Content != nil {
		updates["content"] = strings.TrimSpace(*patch.Content)
	}
	if len(updates) == 0 {
		return nil
	}
	return service.news.UpdateByID(newsID, updates)
}

func (service *NewsService) DeleteNews(actorID uint, newsID uint) error {
	news, err := service.FindNews(newsID)
	if err != nil {
		return err
	}
	if news.UserID != actorID {
		return ErrForbidden
	}
	return service.news.Delete(newsID)
}
