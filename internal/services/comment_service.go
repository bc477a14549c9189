package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/terraincognita07/habitfeed/internal/models"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound = errors.New("comment not found")
	ErrCommentInvalid  = errors.New("comment invalid")
)

type CommentRepository interface {
	CreateForNews(comment *models.Comment, newsID uint) error
	FindByID(commentID uint) (models.Comment, error)
	List() ([]models.Comment, error)
	NewsIDFor(commentID uint) (uint, error)
	NewsIDsForComments(commentIDs []uint) (map[uint]uint, error)
	UpdateByID(commentID uint, updates map[string]any) error
	Delete(commentID uint) error
}

type CommentService struct {
	comments CommentRepository
}

func NewCommentService(comments CommentRepository) *CommentService {
	return &CommentService{comments: comments}
}

// AddComment stores the comment and attaches it to the news item in one transaction.
func (service *CommentService) AddComment(userID uint, newsID uint, content string) (models.Comment, error) {
	cleanContent := strings.TrimSpace(content)
	if cleanContent == "" {
		return models.Comment{}, ErrCommentInvalid
	}

	comment := models.Comment{
		UserID:      userID,
		Content:     cleanContent,
		CreatedDate: nowUTC(),
	}
	if err := service.comments.CreateForNews(&comment, newsID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Comment{}, ErrNewsNotFound
		}
		return models.Comment{}, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

func (service *CommentService) FindComment(commentID uint) (models.Comment, error) {
	comment, err := service.comments.FindByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Comment{}, ErrCommentNotFound
		}
		return models.Comment{}, err
	}
	return comment, nil
}

func (service *CommentService) ListComments() ([]models.Comment, error) {
	return service.comments.List()
}

func (service *CommentService) NewsIDFor(commentID uint) (uint, error) {
	return service.comments.NewsIDFor(commentID)
}

func (service *CommentService) NewsIDsForComments(commentIDs []uint) (map[uint]uint, error) {
	return service.comments.NewsIDsForComments(commentIDs)
}

func (service *CommentService) UpdateComment(actorID uint, commentID uint, content string) error {
	comment, err := service.FindComment(commentID)
	if err != nil {
		return err
	}
	if comment.UserID != actorID {
		return ErrForbidden
	}

	cleanContent := strings.TrimSpace(content)
	if cleanContent == "" {
		return ErrCommentInvalid
	}
	return service.comments.UpdateByID(commentID, map[string]any{"content": cleanContent})
}

func (service *CommentService) DeleteComment(actorID uint, commentID uint) error {
	comment, err := service.FindComment(commentID)
	if err != nil {
		return err
	}
	if comment.UserID != actorID {
		return ErrForbidden
	}
	return service.comments.Delete(commentID)
}
