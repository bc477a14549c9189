package db

import (
	"github.com/terraincognita07/habitfeed/internal/models"
	"gorm.io/gorm"
)

type CommentRepository struct {
	database *gorm.DB
}

func NewCommentRepository(database *gorm.DB) *CommentRepository {
	return &CommentRepository{database: database}
}

// CreateForNews stores the comment and links it to the news item in one transaction.
// It returns gorm.ErrRecordNotFound when the news item does not exist.
func (repo *CommentRepository) CreateForNews(comment *models.Comment, newsID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.News{}, newsID).Error; err != nil {
			return err
		}
		if err := tx.Create(comment).Error; err != nil {
			return err
		}
		return tx.Create(&models.NewsComment{NewsID: newsID, CommentID: comment.ID}).Error
	})
}

func (repo *CommentRepository) FindByID(commentID uint) (models.Comment, error) {
	var comment models.Comment
	if err := repo.database.First(&comment, commentID).Error; err != nil {
		return models.Comment{}, err
	}
	return comment, nil
}

func (repo *CommentRepository) List() ([]models.Comment, error) {
	comments := make([]models.Comment, 0)
	if err := repo.database.Order("id ASC").Find(&comments).Error; err != nil {
		return nil, err
	}
	return comments, nil
}

// NewsIDFor returns the news item a comment belongs to, or zero for an unlinked comment.
func (repo *CommentRepository) NewsIDFor(commentID uint) (uint, error) {
	ids := make([]uint, 0, 1)
	if err := repo.database.Model(&models.NewsComment{}).
		Where("comment_id = ?", commentID).
		Limit(1).
		Pluck("news_id", &ids).Error; err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}
	return ids[0], nil
}

// NewsIDsForComments maps each linked comment id to its news id.
func (repo *CommentRepository) NewsIDsForComments(commentIDs []uint) (map[uint]uint, error) {
	result := make(map[uint]uint, len(commentIDs))
	if len(commentIDs) == 0 {
		return result, nil
	}
	links := make([]models.NewsComment, 0, len(commentIDs))
	if err := repo.database.Where("comment_id IN ?", commentIDs).Find(&links).Error; err != nil {
		return nil, err
	}
	for _, link := range links {
		result[link.CommentID] = link.NewsID
	}
	return result, nil
}

// ListEntriesForNews loads the comments of several news items with author nicknames,
// oldest first.
func (repo *CommentRepository) ListEntriesForNews(newsIDs []uint) ([]models.CommentEntry, error) {
	entries := make([]models.CommentEntry, 0)
	if len(newsIDs) == 0 {
		return entries, nil
	}
	if err := repo.database.Table("comments").
		Select("comments.id, news_comments.news_id, comments.user_id, comments.content, comments.created_date, "+
			"users.nickname AS author_nickname").
		Joins("JOIN news_comments ON news_comments.comment_id = comments.id").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("news_comments.news_id IN ?", newsIDs).
		Order("comments.created_date ASC, comments.id ASC").
		Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (repo *CommentRepository) UpdateByID(commentID uint, updates map[string]any) error {
	return repo.database.Model(&models.Comment{}).Where("id = ?", commentID).Updates(updates).Error
}

func (repo *CommentRepository) Delete(commentID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", commentID).Delete(&models.NewsComment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Comment{}, commentID).Error
	})
}
