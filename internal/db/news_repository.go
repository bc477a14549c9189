package db

import (
	"github.com/terraincognita07/habitfeed/internal/models"
	"gorm.io/gorm"
)

type NewsRepository struct {
	database *gorm.DB
}

func NewNewsRepository(database *gorm.DB) *NewsRepository {
	return &NewsRepository{database: database}
}

func (repo *NewsRepository) Create(news *models.News) error {
	return repo.database.Create(news).Error
}

func (repo *NewsRepository) FindByID(newsID uint) (models.News, error) {
	var news models.News
	if err := repo.database.First(&news, newsID).Error; err != nil {
		return models.News{}, err
	}
	return news, nil
}

func (repo *NewsRepository) List() ([]models.News, error) {
	items := make([]models.News, 0)
	if err := repo.database.Order("id ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// ListEntries loads news together with the author nickname and photo in one query.
// A zero authorID lists every author; a non-positive limit lists everything.
func (repo *NewsRepository) ListEntries(authorID uint, newestFirst bool, limit int) ([]models.NewsEntry, error) {
	entries := make([]models.NewsEntry, 0)
	statement := repo.database.Table("news").
		Select("news.id, news.user_id, news.title, news.content, news.created_date, " +
			"users.nickname AS author_nickname, users.photo_path AS author_photo_path").
		Joins("JOIN users ON users.id = news.user_id")
	if authorID != 0 {
		statement = statement.Where("news.user_id = ?", authorID)
	}
	if newestFirst {
		statement = statement.Order("news.created_date DESC, news.id DESC")
	} else {
		statement = statement.Order("news.created_date ASC, news.id ASC")
	}
	if limit > 0 {
		statement = statement.Limit(limit)
	}
	if err := statement.Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// CommentIDs returns the ids of comments attached to a news item in creation order.
func (repo *NewsRepository) CommentIDs(newsID uint) ([]uint, error) {
	ids := make([]uint, 0)
	if err := repo.database.Table("news_comments").
		Joins("JOIN comments ON comments.id = news_comments.comment_id").
		Where("news_comments.news_id = ?", newsID).
		Order("comments.created_date ASC, comments.id ASC").
		Pluck("news_comments.comment_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (repo *NewsRepository) UpdateByID(newsID uint, updates map[string]any) error {
	return repo.database.Model(&models.News{}).Where("id = ?", newsID).Updates(updates).Error
}

// Delete removes the news item together with the comments attached to it.
func (repo *NewsRepository) Delete(newsID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		var commentIDs []uint
		if err := tx.Model(&models.NewsComment{}).Where("news_id = ?", newsID).Pluck("comment_id", &commentIDs).Error; err != nil {
			return err
		}
		if err := tx.Where("news_id = ?", newsID).Delete(&models.NewsComment{}).Error; err != nil {
			return err
		}
		if len(commentIDs) > 0 {
			if err := tx.Where("id IN ?", commentIDs).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.News{}, newsID).Error
	})
}

// CommentIDsForNews groups comment ids per news item, oldest comment first.
func (repo *NewsRepository) CommentIDsForNews(newsIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint, len(newsIDs))
	if len(newsIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		NewsID    uint `gorm:"column:news_id"`
		CommentID uint `gorm:"column:comment_id"`
	}
	if err := repo.database.Table("news_comments").
		Select("news_comments.news_id, news_comments.comment_id").
		Joins("JOIN comments ON comments.id = news_comments.comment_id").
		Where("news_comments.news_id IN ?", newsIDs).
		Order("comments.created_date ASC, comments.id ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.NewsID] = append(result[row.NewsID], row.CommentID)
	}
	return result, nil
}
