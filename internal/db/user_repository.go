package db

import (
	"time"

	"github.com/terraincognita07/habitfeed/internal/models"
	"gorm.io/gorm"
)

type UserRepository struct {
	database *gorm.DB
}

func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{database: database}
}

func (repo *UserRepository) FindByID(userID uint) (models.User, error) {
	var user models.User
	if err := repo.database.First(&user, userID).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) FindByNormalizedEmail(email string) (models.User, error) {
	var user models.User
	if err := repo.database.Where("lower(trim(email)) = ?", email).First(&user).Error; err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (repo *UserRepository) ExistsByNormalizedEmail(email string) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ?", email).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) EmailTakenByOther(email string, userID uint) (bool, error) {
	var matched int64
	if err := repo.database.Model(&models.User{}).
		Where("lower(trim(email)) = ? AND id <> ?", email, userID).
		Count(&matched).Error; err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (repo *UserRepository) List() ([]models.User, error) {
	users := make([]models.User, 0)
	if err := repo.database.Order("id ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (repo *UserRepository) Create(user *models.User) error {
	return repo.database.Create(user).Error
}

func (repo *UserRepository) Save(user *models.User) error {
	return repo.database.Save(user).Error
}

func (repo *UserRepository) UpdateByID(userID uint, updates map[string]any) error {
	if _, ok := updates["modified_date"]; !ok {
		updates["modified_date"] = time.Now().UTC()
	}
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Updates(updates).Error
}

func (repo *UserRepository) UpdatePasswordHash(userID uint, passwordHash string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash).Error
}

func (repo *UserRepository) UpdatePhotoPath(userID uint, photoPath string) error {
	return repo.database.Model(&models.User{}).Where("id = ?", userID).Update("photo_path", photoPath).Error
}

// HabitIDs returns the habits a user subscribes to, in subscription order.
func (repo *UserRepository) HabitIDs(userID uint) ([]uint, error) {
	ids := make([]uint, 0)
	if err := repo.database.Model(&models.UserHabit{}).
		Where("user_id = ?", userID).
		Order("created_at ASC, habit_id ASC").
		Pluck("habit_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (repo *UserRepository) DeleteAccountAndRelatedData(userID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&models.User{}, userID).Error; err != nil {
			return err
		}

		ownNews := tx.Model(&models.News{}).Select("id").Where("user_id = ?", userID)
		ownComments := tx.Model(&models.Comment{}).Select("id").Where("user_id = ?", userID)
		ownHabits := tx.Model(&models.Habit{}).Select("id").Where("creator_id = ?", userID)

		var commentsOnOwnNews []uint
		if err := tx.Model(&models.NewsComment{}).Where("news_id IN (?)", ownNews).Pluck("comment_id", &commentsOnOwnNews).Error; err != nil {
			return err
		}

		if err := tx.Where("news_id IN (?) OR comment_id IN (?)", ownNews, ownComments).Delete(&models.NewsComment{}).Error; err != nil {
			return err
		}
		if len(commentsOnOwnNews) > 0 {
			if err := tx.Where("id IN ?", commentsOnOwnNews).Delete(&models.Comment{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.News{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR habit_id IN (?)", userID, ownHabits).Delete(&models.UserHabit{}).Error; err != nil {
			return err
		}
		if err := tx.Where("creator_id = ?", userID).Delete(&models.Habit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.User{}, userID).Error
	})
}

// HabitIDsForUsers groups subscriptions per user in subscription order.
func (repo *UserRepository) HabitIDsForUsers(userIDs []uint) (map[uint][]uint, error) {
	result := make(map[uint][]uint, len(userIDs))
	if len(userIDs) == 0 {
		return result, nil
	}

	var rows []models.UserHabit
	if err := repo.database.
		Where("user_id IN ?", userIDs).
		Order("created_at ASC, habit_id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.UserID] = append(result[row.UserID], row.HabitID)
	}
	return result, nil
}
