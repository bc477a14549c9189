package db

import (
	"time"

	"github.com/terraincognita07/habitfeed/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type HabitRepository struct {
	database *gorm.DB
}

func NewHabitRepository(database *gorm.DB) *HabitRepository {
	return &HabitRepository{database: database}
}

const habitEntryColumns = "habits.id, habits.creator_id, habits.type, habits.period, habits.about_link, " +
	"habits.count, habits.reposts, habits.created_at, users.nickname AS creator_nickname"

// CreateWithSubscription stores the habit and subscribes its creator in one transaction.
func (repo *HabitRepository) CreateWithSubscription(habit *models.Habit) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(habit).Error; err != nil {
			return err
		}
		return tx.Create(&models.UserHabit{
			UserID:    habit.CreatorID,
			HabitID:   habit.ID,
			CreatedAt: habit.CreatedAt,
		}).Error
	})
}

func (repo *HabitRepository) FindByID(habitID uint) (models.Habit, error) {
	var habit models.Habit
	if err := repo.database.First(&habit, habitID).Error; err != nil {
		return models.Habit{}, err
	}
	return habit, nil
}

func (repo *HabitRepository) List() ([]models.Habit, error) {
	habits := make([]models.Habit, 0)
	if err := repo.database.Order("id ASC").Find(&habits).Error; err != nil {
		return nil, err
	}
	return habits, nil
}

// TopByReposts returns the most reposted habits with the creator nickname resolved.
func (repo *HabitRepository) TopByReposts(limit int) ([]models.HabitEntry, error) {
	entries := make([]models.HabitEntry, 0)
	query := repo.database.Table("habits").
		Select(habitEntryColumns).
		Joins("JOIN users ON users.id = habits.creator_id").
		Order("habits.reposts DESC, habits.id ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// ListSubscribed returns a user's habits in subscription order.
func (repo *HabitRepository) ListSubscribed(userID uint) ([]models.HabitEntry, error) {
	entries := make([]models.HabitEntry, 0)
	if err := repo.database.Table("habits").
		Select(habitEntryColumns).
		Joins("JOIN user_habits ON user_habits.habit_id = habits.id AND user_habits.user_id = ?", userID).
		Joins("JOIN users ON users.id = habits.creator_id").
		Order("user_habits.created_at ASC, habits.id ASC").
		Scan(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Repost subscribes the user and bumps the repost counter. It reports false without touching
// the counter when the user already follows the habit.
func (repo *HabitRepository) Repost(userID uint, habitID uint, now time.Time) (bool, error) {
	subscribed := false
	err := repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Select("id").First(&models.Habit{}, habitID).Error; err != nil {
			return err
		}

		result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.UserHabit{
			UserID:    userID,
			HabitID:   habitID,
			CreatedAt: now,
		})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		subscribed = true
		return tx.Model(&models.Habit{}).
			Where("id = ?", habitID).
			UpdateColumn("reposts", gorm.Expr("reposts + ?", 1)).Error
	})
	if err != nil {
		return false, err
	}
	return subscribed, nil
}

func (repo *HabitRepository) UpdateByID(habitID uint, updates map[string]any) error {
	return repo.database.Model(&models.Habit{}).Where("id = ?", habitID).Updates(updates).Error
}

func (repo *HabitRepository) Delete(habitID uint) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("habit_id = ?", habitID).Delete(&models.UserHabit{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Habit{}, habitID).Error
	})
}
