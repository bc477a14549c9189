package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/terraincognita07/habitfeed/internal/models"
	"gorm.io/gorm"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrHabitInvalid  = errors.New("habit invalid")
	ErrForbidden     = errors.New("forbidden")
)

type HabitRepository interface {
	CreateWithSubscription(habit *models.Habit) error
	FindByID(habitID uint) (models.Habit, error)
	List() ([]models.Habit, error)
	Repost(userID uint, habitID uint, now time.Time) (bool, error)
	UpdateByID(habitID uint, updates map[string]any) error
	Delete(habitID uint) error
}

type HabitInput struct {
	Type      string
	Period    string
	AboutLink string
}

// HabitPatch carries optional updates; nil fields are left untouched.
type HabitPatch struct {
	Type      *string
	Period    *string
	AboutLink *string
	Count     *int
}

type HabitService struct {
	habits HabitRepository
}

func NewHabitService(habits HabitRepository) *HabitService {
	return &HabitService{habits: habits}
}

// CreateHabit stores a fresh habit (count and reposts zero) and subscribes its creator.
func (service *HabitService) CreateHabit(creatorID uint, input HabitInput) (models.Habit, error) {
	habitType := strings.TrimSpace(input.Type)
	period := strings.TrimSpace(input.Period)
	if habitType == "" || period == "" {
		return models.Habit{}, ErrHabitInvalid
	}

	habit := models.Habit{
		CreatorID: creatorID,
		Type:      habitType,
		Period:    period,
		AboutLink: strings.TrimSpace(input.AboutLink),
		CreatedAt: nowUTC(),
	}
	if err := service.habits.CreateWithSubscription(&habit); err != nil {
		return models.Habit{}, fmt.Errorf("create habit: %w", err)
	}
	return habit, nil
}

// Repost subscribes the user to the habit. It returns false when the user was already subscribed.
func (service *HabitService) Repost(userID uint, habitID uint) (bool, error) {
	subscribed, err := service.habits.Repost(userID, habitID, nowUTC())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrHabitNotFound
		}
		return false, fmt.Errorf("repost habit: %w", err)
	}
	return subscribed, nil
}

func (service *HabitService) FindHabit(habitID uint) (models.Habit, error) {
	habit, err := service.habits.FindByID(habitID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Habit{}, ErrHabitNotFound
		}
		return models.Habit{}, err
	}
	return habit, nil
}

func (service *HabitService) ListHabits() ([]models.Habit, error) {
	return service.habits.List()
}

func (service *HabitService) UpdateHabit(actorID uint, habitID uint, patch HabitPatch) error {
	habit, err := service.FindHabit(habitID)
	if err != nil {
		return err
	}
	if habit.CreatorID != actorID {
		return ErrForbidden
	}

	updates := map[string]any{}
	if patch.Type != nil {
		value := strings.TrimSpace(*patch.Type)
		if value == "" {
			return ErrHabitInvalid
		}
		updates["type"] = value
	}
	if patch.Period != nil {
		value := strings.TrimSpace(*patch.Period)
		if value == "" {
			return ErrHabitInvalid
		}
		updates["period"] = value
	}
	if patch.AboutLink != nil {
		updates["about_link"] = strings.TrimSpace(*patch.AboutLink)
	}
	if patch.Count != nil {
		if *patch.Count < 0 {
			return ErrHabitInvalid
		}
		updates["count"] = *patch.Count
	}
	if len(updates) == 0 {
		return nil
	}
	return service.habits.UpdateByID(habitID, updates)
}

func (service *HabitService) DeleteHabit(actorID uint, habitID uint) error {
	habit, err := service.FindHabit(habitID)
	if err != nil {
		return err
	}
	if habit.CreatorID != actorID {
		return ErrForbidden
	}
	return service.habits.Delete(habitID)
}
