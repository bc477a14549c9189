package models

import "time"

type Habit struct {
	ID        uint      `gorm:"primaryKey"`
	CreatorID uint      `gorm:"not null;index"`
	Type      string    `gorm:"not null"`
	Period    string    `gorm:"not null"`
	AboutLink string    `gorm:"not null;default:''"`
	Count     int       `gorm:"not null;default:0"`
	Reposts   int       `gorm:"not null;default:0;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (Habit) TableName() string {
	return "habits"
}

// UserHabit links a subscriber to a habit. The creator of a habit is subscribed on creation.
type UserHabit struct {
	UserID    uint      `gorm:"primaryKey"`
	HabitID   uint      `gorm:"primaryKey;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (UserHabit) TableName() string {
	return "user_habits"
}

type HabitEntry struct {
	ID              uint      `gorm:"column:id"`
	CreatorID       uint      `gorm:"column:creator_id"`
	Type            string    `gorm:"column:type"`
	Period          string    `gorm:"column:period"`
	AboutLink       string    `gorm:"column:about_link"`
	Count           int       `gorm:"column:count"`
	Reposts         int       `gorm:"column:reposts"`
	CreatedAt       time.Time `gorm:"column:created_at"`
	CreatorNickname string    `gorm:"column:creator_nickname"`
}
