package models

import "time"

type News struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index"`
	Title       string    `gorm:"not null"`
	Content     string    `gorm:"not null;default:''"`
	CreatedDate time.Time `gorm:"not null;index"`
}

func (News) TableName() string {
	return "news"
}

type Comment struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"not null;index"`
	Content     string    `gorm:"not null"`
	CreatedDate time.Time `gorm:"not null"`
}

func (Comment) TableName() string {
	return "comments"
}

type NewsComment struct {
	NewsID    uint `gorm:"primaryKey"`
	CommentID uint `gorm:"primaryKey;uniqueIndex"`
}

func (NewsComment) TableName() string {
	return "news_comments"
}

type NewsEntry struct {
	ID              uint      `gorm:"column:id"`
	UserID          uint      `gorm:"column:user_id"`
	Title           string    `gorm:"column:title"`
	Content         string    `gorm:"column:content"`
	CreatedDate     time.Time `gorm:"column:created_date"`
	AuthorNickname  string    `gorm:"column:author_nickname"`
	AuthorPhotoPath string    `gorm:"column:author_photo_path"`
}

type CommentEntry struct {
	ID             uint      `gorm:"column:id"`
	NewsID         uint      `gorm:"column:news_id"`
	UserID         uint      `gorm:"column:user_id"`
	Content        string    `gorm:"column:content"`
	CreatedDate    time.Time `gorm:"column:created_date"`
	AuthorNickname string    `gorm:"column:author_nickname"`
}
