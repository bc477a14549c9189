package models

import "time"

// DefaultPhotoPath is served when a user has not uploaded a photo.
const DefaultPhotoPath = "/static/img/users_photo/default.svg"

type User struct {
	ID           uint      `gorm:"primaryKey"`
	Name         string    `gorm:"not null;default:''"`
	Surname      string    `gorm:"not null;default:''"`
	Nickname     string    `gorm:"not null;default:''"`
	Age          int       `gorm:"not null;default:0"`
	Status       string    `gorm:"not null;default:''"`
	About        string    `gorm:"not null;default:''"`
	Email        string    `gorm:"uniqueIndex;not null"`
	PasswordHash string    `gorm:"not null"`
	CityFrom     string    `gorm:"not null;default:''"`
	PhotoPath    string    `gorm:"not null;default:''"`
	ModifiedDate time.Time `gorm:"not null"`
	CreatedAt    time.Time `gorm:"not null"`
}

func (User) TableName() string {
	return "users"
}

// Photo returns the stored photo path or the shared default image.
func (user User) Photo() string {
	if user.PhotoPath == "" {
		return DefaultPhotoPath
	}
	return user.PhotoPath
}
