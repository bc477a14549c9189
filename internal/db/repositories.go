package db

import "gorm.io/gorm"

type Repositories struct {
	Users    *UserRepository
	Habits   *HabitRepository
	News     *NewsRepository
	Comments *CommentRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:    NewUserRepository(database),
		Habits:   NewHabitRepository(database),
		News:     NewNewsRepository(database),
		Comments: NewCommentRepository(database),
	}
}
