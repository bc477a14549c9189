package api

import (
	"time"

	"github.com/terraincognita07/habitfeed/internal/models"
	"github.com/terraincognita07/habitfeed/internal/relations"
)

type userJSON struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Nickname     string    `json:"nickname"`
	Age          int       `json:"age"`
	Status       string    `json:"status"`
	About        string    `json:"about"`
	Email        string    `json:"email"`
	CityFrom     string    `json:"city_from"`
	Photo        string    `json:"photo"`
	Habit        string    `json:"habit"`
	ModifiedDate time.Time `json:"modified_date"`
	CreatedAt    time.Time `json:"created_at"`
}

type habitJSON struct {
	ID        uint      `json:"id"`
	Creator   uint      `json:"creator"`
	Type      string    `json:"type"`
	Period    string    `json:"period"`
	AboutLink string    `json:"about_link"`
	Count     int       `json:"count"`
	Reposts   int       `json:"reposts"`
	CreatedAt time.Time `json:"created_at"`
}

type newsJSON struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	CreatedDate time.Time `json:"created_date"`
	Comms       string    `json:"comms"`
}

type commentJSON struct {
	ID          uint      `json:"id"`
	UserID      uint      `json:"user_id"`
	NewsID      uint      `json:"news_id"`
	Content     string    `json:"content"`
	CreatedDate time.Time `json:"created_date"`
}

// serializeUser never exposes the password hash.
func serializeUser(user models.User, habitIDs []uint) userJSON {
	return userJSON{
		ID:           user.ID,
		Name:         user.Name,
		Surname:      user.Surname,
		Nickname:     user.Nickname,
		Age:          user.Age,
		Status:       user.Status,
		About:        user.About,
		Email:        user.Email,
		CityFrom:     user.CityFrom,
		Photo:        user.Photo(),
		Habit:        relations.Encode(habitIDs),
		ModifiedDate: user.ModifiedDate,
		CreatedAt:    user.CreatedAt,
	}
}

func serializeHabit(habit models.Habit) habitJSON {
	return habitJSON{
		ID:        habit.ID,
		Creator:   habit.CreatorID,
		Type:      habit.Type,
		Period:    habit.Period,
		AboutLink: habit.AboutLink,
		Count:     habit.Count,
		Reposts:   habit.Reposts,
		CreatedAt: habit.CreatedAt,
	}
}

func serializeNews(news models.News, commentIDs []uint) newsJSON {
	return newsJSON{
		ID:          news.ID,
		UserID:      news.UserID,
		Title:       news.Title,
		Content:     news.Content,
		CreatedDate: news.CreatedDate,
		Comms:       relations.Encode(commentIDs),
	}
}

func serializeComment(comment models.Comment, newsID uint) commentJSON {
	return commentJSON{
		ID:          comment.ID,
		UserID:      comment.UserID,
		NewsID:      newsID,
		Content:     comment.Content,
		CreatedDate: comment.CreatedDate,
	}
}
