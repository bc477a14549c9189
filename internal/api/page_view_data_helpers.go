package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/habitfeed/internal/models"
	"github.com/terraincognita07/habitfeed/internal/services"
)

type habitView struct {
	ID        uint
	Type      string
	Period    string
	AboutLink string
	Count     int
	Reposts   int
	Creator   string
}

type commentView struct {
	ID          uint
	Content     string
	CreatedDate string
	Creator     string
}

type newsView struct {
	ID          uint
	Title       string
	Content     string
	CreatedDate string
	Creator     string
	Photo       string
	Comments    []commentView
}

func buildHabitViews(entries []models.HabitEntry) []habitView {
	views := make([]habitView, 0, len(entries))
	for _, entry := range entries {
		views = append(views, habitView{
			ID:        entry.ID,
			Type:      entry.Type,
			Period:    entry.Period,
			AboutLink: entry.AboutLink,
			Count:     entry.Count,
			Reposts:   entry.Reposts,
			Creator:   entry.CreatorNickname,
		})
	}
	return views
}

func (handler *Handler) buildNewsViews(c *fiber.Ctx, cards []services.NewsCard) []newsView {
	language := currentLanguage(c)
	views := make([]newsView, 0, len(cards))
	for _, card := range cards {
		comments := make([]commentView, 0, len(card.Comments))
		for _, comment := range card.Comments {
			comments = append(comments, commentView{
				ID:          comment.ID,
				Content:     comment.Content,
				CreatedDate: formatLongDate(comment.CreatedDate, language, handler.location),
				Creator:     comment.AuthorNickname,
			})
		}
		views = append(views, newsView{
			ID:          card.ID,
			Title:       card.Title,
			Content:     card.Content,
			CreatedDate: formatLongDate(card.CreatedDate, language, handler.location),
			Creator:     card.AuthorNickname,
			Photo:       card.AuthorPhoto(),
			Comments:    comments,
		})
	}
	return views
}
