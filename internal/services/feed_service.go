package services

import (
	"fmt"

	"github.com/terraincognita07/habitfeed/internal/models"
)

const (
	homeTopHabitsLimit = 3
	homeNewsLimit      = 3
)

type FeedHabitRepository interface {
	TopByReposts(limit int) ([]models.HabitEntry, error)
	ListSubscribed(userID uint) ([]models.HabitEntry, error)
}

type FeedNewsRepository interface {
	ListEntries(authorID uint, newestFirst bool, limit int) ([]models.NewsEntry, error)
}

type FeedCommentRepository interface {
	ListEntriesForNews(newsIDs []uint) ([]models.CommentEntry, error)
}

type NewsCard struct {
	models.NewsEntry
	Comments []models.CommentEntry
}

// AuthorPhoto falls back to the shared default image.
func (card NewsCard) AuthorPhoto() string {
	if card.AuthorPhotoPath == "" {
		return models.DefaultPhotoPath
	}
	return card.AuthorPhotoPath
}

type HomePage struct {
	Habits []models.HabitEntry
	News   []NewsCard
}

type ProfilePage struct {
	Habits []models.HabitEntry
	News   []NewsCard
}

type FeedService struct {
	habits   FeedHabitRepository
	news     FeedNewsRepository
	comments FeedCommentRepository
}

func NewFeedService(habits FeedHabitRepository, news FeedNewsRepository, comments FeedCommentRepository) *FeedService {
	return &FeedService{habits: habits, news: news, comments: comments}
}

// Home returns the most reposted habits and the latest news, newest first.
func (service *FeedService) Home() (HomePage, error) {
	habits, err := service.habits.TopByReposts(homeTopHabitsLimit)
	if err != nil {
		return HomePage{}, fmt.Errorf("load top habits: %w", err)
	}
	news, err := service.newsCards(0, true, homeNewsLimit)
	if err != nil {
		return HomePage{}, err
	}
	return HomePage{Habits: habits, News: news}, nil
}

// Feed returns every news item in chronological order.
func (service *FeedService) Feed() ([]NewsCard, error) {
	return service.newsCards(0, false, 0)
}

func (service *FeedService) Profile(userID uint) (ProfilePage, error) {
	habits, err := service.habits.ListSubscribed(userID)
	if err != nil {
		return ProfilePage{}, fmt.Errorf("load subscribed habits: %w", err)
	}
	news, err := service.newsCards(userID, false, 0)
	if err != nil {
		return ProfilePage{}, err
	}
	return ProfilePage{Habits: habits, News: news}, nil
}

func (service *FeedService) newsCards(authorID uint, newestFirst bool, limit int) ([]NewsCard, error) {
	entries, err := service.news.ListEntries(authorID, newestFirst, limit)
	if err != nil {
		return nil, fmt.Errorf("load news: %w", err)
	}
	if len(entries) == 0 {
		return []NewsCard{}, nil
	}

	newsIDs := make([]uint, 0, len(entries))
	for _, entry := range entries {
		newsIDs = append(newsIDs, entry.ID)
	}
	comments, err := service.comments.ListEntriesForNews(newsIDs)
	if err != nil {
		return nil, fmt.Errorf("load comments: %w", err)
	}
	return groupCommentsByNews(entries, comments), nil
}

// groupCommentsByNews keeps the comment order of the input, which is oldest first.
func groupCommentsByNews(entries []models.NewsEntry, comments []models.CommentEntry) []NewsCard {
	byNews := make(map[uint][]models.CommentEntry, len(entries))
	for _, comment := range comments {
		byNews[comment.NewsID] = append(byNews[comment.NewsID], comment)
	}

	cards := make([]NewsCard, 0, len(entries))
	for _, entry := range entries {
		newsComments := byNews[entry.ID]
		if newsComments == nil {
			newsComments = []models.CommentEntry{}
		}
		cards = append(cards, NewsCard{NewsEntry: entry, Comments: newsComments})
	}
	return cards
}
