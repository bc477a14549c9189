package legacy

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/terraincognita07/habitfeed/internal/db"
	"github.com/terraincognita07/habitfeed/internal/models"
	"github.com/terraincognita07/habitfeed/internal/relations"
	"github.com/terraincognita07/habitfeed/internal/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrTargetNotEmpty = errors.New("target database already has users")

// Report counts what was imported. Skipped counts rows and list entries that referenced
// missing or duplicate records.
type Report struct {
	Users         int
	Habits        int
	Subscriptions int
	News          int
	Comments      int
	CommentLinks  int
	Photos        int
	Skipped       int
}

type Importer struct {
	source   *gorm.DB
	target   *gorm.DB
	photos   services.PhotoStore
	photoDir string
	logger   *zap.Logger
	now      func() time.Time
}

// NewImporter copies from source into target. photos and photoDir may be empty, in which
// case user photos are not imported.
func NewImporter(source *gorm.DB, target *gorm.DB, photos services.PhotoStore, photoDir string, logger *zap.Logger) *Importer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Importer{
		source:   source,
		target:   target,
		photos:   photos,
		photoDir: photoDir,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Run imports every table in one transaction, keeping the original ids, then copies photos.
func (importer *Importer) Run(ctx context.Context) (Report, error) {
	data, err := loadSnapshot(importer.source.WithContext(ctx))
	if err != nil {
		return Report{}, err
	}

	report := Report{}
	imported := map[uint]string{}
	err = importer.target.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.User{}).Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrTargetNotEmpty
		}

		users, err := importer.importUsers(tx, data.users, &report)
		if err != nil {
			return fmt.Errorf("import users: %w", err)
		}
		imported = users
		habitIDs, err := importer.importHabits(tx, data.habits, imported, &report)
		if err != nil {
			return fmt.Errorf("import habits: %w", err)
		}
		if err := importer.importSubscriptions(tx, data.users, imported, habitIDs, &report); err != nil {
			return fmt.Errorf("import subscriptions: %w", err)
		}
		newsIDs, err := importer.importNews(tx, data.news, imported, &report)
		if err != nil {
			return fmt.Errorf("import news: %w", err)
		}
		commentIDs, err := importer.importComments(tx, data.comments, imported, &report)
		if err != nil {
			return fmt.Errorf("import comments: %w", err)
		}
		if err := importer.linkComments(tx, data.news, newsIDs, commentIDs, &report); err != nil {
			return fmt.Errorf("link comments: %w", err)
		}
		return resetSequences(tx)
	})
	if err != nil {
		return Report{}, err
	}

	importer.importPhotos(ctx, imported, &report)
	return report, nil
}

func (importer *Importer) importUsers(tx *gorm.DB, rows []legacyUser, report *Report) (map[uint]string, error) {
	imported := make(map[uint]string, len(rows))
	emails := map[string]bool{}
	for _, row := range rows {
		email := services.NormalizeAuthEmail(text(row.Email))
		if email == "" || emails[email] || text(row.HashedPassword) == "" {
			importer.logger.Warn("skip legacy user", zap.Uint("id", row.ID), zap.String("email", text(row.Email)))
			report.Skipped++
			continue
		}
		emails[email] = true

		modified := timestamp(row.ModifiedDate, importer.now())
		user := models.User{
			ID:           row.ID,
			Name:         text(row.Name),
			Surname:      text(row.Surname),
			Nickname:     text(row.Nickname),
			Age:          number(row.Age),
			Status:       text(row.Status),
			About:        text(row.About),
			Email:        email,
			PasswordHash: text(row.HashedPassword),
			CityFrom:     text(row.CityFrom),
			ModifiedDate: modified,
			CreatedAt:    modified,
		}
		if err := tx.Create(&user).Error; err != nil {
			return nil, err
		}
		imported[user.ID] = user.Nickname
		report.Users++
	}
	return imported, nil
}

func (importer *Importer) importHabits(tx *gorm.DB, rows []legacyHabit, users map[uint]string, report *Report) (map[uint]bool, error) {
	imported := make(map[uint]bool, len(rows))
	for _, row := range rows {
		creatorID := reference(row.Creator)
		if _, ok := users[creatorID]; !ok || text(row.Type) == "" {
			importer.logger.Warn("skip legacy habit", zap.Uint("id", row.ID), zap.Uint("creator", creatorID))
			report.Skipped++
			continue
		}

		habit := models.Habit{
			ID:        row.ID,
			CreatorID: creatorID,
			Type:      text(row.Type),
			Period:    text(row.Period),
			AboutLink: text(row.AboutLink),
			Count:     max(number(row.Count), 0),
			Reposts:   max(number(row.Reposts), 0),
			CreatedAt: importer.now(),
		}
		if err := tx.Create(&habit).Error; err != nil {
			return nil, err
		}
		imported[habit.ID] = true
		report.Habits++
	}
	return imported, nil
}

// importSubscriptions turns each user's habit list into rows. Creators are subscribed to
// their own habits even when the old list missed them.
func (importer *Importer) importSubscriptions(tx *gorm.DB, rows []legacyUser, users map[uint]string, habits map[uint]bool, report *Report) error {
	now := importer.now()
	for _, row := range rows {
		if _, ok := users[row.ID]; !ok {
			continue
		}
		ids, err := legacyIDs(text(row.Habit))
		if err != nil {
			importer.logger.Warn("skip malformed habit list", zap.Uint("user", row.ID), zap.Error(err))
			report.Skipped++
			continue
		}
		for _, habitID := range ids {
			if !habits[habitID] {
				report.Skipped++
				continue
			}
			inserted, err := subscribe(tx, row.ID, habitID, now)
			if err != nil {
				return err
			}
			if inserted {
				report.Subscriptions++
			}
		}
	}

	lists := make(map[uint]string, len(rows))
	for _, row := range rows {
		lists[row.ID] = text(row.Habit)
	}

	var creators []models.Habit
	if err := tx.Select("id", "creator_id").Find(&creators).Error; err != nil {
		return err
	}
	for _, habit := range creators {
		if !relations.Contains(lists[habit.CreatorID], habit.ID) {
			importer.logger.Debug("creator missing from legacy habit list", zap.Uint("user", habit.CreatorID), zap.Uint("habit", habit.ID))
		}
		inserted, err := subscribe(tx, habit.CreatorID, habit.ID, now)
		if err != nil {
			return err
		}
		if inserted {
			report.Subscriptions++
		}
	}
	return nil
}

func subscribe(tx *gorm.DB, userID uint, habitID uint, now time.Time) (bool, error) {
	result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&models.UserHabit{
		UserID:    userID,
		HabitID:   habitID,
		CreatedAt: now,
	})
	return result.RowsAffected > 0, result.Error
}

func (importer *Importer) importNews(tx *gorm.DB, rows []legacyNews, users map[uint]string, report *Report) (map[uint]bool, error) {
	imported := make(map[uint]bool, len(rows))
	for _, row := range rows {
		userID := reference(row.UserID)
		if _, ok := users[userID]; !ok {
			importer.logger.Warn("skip legacy news", zap.Uint("id", row.ID), zap.Uint("user", userID))
			report.Skipped++
			continue
		}

		news := models.News{
			ID:          row.ID,
			UserID:      userID,
			Title:       text(row.Title),
			Content:     text(row.Content),
			CreatedDate: timestamp(row.CreatedDate, importer.now()),
		}
		if err := tx.Create(&news).Error; err != nil {
			return nil, err
		}
		imported[news.ID] = true
		report.News++
	}
	return imported, nil
}

func (importer *Importer) importComments(tx *gorm.DB, rows []legacyComment, users map[uint]string, report *Report) (map[uint]bool, error) {
	imported := make(map[uint]bool, len(rows))
	for _, row := range rows {
		userID := reference(row.UserID)
		if _, ok := users[userID]; !ok {
			importer.logger.Warn("skip legacy comment", zap.Uint("id", row.ID), zap.Uint("user", userID))
			report.Skipped++
			continue
		}

		comment := models.Comment{
			ID:          row.ID,
			UserID:      userID,
			Content:     text(row.Content),
			CreatedDate: timestamp(row.CreatedDate, importer.now()),
		}
		if err := tx.Create(&comment).Error; err != nil {
			return nil, err
		}
		imported[comment.ID] = true
		report.Comments++
	}
	return imported, nil
}

// linkComments attaches comments listed in news.comms. A comment claimed by two news
// items stays with the first one.
func (importer *Importer) linkComments(tx *gorm.DB, rows []legacyNews, news map[uint]bool, comments map[uint]bool, report *Report) error {
	linked := map[uint]bool{}
	for _, row := range rows {
		if !news[row.ID] {
			continue
		}
		ids, err := legacyIDs(text(row.Comms))
		if err != nil {
			importer.logger.Warn("skip malformed comment list", zap.Uint("news", row.ID), zap.Error(err))
			report.Skipped++
			continue
		}
		for _, commentID := range ids {
			if !comments[commentID] || linked[commentID] {
				report.Skipped++
				continue
			}
			if err := tx.Create(&models.NewsComment{NewsID: row.ID, CommentID: commentID}).Error; err != nil {
				return err
			}
			linked[commentID] = true
			report.CommentLinks++
		}
	}
	return nil
}

// legacyIDs decodes a delimited list and drops ids repeated inside it.
func legacyIDs(field string) ([]uint, error) {
	ids, err := relations.Decode(field)
	if err != nil {
		return nil, err
	}

	unique := make([]uint, 0, len(ids))
	seen := ""
	for _, id := range ids {
		next, added, err := relations.Append(seen, id)
		if err != nil {
			return nil, err
		}
		if added {
			seen = next
			unique = append(unique, id)
		}
	}
	return unique, nil
}

// resetSequences moves postgres id sequences past the imported ids. SQLite tracks this itself.
func resetSequences(tx *gorm.DB) error {
	if tx.Dialector.Name() != "postgres" {
		return nil
	}
	for _, table := range []string{"users", "habits", "news", "comments"} {
		statement := fmt.Sprintf("SELECT setval(pg_get_serial_sequence('%s', 'id'), COALESCE((SELECT MAX(id) FROM %s), 0) + 1, false)", table, table)
		if err := tx.Exec(statement).Error; err != nil {
			return fmt.Errorf("reset %s sequence: %w", table, err)
		}
	}
	return nil
}

// importPhotos copies <nickname>.<ext> files into the photo store. Failures are logged and
// leave the default photo in place.
func (importer *Importer) importPhotos(ctx context.Context, users map[uint]string, report *Report) {
	if importer.photos == nil || strings.TrimSpace(importer.photoDir) == "" {
		return
	}
	entries, err := os.ReadDir(importer.photoDir)
	if err != nil {
		importer.logger.Warn("read legacy photo directory", zap.String("dir", importer.photoDir), zap.Error(err))
		return
	}

	byNickname := map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		stem := strings.SplitN(entry.Name(), ".", 2)[0]
		if _, taken := byNickname[stem]; !taken {
			byNickname[stem] = entry.Name()
		}
	}

	for userID, nickname := range users {
		filename, ok := byNickname[nickname]
		if nickname == "" || !ok {
			continue
		}
		data, err := os.ReadFile(filepath.Join(importer.photoDir, filename))
		if err != nil {
			importer.logger.Warn("read legacy photo", zap.String("file", filename), zap.Error(err))
			continue
		}
		extension, contentType, err := services.ValidatePhoto(filename, data)
		if err != nil {
			importer.logger.Warn("skip legacy photo", zap.String("file", filename), zap.Error(err))
			report.Skipped++
			continue
		}
		photoPath, err := importer.photos.Save(ctx, extension, contentType, data)
		if err != nil {
			importer.logger.Warn("store legacy photo", zap.String("file", filename), zap.Error(err))
			continue
		}
		if err := db.NewUserRepository(importer.target.WithContext(ctx)).UpdatePhotoPath(userID, photoPath); err != nil {
			importer.logger.Warn("save legacy photo path", zap.Uint("user", userID), zap.Error(err))
			continue
		}
		report.Photos++
	}
}
