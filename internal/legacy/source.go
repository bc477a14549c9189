// Package legacy imports a database written by the original habit tracker, where user habits
// and news comments are kept as ";"-delimited id lists and photos are named after nicknames.
package legacy

import (
	"database/sql"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type legacyUser struct {
	ID             uint           `gorm:"column:id"`
	Name           sql.NullString `gorm:"column:name"`
	Surname        sql.NullString `gorm:"column:surname"`
	Nickname       sql.NullString `gorm:"column:nickname"`
	Age            sql.NullString `gorm:"column:age"`
	Status         sql.NullString `gorm:"column:status"`
	About          sql.NullString `gorm:"column:about"`
	Email          sql.NullString `gorm:"column:email"`
	HashedPassword sql.NullString `gorm:"column:hashed_password"`
	ModifiedDate   sql.NullString `gorm:"column:modified_date"`
	CityFrom       sql.NullString `gorm:"column:city_from"`
	Habit          sql.NullString `gorm:"column:habit"`
}

type legacyHabit struct {
	ID        uint           `gorm:"column:id"`
	Creator   sql.NullString `gorm:"column:creator"`
	Type      sql.NullString `gorm:"column:type"`
	Period    sql.NullString `gorm:"column:period"`
	AboutLink sql.NullString `gorm:"column:about_link"`
	Count     sql.NullString `gorm:"column:count"`
	Reposts   sql.NullString `gorm:"column:reposts"`
}

type legacyNews struct {
	ID          uint           `gorm:"column:id"`
	UserID      sql.NullString `gorm:"column:user_id"`
	Title       sql.NullString `gorm:"column:title"`
	Content     sql.NullString `gorm:"column:content"`
	CreatedDate sql.NullString `gorm:"column:created_date"`
	Comms       sql.NullString `gorm:"column:comms"`
}

type legacyComment struct {
	ID          uint           `gorm:"column:id"`
	UserID      sql.NullString `gorm:"column:user_id"`
	Content     sql.NullString `gorm:"column:content"`
	CreatedDate sql.NullString `gorm:"column:created_date"`
}

type snapshot struct {
	users    []legacyUser
	habits   []legacyHabit
	news     []legacyNews
	comments []legacyComment
}

// OpenSource opens the legacy sqlite file without writing to it.
func OpenSource(path string) (*gorm.DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("legacy database: %w", err)
	}
	database, err := gorm.Open(sqlite.Open(path+"?_pragma=query_only(1)"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open legacy database: %w", err)
	}
	return database, nil
}

func loadSnapshot(source *gorm.DB) (snapshot, error) {
	result := snapshot{}
	if err := source.Table("users").Order("id ASC").Find(&result.users).Error; err != nil {
		return snapshot{}, fmt.Errorf("read users: %w", err)
	}
	if err := source.Table("habits").Order("id ASC").Find(&result.habits).Error; err != nil {
		return snapshot{}, fmt.Errorf("read habits: %w", err)
	}
	if err := source.Table("news").Order("id ASC").Find(&result.news).Error; err != nil {
		return snapshot{}, fmt.Errorf("read news: %w", err)
	}
	if err := source.Table("comments").Order("id ASC").Find(&result.comments).Error; err != nil {
		return snapshot{}, fmt.Errorf("read comments: %w", err)
	}
	return result, nil
}

func text(value sql.NullString) string {
	if !value.Valid {
		return ""
	}
	return strings.TrimSpace(value.String)
}

// number reads integer columns that the old app sometimes wrote as text.
func number(value sql.NullString) int {
	parsed, err := strconv.Atoi(text(value))
	if err != nil {
		return 0
	}
	return parsed
}

func reference(value sql.NullString) uint {
	parsed, err := strconv.ParseUint(text(value), 10, 64)
	if err != nil {
		return 0
	}
	return uint(parsed)
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02",
}

func timestamp(value sql.NullString, fallback time.Time) time.Time {
	raw := text(value)
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, raw); err == nil {
			return parsed.UTC()
		}
	}
	return fallback
}
