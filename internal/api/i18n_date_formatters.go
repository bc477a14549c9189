package api

import (
	"fmt"
	"time"
)

var weekdayLongNames = map[string][]string{
	"en": {"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"},
	"ru": {"воскресенье", "понедельник", "вторник", "среда", "четверг", "пятница", "суббота"},
}

var monthLongNames = map[string][]string{
	"en": {"January", "February", "March", "April", "May", "June", "July", "August", "September", "October", "November", "December"},
	"ru": {"января", "февраля", "марта", "апреля", "мая", "июня", "июля", "августа", "сентября", "октября", "ноября", "декабря"},
}

// formatLongDate renders "weekday DD month YYYY", e.g. "Monday 02 March 2026".
func formatLongDate(value time.Time, language string, location *time.Location) string {
	if value.IsZero() {
		return ""
	}
	if location != nil {
		value = value.In(location)
	}

	weekdays, ok := weekdayLongNames[language]
	if !ok {
		weekdays = weekdayLongNames["en"]
	}
	months, ok := monthLongNames[language]
	if !ok {
		months = monthLongNames["en"]
	}
	return fmt.Sprintf("%s %02d %s %d", weekdays[value.Weekday()], value.Day(), months[value.Month()-1], value.Year())
}
