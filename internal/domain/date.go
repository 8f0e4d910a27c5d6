package domain

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DateLayout формат календарной даты в БД и сессии
	DateLayout = "2006-01-02"
	// BirthDateLayout формат даты рождения, ведущие нули необязательны
	BirthDateLayout = "2.1.2006"
	// DisplayDateLayout формат дат в сообщениях
	DisplayDateLayout = "02.01.2006"
)

// DateOf отбрасывает время суток, оставляя календарный день в UTC.
// Часовой пояс t должен быть уже приведён к нужному.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysBetween количество календарных дней от from до to
func DaysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}

// SameDate совпадают ли календарные дни
func SameDate(a, b time.Time) bool {
	return DaysBetween(a, b) == 0
}

// ParseBirthDate разбирает дату в формате ДД.ММ.ГГГГ
func ParseBirthDate(text string) (time.Time, error) {
	date, err := time.Parse(BirthDateLayout, strings.TrimSpace(text))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBirthDate, text)
	}
	return date, nil
}
