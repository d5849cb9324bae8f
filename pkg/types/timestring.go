package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeString возвращается при некорректном формате времени (ожидается HH:MM)
var ErrInvalidTimeString = errors.New("types: invalid time string, expected HH:MM")

const (
	timeLayout    = "15:04"
	minutesPerDay = 24 * 60
)

// TimeString время суток в формате HH:MM (например, "09:00")
type TimeString string

// NewTimeString создает TimeString из time.Time (секунды отбрасываются)
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString парсит строку формата HH:MM
// Допускается "24:00" как конец суток
func NewTimeStringFromString(s string) (TimeString, error) {
	if s == "24:00" {
		return TimeString(s), nil
	}
	if len(s) != len(timeLayout) {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	if _, err := time.Parse(timeLayout, s); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	return TimeString(s), nil
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() int {
	if t == "24:00" {
		return minutesPerDay
	}
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return -1
	}
	return parsed.Hour()*60 + parsed.Minute()
}

// IsValid проверяет формат
func (t TimeString) IsValid() bool {
	return t.Minutes() >= 0
}

// AddMinutes возвращает время, сдвинутое на n минут
// Выход за пределы суток считается ошибкой
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	total := t.Minutes() + n
	if total < 0 || total > minutesPerDay {
		return "", fmt.Errorf("%w: %s%+d minutes is out of day bounds", ErrInvalidTimeString, t, n)
	}
	if total == minutesPerDay {
		return "24:00", nil
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore строго раньше other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter строго позже other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// On возвращает момент времени t в день day (в локации day)
func (t TimeString) On(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, day.Location()).Add(time.Duration(t.Minutes()) * time.Minute)
}

func (t TimeString) String() string {
	return string(t)
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}

// Scan реализует sql.Scanner (колонки TIME и TEXT)
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case string:
		if len(v) >= 5 {
			*t = TimeString(v[:5])
			return nil
		}
	case []byte:
		if len(v) >= 5 {
			*t = TimeString(v[:5])
			return nil
		}
	case time.Time:
		*t = NewTimeString(v)
		return nil
	}
	return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
}

// UnmarshalText позволяет декодировать TimeString из TOML/JSON с валидацией
func (t *TimeString) UnmarshalText(text []byte) error {
	parsed, err := NewTimeStringFromString(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
