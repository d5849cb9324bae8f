package statistics

import "errors"

var (
	// ErrInvalidWeek возвращается при ключе недели не вида week_N
	ErrInvalidWeek = errors.New("invalid week key")

	// ErrWeekNotFound возвращается, когда по неделе ещё нет данных
	ErrWeekNotFound = errors.New("week has no statistics")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
