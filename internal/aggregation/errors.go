package aggregation

import "errors"

var (
	// ErrConfig возвращается при некорректной конфигурации сетки интервалов
	ErrConfig = errors.New("aggregation: invalid grid configuration")

	// ErrInvalidEvent возвращается, когда события занятости нарушают порядок или пересекаются.
	// Расчёт всего дня отменяется.
	ErrInvalidEvent = errors.New("aggregation: invalid occupancy event")

	// ErrIncompleteData возвращается недельным агрегатором, когда нет ни одной детальной записи.
	// Это ожидаемое состояние ("данных пока нет"), а не сбой.
	ErrIncompleteData = errors.New("aggregation: no detail records")
)
