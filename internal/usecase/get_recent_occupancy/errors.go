package get_recent_occupancy

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrNoData возвращается, когда за период нет ни одного посчитанного дня
	ErrNoData = errors.New("no occupancy data for the period")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
