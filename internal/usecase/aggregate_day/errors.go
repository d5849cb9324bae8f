package aggregate_day

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrDateInFuture возвращается, когда день ещё не наступил
	ErrDateInFuture = errors.New("date is in the future")

	// ErrInvalidConfig возвращается при некорректной сетке или числе мест
	ErrInvalidConfig = errors.New("invalid aggregation config")

	// ErrInvalidEvents возвращается, когда события дня нарушают инварианты журнала
	// День не записывается, остальные дни не затрагиваются
	ErrInvalidEvents = errors.New("invalid occupancy events")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
