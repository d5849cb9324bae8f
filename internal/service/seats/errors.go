package seats

import "errors"

var (
	// ErrNoSeatStatus возвращается, когда /seat_status пуст
	ErrNoSeatStatus = errors.New("seat status is empty")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
