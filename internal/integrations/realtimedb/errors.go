package realtimedb

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("realtimedb client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от базы
	ErrInvalidResponse = errors.New("realtimedb client: invalid response")

	// ErrUnauthorized возвращается, когда токен отклонён базой
	ErrUnauthorized = errors.New("realtimedb client: unauthorized")
)
