package statistics

import "errors"

var (
	// ErrTransaction возвращается при ошибках работы с транзакцией
	ErrTransaction = errors.New("statistics.repository: transaction error")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("statistics.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("statistics.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("statistics.repository: failed to scan row")

	// ErrInvalidWeekday возвращается, когда в БД лежит неизвестный день недели
	ErrInvalidWeekday = errors.New("statistics.repository: invalid weekday")
)
