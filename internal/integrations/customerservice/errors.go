package customerservice

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиента нет в справочнике
	ErrCustomerNotFound = errors.New("customer not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("customerservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("customerservice client: invalid response")

	// ErrServiceDegraded CustomerService недоступен, бронь принимается без проверки клиента
	ErrServiceDegraded = errors.New("customerservice unavailable: graceful degradation applied")
)
