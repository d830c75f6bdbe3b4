package services

import "errors"

// Ошибки бизнес-логики, отображаемые обработчиками на HTTP-статусы
var (
	// ErrEmailTaken - пользователь с таким email уже зарегистрирован (409)
	ErrEmailTaken = errors.New("пользователь с таким email уже существует")
	// ErrAccountFired - учетная запись помечена уволенной (409)
	ErrAccountFired = errors.New("учетная запись уволена")
	// ErrDuplicatePayment - заявка на выплату за этот период уже подана (409)
	ErrDuplicatePayment = errors.New("заявка на выплату за этот период уже существует")
	// ErrUserNotFound - пользователь отсутствует в коллекции (404)
	ErrUserNotFound = errors.New("пользователь не найден")
)
