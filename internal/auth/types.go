package auth

import "errors"

// TokenStore определяет интерфейс хранилища токена авторизации.
// Токен — непрозрачная bearer-строка, выданная бэкендом при логине.
type TokenStore interface {
	// Token возвращает сохранённый токен.
	// Возвращает ErrNoToken, если токена нет.
	Token() (string, error)

	// SetToken сохраняет токен. Вызывается при логине.
	SetToken(token string) error

	// Clear удаляет токен. Вызывается при логауте
	// и при ответе 401 от бэкенда.
	Clear() error
}

// Ошибки хранилища токена
var ErrNoToken = errors.New("no stored token")
