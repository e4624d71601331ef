package client

import (
	"context"
	"time"
)

// RequestOptions содержит опции одного запроса.
type RequestOptions struct {
	// NoAuth отключает требование токена для запроса
	// (например, для логина и регистрации).
	NoAuth bool

	// Silent подавляет уведомление пользователя об ошибке,
	// ошибка отдаётся только вызывающему коду.
	Silent bool
}

// Client определяет интерфейс клиента PrepIQ API.
// Все запросы к бэкенду идут через него.
type Client interface {
	// Get выполняет GET-запрос и раскладывает ответ в out.
	Get(ctx context.Context, endpoint string, out any, opts *RequestOptions) error

	// Post выполняет POST-запрос с телом body и раскладывает ответ в out.
	Post(ctx context.Context, endpoint string, body any, out any, opts *RequestOptions) error

	// Put выполняет PUT-запрос с телом body и раскладывает ответ в out.
	Put(ctx context.Context, endpoint string, body any, out any, opts *RequestOptions) error

	// Delete выполняет DELETE-запрос.
	Delete(ctx context.Context, endpoint string, opts *RequestOptions) error

	// Upload отправляет файл multipart-формой вместе с
	// дополнительными полями fields.
	Upload(
		ctx context.Context,
		endpoint string,
		fileName string,
		data []byte,
		fields map[string]string,
		out any,
		opts *RequestOptions,
	) error
}

// Параметры повторов: 1 начальная попытка + maxRetries повторов
// с задержками baseRetryDelay, 2x, 4x.
const (
	maxRetries     = 3
	baseRetryDelay = time.Second
)

// Лимит на размер читаемого тела ответа.
const maxResponseBytes = 1 << 20
