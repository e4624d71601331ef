package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/Ashutosh3021/PrepIQ-sub001/internal/auth"
	"github.com/Ashutosh3021/PrepIQ-sub001/internal/notify"
)

// Options содержит настройки HTTP клиента PrepIQ API.
type Options struct {
	BaseURL  string
	Tokens   auth.TokenStore
	Notifier notify.Notifier

	// HTTPClient позволяет подменить транспорт (в тестах).
	HTTPClient *http.Client

	// RetryBaseDelay — задержка перед первым повтором,
	// дальше удваивается. По умолчанию baseRetryDelay.
	RetryBaseDelay time.Duration

	// MaxRetries — количество повторов после первой попытки.
	// Отрицательное значение отключает повторы.
	MaxRetries int
}

// HTTPClient реализует Client через HTTP API бэкенда PrepIQ.
type HTTPClient struct {
	baseURL    string
	tokens     auth.TokenStore
	notifier   notify.Notifier
	httpClient *http.Client

	retryBaseDelay time.Duration
	maxRetries     int
}

// NewHTTPClient создаёт нового HTTP клиента PrepIQ API.
func NewHTTPClient(opts Options) (*HTTPClient, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, errors.New("baseURL required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("token store required")
	}
	if opts.Notifier == nil {
		return nil, errors.New("notifier required")
	}

	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{}
	}

	retryDelay := opts.RetryBaseDelay
	if retryDelay <= 0 {
		retryDelay = baseRetryDelay
	}

	retries := opts.MaxRetries
	if retries == 0 {
		retries = maxRetries
	}
	if retries < 0 {
		retries = 0
	}

	return &HTTPClient{
		baseURL:        baseURL,
		tokens:         opts.Tokens,
		notifier:       opts.Notifier,
		httpClient:     hc,
		retryBaseDelay: retryDelay,
		maxRetries:     retries,
	}, nil
}

// Get выполняет GET-запрос.
func (c *HTTPClient) Get(ctx context.Context, endpoint string, out any, opts *RequestOptions) error {
	return c.Request(ctx, http.MethodGet, endpoint, nil, out, opts)
}

// Post выполняет POST-запрос.
func (c *HTTPClient) Post(ctx context.Context, endpoint string, body any, out any, opts *RequestOptions) error {
	return c.Request(ctx, http.MethodPost, endpoint, body, out, opts)
}

// Put выполняет PUT-запрос.
func (c *HTTPClient) Put(ctx context.Context, endpoint string, body any, out any, opts *RequestOptions) error {
	return c.Request(ctx, http.MethodPut, endpoint, body, out, opts)
}

// Delete выполняет DELETE-запрос.
func (c *HTTPClient) Delete(ctx context.Context, endpoint string, opts *RequestOptions) error {
	return c.Request(ctx, http.MethodDelete, endpoint, nil, nil, opts)
}

// Upload отправляет файл multipart-формой в поле "file",
// дополнительные поля fields пишутся рядом.
// Content-Type с boundary выставляет multipart.Writer, а не клиент.
func (c *HTTPClient) Upload(
	ctx context.Context,
	endpoint string,
	fileName string,
	data []byte,
	fields map[string]string,
	out any,
	opts *RequestOptions,
) error {
	var buf bytes.Buffer

	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return fmt.Errorf("failed to add field %s to multipart form: %w", key, err)
		}
	}

	filePart, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return fmt.Errorf("failed to create form file: %w", err)
	}

	if _, err = filePart.Write(data); err != nil {
		return fmt.Errorf("failed to write data to multipart form: %w", err)
	}

	if err = writer.Close(); err != nil {
		return fmt.Errorf("failed to close multipart form: %w", err)
	}

	return c.do(ctx, http.MethodPost, endpoint, buf.Bytes(), writer.FormDataContentType(), out, opts)
}

// Request выполняет запрос к PrepIQ API: сериализует body в JSON,
// прикладывает заголовки и раскладывает успешный ответ в out.
// Неуспех возвращается как *APIError.
func (c *HTTPClient) Request(
	ctx context.Context,
	method string,
	endpoint string,
	body any,
	out any,
	opts *RequestOptions,
) error {
	var payload []byte
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	return c.do(ctx, method, endpoint, payload, "application/json", out, opts)
}

// do — единая точка выполнения запроса: предпроверка токена,
// повторы с экспоненциальной задержкой, классификация ошибок
// и одно уведомление пользователя на весь вызов.
func (c *HTTPClient) do(
	ctx context.Context,
	method string,
	endpoint string,
	payload []byte,
	contentType string,
	out any,
	opts *RequestOptions,
) error {
	if opts == nil {
		opts = &RequestOptions{}
	}

	token := ""
	if !opts.NoAuth {
		stored, err := c.tokens.Token()
		if errors.Is(err, auth.ErrNoToken) {
			// без токена запрос в сеть не уходит
			return &APIError{Message: "not authenticated", Kind: KindUnauthenticated}
		}
		if err != nil {
			return fmt.Errorf("failed to read token: %w", err)
		}
		token = stored
	}

	var lastErr *APIError

	delay := c.retryBaseDelay
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		apiErr, err := c.attempt(ctx, method, endpoint, payload, contentType, token, out)
		if err != nil {
			return err
		}
		if apiErr == nil {
			return nil
		}

		lastErr = apiErr

		if apiErr.Kind == KindUnauthenticated {
			// сессия истекла, токен больше не годится
			_ = c.tokens.Clear()
		}

		if !apiErr.Retryable() || attempt == c.maxRetries {
			break
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}

	// одно уведомление на вызов, а не на попытку;
	// unauthenticated отдаётся вызывающему коду молча
	if lastErr.Kind != KindUnauthenticated && !opts.Silent {
		c.notifier.Error(lastErr.Message)
	}

	return lastErr
}

// attempt выполняет одну попытку запроса.
// Возвращает *APIError при неуспехе, который можно классифицировать,
// и error при сбоях, не относящихся к транспорту (маршалинг и т.п.).
func (c *HTTPClient) attempt(
	ctx context.Context,
	method string,
	endpoint string,
	payload []byte,
	contentType string,
	token string,
	out any,
) (*APIError, error) {
	var bodyReader io.Reader
	if payload != nil {
		bodyReader = bytes.NewReader(payload)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	if payload != nil {
		request.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(request)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return &APIError{
			Message: fmt.Sprintf("network error: %v", err),
			Kind:    KindNetwork,
		}, nil
	}

	defer func() {
		_ = resp.Body.Close()
	}()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return &APIError{
			Message: fmt.Sprintf("failed to read response body: %v", err),
			Kind:    KindNetwork,
		}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(resp.StatusCode, data), nil
	}

	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	if err := json.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response body: %w", err)
	}

	return nil, nil
}
