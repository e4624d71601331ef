package client

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind — класс ошибки запроса к API.
type ErrorKind string

const (
	KindUnauthenticated ErrorKind = "unauthenticated"
	KindForbidden       ErrorKind = "forbidden"
	KindNotFound        ErrorKind = "not_found"
	KindValidation      ErrorKind = "validation"
	KindServer          ErrorKind = "server"
	KindHTTP            ErrorKind = "http"
	KindNetwork         ErrorKind = "network"
)

// APIError представляет типизированную ошибку запроса к API.
// Создаётся на границе с транспортом и дальше не изменяется.
type APIError struct {
	Message string
	Kind    ErrorKind
	Code    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Code != "" {
		return e.Code
	}

	return fmt.Sprintf("api error (%s)", e.Kind)
}

// Retryable сообщает, имеет ли смысл повторять запрос.
// Повторяются только сетевые сбои и неуспехи, не входящие в
// {unauthenticated, forbidden, not_found, validation}.
func (e *APIError) Retryable() bool {
	switch e.Kind {
	case KindServer, KindHTTP, KindNetwork:
		return true
	default:
		return false
	}
}

// errorBody описывает тело ошибки, которое возвращает бэкенд.
type errorBody struct {
	Message string       `json:"message"`
	Detail  string       `json:"detail"`
	Code    string       `json:"code"`
	Errors  []fieldError `json:"errors"`
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// classifyStatus превращает неуспешный HTTP-статус и тело ответа в APIError.
func classifyStatus(status int, body []byte) *APIError {
	parsed := errorBody{}
	_ = json.Unmarshal(body, &parsed)

	message := parsed.Message
	if message == "" {
		message = parsed.Detail
	}

	switch {
	case status == http.StatusUnauthorized:
		if message == "" {
			message = "authentication required"
		}
		return &APIError{Message: message, Kind: KindUnauthenticated, Code: parsed.Code}
	case status == http.StatusForbidden:
		if message == "" {
			message = "access denied"
		}
		return &APIError{Message: message, Kind: KindForbidden, Code: parsed.Code}
	case status == http.StatusNotFound:
		if message == "" {
			message = "resource not found"
		}
		return &APIError{Message: message, Kind: KindNotFound, Code: parsed.Code}
	case status == http.StatusUnprocessableEntity:
		if joined := joinFieldErrors(parsed.Errors); joined != "" {
			message = joined
		}
		if message == "" {
			message = "validation failed"
		}
		return &APIError{Message: message, Kind: KindValidation, Code: parsed.Code}
	case status >= http.StatusInternalServerError:
		if message == "" {
			message = fmt.Sprintf("server error (%d)", status)
		}
		return &APIError{Message: message, Kind: KindServer, Code: parsed.Code}
	default:
		if message == "" {
			message = fmt.Sprintf("unexpected response status %d", status)
		}
		return &APIError{Message: message, Kind: KindHTTP, Code: parsed.Code}
	}
}

// joinFieldErrors склеивает ошибки полей в одно читаемое сообщение.
func joinFieldErrors(errs []fieldError) string {
	if len(errs) == 0 {
		return ""
	}

	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		if fe.Field != "" {
			parts = append(parts, fe.Field+": "+fe.Message)
			continue
		}
		parts = append(parts, fe.Message)
	}

	return strings.Join(parts, "; ")
}
