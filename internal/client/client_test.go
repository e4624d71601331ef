package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashutosh3021/PrepIQ-sub001/internal/auth"
	"github.com/Ashutosh3021/PrepIQ-sub001/internal/notify"
)

// newTestClient создаёт клиента с маленькой задержкой повторов,
// чтобы тесты не ждали настоящие секунды.
func newTestClient(t *testing.T, baseURL, token string) (*HTTPClient, *auth.MemoryTokenStore, *notify.Recorder) {
	t.Helper()

	tokens := auth.NewMemoryTokenStore(token)
	notifier := notify.NewRecorder()

	c, err := NewHTTPClient(Options{
		BaseURL:        baseURL,
		Tokens:         tokens,
		Notifier:       notifier,
		RetryBaseDelay: 5 * time.Millisecond,
	})
	require.NoError(t, err)

	return c, tokens, notifier
}

func TestRequest_NoToken(t *testing.T) {
	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer server.Close()

	c, _, notifier := newTestClient(t, server.URL, "")

	err := c.Get(context.Background(), "/api/subjects", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindUnauthenticated, apiErr.Kind)

	// запрос в сеть не уходил, уведомления не было
	assert.Equal(t, int64(0), calls.Load())
	assert.Empty(t, notifier.Errors())
}

func TestRequest_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		assert.Equal(t, "/auth/profile", r.URL.Path)

		w.Write([]byte(`{"id": "u1", "email": "x@y.z"}`))
	}))
	defer server.Close()

	c, _, notifier := newTestClient(t, server.URL, "secret")

	var out struct {
		ID    string `json:"id"`
		Email string `json:"email"`
	}
	err := c.Get(context.Background(), "/auth/profile", &out, nil)
	require.NoError(t, err)

	assert.Equal(t, "u1", out.ID)
	assert.Equal(t, "x@y.z", out.Email)
	assert.Empty(t, notifier.Errors())
}

func TestRequest_ContentTypeJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c, _, _ := newTestClient(t, server.URL, "secret")

	err := c.Post(context.Background(), "/tests/generate", map[string]string{"subject_id": "s1"}, nil, nil)
	require.NoError(t, err)
}

func TestRequest_Unauthorized(t *testing.T) {
	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message": "token expired"}`))
	}))
	defer server.Close()

	c, tokens, notifier := newTestClient(t, server.URL, "stale")

	err := c.Get(context.Background(), "/api/subjects", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindUnauthenticated, apiErr.Kind)
	assert.Equal(t, "token expired", apiErr.Message)

	// без повторов, токен очищен, уведомления нет
	assert.Equal(t, int64(1), calls.Load())
	assert.Empty(t, notifier.Errors())

	_, err = tokens.Token()
	assert.ErrorIs(t, err, auth.ErrNoToken)
}

func TestRequest_TerminalStatuses(t *testing.T) {
	testCases := []struct {
		name   string
		status int
		kind   ErrorKind
	}{
		{name: "forbidden", status: http.StatusForbidden, kind: KindForbidden},
		{name: "not found", status: http.StatusNotFound, kind: KindNotFound},
		{name: "validation", status: http.StatusUnprocessableEntity, kind: KindValidation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var calls atomic.Int64

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls.Add(1)
				w.WriteHeader(tc.status)
			}))
			defer server.Close()

			c, _, notifier := newTestClient(t, server.URL, "secret")

			err := c.Get(context.Background(), "/api/subjects", nil, nil)

			var apiErr *APIError
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tc.kind, apiErr.Kind)

			// без повторов, ровно одно уведомление
			assert.Equal(t, int64(1), calls.Load())
			assert.Len(t, notifier.Errors(), 1)
		})
	}
}

func TestRequest_ValidationJoinsFieldErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"errors": [
			{"field": "num_questions", "message": "must be positive"},
			{"field": "difficulty", "message": "unknown value"}
		]}`))
	}))
	defer server.Close()

	c, _, _ := newTestClient(t, server.URL, "secret")

	err := c.Post(context.Background(), "/tests/generate", map[string]int{}, nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindValidation, apiErr.Kind)
	assert.Equal(t, "num_questions: must be positive; difficulty: unknown value", apiErr.Message)
}

func TestRequest_ServerErrorRetries(t *testing.T) {
	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	c, _, notifier := newTestClient(t, server.URL, "secret")

	err := c.Get(context.Background(), "/api/subjects", nil, nil)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindServer, apiErr.Kind)

	// 1 начальная попытка + 3 повтора, одно уведомление на весь вызов
	assert.Equal(t, int64(4), calls.Load())
	assert.Len(t, notifier.Errors(), 1)
}

func TestRequest_RetrySucceedsMidway(t *testing.T) {
	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}

		w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	c, _, notifier := newTestClient(t, server.URL, "secret")

	var out struct {
		OK bool `json:"ok"`
	}
	err := c.Get(context.Background(), "/api/subjects", &out, nil)
	require.NoError(t, err)

	assert.True(t, out.OK)
	assert.Equal(t, int64(3), calls.Load())
	assert.Empty(t, notifier.Errors())
}

func TestRequest_NetworkErrorRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	// сервер сразу закрываем, остаётся только адрес
	url := server.URL
	server.Close()

	c, _, notifier := newTestClient(t, url, "secret")

	start := time.Now()
	err := c.Get(context.Background(), "/api/subjects", nil, nil)
	elapsed := time.Since(start)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindNetwork, apiErr.Kind)
	assert.Len(t, notifier.Errors(), 1)

	// задержки 1x, 2x, 4x базовой (5ms в тестах)
	assert.GreaterOrEqual(t, elapsed, 35*time.Millisecond)
}

func TestRequest_SilentSuppressesNotification(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	c, _, notifier := newTestClient(t, server.URL, "secret")

	err := c.Get(context.Background(), "/api/subjects", nil, &RequestOptions{Silent: true})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindNotFound, apiErr.Kind)
	assert.Empty(t, notifier.Errors())
}

func TestRequest_NoAuthSkipsToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	c, _, _ := newTestClient(t, server.URL, "")

	err := c.Post(context.Background(), "/auth/login", map[string]string{"email": "x@y.z"}, nil, &RequestOptions{NoAuth: true})
	require.NoError(t, err)
}

func TestUpload_MultipartContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType := r.Header.Get("Content-Type")

		// Content-Type с boundary от multipart.Writer, а не application/json
		assert.True(t, strings.HasPrefix(contentType, "multipart/form-data; boundary="), contentType)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "s1", r.FormValue("subject_id"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()

		assert.Equal(t, "paper.pdf", header.Filename)

		w.Write([]byte(`{"id": "p1", "file_name": "paper.pdf"}`))
	}))
	defer server.Close()

	c, _, _ := newTestClient(t, server.URL, "secret")

	var out struct {
		ID string `json:"id"`
	}
	err := c.Upload(
		context.Background(),
		"/api/papers/upload",
		"paper.pdf",
		[]byte("%PDF-1.4"),
		map[string]string{"subject_id": "s1"},
		&out,
		nil,
	)
	require.NoError(t, err)
	assert.Equal(t, "p1", out.ID)
}

func TestRequest_ContextCancelStopsRetries(t *testing.T) {
	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	tokens := auth.NewMemoryTokenStore("secret")

	c, err := NewHTTPClient(Options{
		BaseURL:        server.URL,
		Tokens:         tokens,
		Notifier:       notify.NewRecorder(),
		RetryBaseDelay: time.Hour,
	})
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err = c.Get(ctx, "/api/subjects", nil, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, int64(1), calls.Load())
}
