package exam

import (
	"context"
	"errors"

	"github.com/Ashutosh3021/PrepIQ-sub001/internal/services"
)

// Status — состояние сессии пробного теста.
// Переходы только по цепочке Configuring → Running → Submitting → Scored,
// из Scored сессия сбрасывается обратно в Configuring.
type Status string

const (
	StatusConfiguring Status = "configuring"
	StatusRunning     Status = "running"
	StatusSubmitting  Status = "submitting"
	StatusScored      Status = "scored"
)

// Draft — черновик настроек теста, заполняется в состоянии Configuring.
type Draft struct {
	SubjectID        string
	NumQuestions     int
	Difficulty       string
	TimeLimitMinutes int
	QuestionSource   string
}

// Допустимые значения сложности и источника вопросов.
var (
	Difficulties    = []string{"easy", "medium", "hard", "mixed"}
	QuestionSources = []string{"past_papers", "ai_generated", "mixed"}
)

// EventType — тип события сессии.
type EventType string

const (
	EventTypeTick         EventType = "tick"
	EventTypeTimeUp       EventType = "time_up"
	EventTypeScored       EventType = "scored"
	EventTypeSubmitFailed EventType = "submit_failed"
)

// Event представляет событие сессии: секундный тик обратного отсчёта,
// истечение времени, результат или неудачную отправку.
type Event struct {
	Type         EventType
	RemainingSec int
	Result       *services.TestResult
	Err          error
}

// TestAPI — нужная сессии часть API бэкенда.
type TestAPI interface {
	// GenerateTest запрашивает генерацию пробного теста.
	GenerateTest(ctx context.Context, req services.GenerateTestRequest) (*services.GeneratedTest, error)

	// SubmitTest отправляет ответы на проверку.
	SubmitTest(ctx context.Context, testID string, req services.SubmitTestRequest) (*services.TestResult, error)
}

// Ошибки сессии
var (
	ErrWrongStatus    = errors.New("operation is not allowed in current status")
	ErrSubmitInFlight = errors.New("submission already in flight")
	ErrValidation     = errors.New("validation error")
)

// Лимит буфера канала событий. Тиков не больше, чем секунд в лимите
// теста, поэтому буфер с запасом.
const maxCountOfEvents = 4096
