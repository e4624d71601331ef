package exam

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Ashutosh3021/PrepIQ-sub001/internal/services"
)

// SessionOptions содержит настройки сессии.
type SessionOptions struct {
	// TickInterval — период тика обратного отсчёта.
	// По умолчанию секунда, в тестах уменьшается.
	TickInterval time.Duration
}

// Session реализует машину состояний одной попытки пробного теста:
// Configuring → Running → Submitting → Scored.
//
// Все события (тики, истечение времени, результат) отдаются в канал,
// который возвращает Start. Отправка в канал и его закрытие происходят
// только под mu, поэтому ни одна горутина не пишет в закрытый канал.
type Session struct {
	api          TestAPI
	tickInterval time.Duration

	mu             sync.Mutex
	status         Status
	draft          Draft
	attemptID      string
	test           *services.GeneratedTest
	questionIDs    map[string]struct{}
	answers        map[string]string
	current        int
	limitSeconds   int
	remaining      int
	submitInFlight bool
	result         *services.TestResult
	events         chan Event
	eventsClosed   bool
}

// NewSession создаёт новую сессию в состоянии Configuring.
func NewSession(api TestAPI, opts SessionOptions) *Session {
	tick := opts.TickInterval
	if tick <= 0 {
		tick = time.Second
	}

	return &Session{
		api:          api,
		tickInterval: tick,
		status:       StatusConfiguring,
	}
}

// Status возвращает текущее состояние сессии.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.status
}

// Draft возвращает черновик настроек теста.
func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.draft
}

// SetDraft сохраняет черновик настроек. Разрешено только в Configuring.
func (s *Session) SetDraft(draft Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusConfiguring {
		return ErrWrongStatus
	}

	s.draft = draft

	return nil
}

// Start валидирует черновик, запрашивает генерацию теста и переводит
// сессию в Running, запуская обратный отсчёт. При ошибке сессия
// остаётся в Configuring.
// Возвращает канал событий сессии.
func (s *Session) Start(ctx context.Context) (<-chan Event, error) {
	s.mu.Lock()

	if s.status != StatusConfiguring {
		s.mu.Unlock()
		return nil, ErrWrongStatus
	}
	draft := s.draft

	s.mu.Unlock()

	if err := isCorrectDraft(draft); err != nil {
		return nil, err
	}

	test, err := s.api.GenerateTest(ctx, services.GenerateTestRequest{
		SubjectID:        draft.SubjectID,
		NumQuestions:     draft.NumQuestions,
		Difficulty:       draft.Difficulty,
		TimeLimitMinutes: draft.TimeLimitMinutes,
		QuestionSource:   draft.QuestionSource,
	})
	if err != nil {
		return nil, err
	}

	if err := isCorrectTest(test); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusConfiguring {
		return nil, ErrWrongStatus
	}

	minutes := test.TimeLimitMinutes
	if minutes == 0 {
		minutes = draft.TimeLimitMinutes
	}

	questionIDs := make(map[string]struct{}, len(test.Questions))
	for _, question := range test.Questions {
		questionIDs[question.ID] = struct{}{}
	}

	s.attemptID = uuid.NewString()
	s.test = test
	s.questionIDs = questionIDs
	s.answers = make(map[string]string, len(test.Questions))
	s.current = 0
	s.limitSeconds = minutes * 60
	s.remaining = s.limitSeconds
	s.result = nil
	s.submitInFlight = false
	s.events = make(chan Event, maxCountOfEvents)
	s.eventsClosed = false
	s.status = StatusRunning

	go s.runCountdown(s.attemptID, s.events)

	return s.events, nil
}

// runCountdown ведёт обратный отсчёт: раз в тик уменьшает оставшееся
// время и при нуле ровно один раз переводит сессию в Submitting
// с автоматической отправкой накопленных ответов.
func (s *Session) runCountdown(attemptID string, events chan Event) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()

		// сессию сбросили или отправка уже началась
		if s.attemptID != attemptID || s.status != StatusRunning {
			s.mu.Unlock()
			return
		}

		s.remaining--
		if s.remaining > 0 {
			events <- Event{Type: EventTypeTick, RemainingSec: s.remaining}
			s.mu.Unlock()

			continue
		}

		s.remaining = 0
		s.status = StatusSubmitting
		events <- Event{Type: EventTypeTimeUp}

		s.mu.Unlock()

		_ = s.Submit(context.Background())

		return
	}
}

// SetAnswer сохраняет ответ на вопрос questionID. Повторный вызов с тем
// же значением ничего не меняет, перезапись разрешена. На отсчёт
// времени не влияет.
func (s *Session) SetAnswer(questionID, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRunning {
		return ErrWrongStatus
	}

	if _, ok := s.questionIDs[questionID]; !ok {
		return ErrValidation
	}

	s.answers[questionID] = value

	return nil
}

// GoToNextQuestion сдвигает указатель текущего вопроса вперёд.
// На последнем вопросе — no-op.
func (s *Session) GoToNextQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRunning {
		return ErrWrongStatus
	}

	if s.current < len(s.test.Questions)-1 {
		s.current++
	}

	return nil
}

// GoToPrevQuestion сдвигает указатель текущего вопроса назад.
// На первом вопросе — no-op.
func (s *Session) GoToPrevQuestion() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != StatusRunning {
		return ErrWrongStatus
	}

	if s.current > 0 {
		s.current--
	}

	return nil
}

// CurrentIndex возвращает номер текущего вопроса (0-based).
func (s *Session) CurrentIndex() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.current
}

// CurrentQuestion возвращает текущий вопрос.
// Возвращает false, если тест не запущен.
func (s *Session) CurrentQuestion() (services.Question, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.test == nil || s.current >= len(s.test.Questions) {
		return services.Question{}, false
	}

	return s.test.Questions[s.current], true
}

// RemainingSeconds возвращает оставшееся время в секундах.
func (s *Session) RemainingSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.remaining
}

// ElapsedSeconds возвращает потраченное время в секундах.
func (s *Session) ElapsedSeconds() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.limitSeconds - s.remaining
}

// Test возвращает сгенерированный тест текущей попытки.
func (s *Session) Test() *services.GeneratedTest {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.test
}

// Answers возвращает копию накопленных ответов.
func (s *Session) Answers() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	answers := make(map[string]string, len(s.answers))
	for id, value := range s.answers {
		answers[id] = value
	}

	return answers
}

// Result возвращает результат проверки. Nil до состояния Scored.
func (s *Session) Result() *services.TestResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.result
}

// AttemptID возвращает локальный идентификатор попытки.
func (s *Session) AttemptID() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.attemptID
}

// Submit отправляет ответы на проверку и переводит сессию в Scored.
// Одновременно может идти не больше одной отправки: повторный вызов
// (от таймера или пользователя) возвращает ErrSubmitInFlight.
// При неудаче сессия остаётся в Submitting, повторная отправка —
// забота вызывающего кода.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()

	if s.status != StatusRunning && s.status != StatusSubmitting {
		s.mu.Unlock()
		return ErrWrongStatus
	}

	if s.submitInFlight {
		s.mu.Unlock()
		return ErrSubmitInFlight
	}

	s.submitInFlight = true
	s.status = StatusSubmitting

	attemptID := s.attemptID
	testID := s.test.TestID
	events := s.events

	answers := make(map[string]string, len(s.answers))
	for id, value := range s.answers {
		answers[id] = value
	}

	timeTaken := s.limitSeconds - s.remaining

	s.mu.Unlock()

	result, err := s.api.SubmitTest(ctx, testID, services.SubmitTestRequest{
		Answers:          answers,
		TimeTakenSeconds: timeTaken,
	})

	s.mu.Lock()
	defer s.mu.Unlock()

	// сессию сбросили, пока шла отправка — результат отбрасывается
	if s.attemptID != attemptID {
		return nil
	}

	s.submitInFlight = false

	if err != nil {
		if !s.eventsClosed {
			events <- Event{Type: EventTypeSubmitFailed, Err: err}
		}

		return err
	}

	s.status = StatusScored
	s.result = result

	if !s.eventsClosed {
		events <- Event{Type: EventTypeScored, Result: result}
		close(events)
		s.eventsClosed = true
	}

	return nil
}

// Reset возвращает сессию в Configuring со свежим черновиком.
// Запущенный отсчёт останавливается, незавершённая отправка
// продолжит выполняться, но её результат будет отброшен.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.events != nil && !s.eventsClosed {
		close(s.events)
		s.eventsClosed = true
	}

	s.attemptID = ""
	s.status = StatusConfiguring
	s.draft = Draft{}
	s.test = nil
	s.questionIDs = nil
	s.answers = nil
	s.current = 0
	s.limitSeconds = 0
	s.remaining = 0
	s.submitInFlight = false
	s.result = nil
	s.events = nil
}
