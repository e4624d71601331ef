package notify

import (
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"
)

// Notifier определяет интерфейс канала уведомлений пользователя.
// Клиент API сообщает через него о терминальных ошибках запросов.
type Notifier interface {
	// Error показывает пользователю сообщение об ошибке.
	Error(message string)

	// Info показывает пользователю информационное сообщение.
	Info(message string)
}

// ConsoleNotifier реализует Notifier через вывод в терминал.
type ConsoleNotifier struct {
	out io.Writer
}

// NewConsoleNotifier создаёт новый ConsoleNotifier, пишущий в out.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	return &ConsoleNotifier{out: out}
}

// Error показывает сообщение об ошибке.
func (n *ConsoleNotifier) Error(message string) {
	fmt.Fprintln(n.out, color.RedString("ошибка:"), message)
}

// Info показывает информационное сообщение.
func (n *ConsoleNotifier) Info(message string) {
	fmt.Fprintln(n.out, color.HiBlueString("инфо:"), message)
}

// Recorder реализует Notifier, запоминая сообщения. Используется в тестах.
type Recorder struct {
	mu     sync.Mutex
	errors []string
	infos  []string
}

// NewRecorder создаёт новый Recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// Error запоминает сообщение об ошибке.
func (r *Recorder) Error(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.errors = append(r.errors, message)
}

// Info запоминает информационное сообщение.
func (r *Recorder) Info(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.infos = append(r.infos, message)
}

// Errors возвращает копию записанных сообщений об ошибках.
func (r *Recorder) Errors() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string{}, r.errors...)
}

// Infos возвращает копию записанных информационных сообщений.
func (r *Recorder) Infos() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]string{}, r.infos...)
}
