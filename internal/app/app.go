package app

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/Ashutosh3021/PrepIQ-sub001/internal/domain/models"
	"github.com/Ashutosh3021/PrepIQ-sub001/internal/exam"
	"github.com/Ashutosh3021/PrepIQ-sub001/internal/notify"
	"github.com/Ashutosh3021/PrepIQ-sub001/internal/services"
	"github.com/Ashutosh3021/PrepIQ-sub001/internal/storage"
)

// App связывает сервисы API, сессию теста и локальный архив
// в интерактивную консольную оболочку.
type App struct {
	api      *services.Service
	session  *exam.Session
	archive  storage.Storage
	notifier notify.Notifier
	in       *bufio.Scanner
	out      io.Writer
}

// New создаёт новое приложение.
func New(
	api *services.Service,
	session *exam.Session,
	archive storage.Storage,
	notifier notify.Notifier,
	in io.Reader,
	out io.Writer,
) *App {
	return &App{
		api:      api,
		session:  session,
		archive:  archive,
		notifier: notifier,
		in:       bufio.NewScanner(in),
		out:      out,
	}
}

// Run запускает оболочку: онбординг при необходимости, выбор предмета,
// настройка и прохождение пробного теста.
func (a *App) Run(ctx context.Context) error {
	fmt.Fprint(a.out, msgWelcome)
	fmt.Fprintln(a.out)

	if err := a.ensureWizard(ctx); err != nil {
		return err
	}

	subject, err := a.chooseSubject(ctx)
	if err != nil {
		return err
	}

	if err := a.configureSession(subject); err != nil {
		return err
	}

	return a.runTest(ctx, subject)
}

// ensureWizard проводит пользователя через онбординг, если он не пройден.
func (a *App) ensureWizard(ctx context.Context) error {
	status, err := a.api.GetWizardStatus(ctx)
	if err != nil {
		return err
	}

	if status.Completed {
		return nil
	}

	fmt.Fprintln(a.out, msgWizardIntro)

	step1 := services.WizardStep1{
		FullName:  a.prompt("Ваше имя: "),
		GradeYear: a.prompt("Класс/курс: "),
		ExamBoard: a.prompt("Экзаменационная комиссия: "),
	}
	if err := a.api.SubmitWizardStep1(ctx, step1); err != nil {
		return err
	}

	subjectName := a.prompt("Первый предмет: ")
	step2 := services.WizardStep2{
		Subjects: []services.SubjectInput{{Name: subjectName}},
	}
	if err := a.api.SubmitWizardStep2(ctx, step2); err != nil {
		return err
	}

	hours, _ := strconv.Atoi(a.prompt("Часов занятий в неделю: "))
	step3 := services.WizardStep3{
		StudyHoursPerWeek: hours,
		TargetGrade:       a.prompt("Целевая оценка: "),
	}
	if err := a.api.SubmitWizardStep3(ctx, step3); err != nil {
		return err
	}

	if err := a.api.CompleteWizard(ctx); err != nil {
		return err
	}

	fmt.Fprintln(a.out, msgWizardDone)

	return nil
}

// chooseSubject показывает предметы пользователя и читает выбор.
func (a *App) chooseSubject(ctx context.Context) (*services.Subject, error) {
	subjects, err := a.api.ListSubjects(ctx)
	if err != nil {
		return nil, err
	}

	if len(subjects) == 0 {
		fmt.Fprintln(a.out, msgNoSubjects)
		return nil, errors.New("no subjects")
	}

	fmt.Fprintln(a.out, msgChooseSubject)
	for i, subject := range subjects {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, subject.Name)
	}

	for {
		n, err := strconv.Atoi(a.prompt("> "))
		if err == nil && n >= 1 && n <= len(subjects) {
			return &subjects[n-1], nil
		}
	}
}

// configureSession читает настройки теста и заполняет черновик сессии.
func (a *App) configureSession(subject *services.Subject) error {
	num, _ := strconv.Atoi(a.prompt("Количество вопросов: "))
	minutes, _ := strconv.Atoi(a.prompt("Лимит времени, минут: "))
	difficulty := a.prompt("Сложность (easy/medium/hard/mixed): ")
	source := a.prompt("Источник вопросов (past_papers/ai_generated/mixed): ")

	return a.session.SetDraft(exam.Draft{
		SubjectID:        subject.ID,
		NumQuestions:     num,
		Difficulty:       difficulty,
		TimeLimitMinutes: minutes,
		QuestionSource:   source,
	})
}

// runTest запускает тест и ведёт диалог до результата.
func (a *App) runTest(ctx context.Context, subject *services.Subject) error {
	events, err := a.session.Start(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, msgTestStarted)
	a.showCurrentQuestion()

	inputs := make(chan string)
	go func() {
		defer close(inputs)

		for a.in.Scan() {
			inputs <- strings.TrimSpace(a.in.Text())
		}
	}()

	for {
		select {
		case event, ok := <-events:
			if !ok {
				return nil
			}

			done, err := a.handleEvent(ctx, subject, event)
			if done || err != nil {
				return err
			}
		case line, ok := <-inputs:
			if !ok {
				return a.session.Submit(ctx)
			}

			a.handleInput(ctx, line)
		}
	}
}

// handleEvent обрабатывает одно событие сессии.
// Возвращает true, когда тест завершён.
func (a *App) handleEvent(ctx context.Context, subject *services.Subject, event exam.Event) (bool, error) {
	switch event.Type {
	case exam.EventTypeTick:
		if event.RemainingSec%60 == 0 {
			fmt.Fprintf(a.out, "Осталось %d мин.\n", event.RemainingSec/60)
		}
	case exam.EventTypeTimeUp:
		fmt.Fprintln(a.out, msgTimeUp)
	case exam.EventTypeSubmitFailed:
		fmt.Fprintln(a.out, msgSubmitFailed)
	case exam.EventTypeScored:
		a.showResult(event.Result)

		if err := a.archiveResult(ctx, subject, event.Result); err != nil {
			slog.Error("failed to archive result", "err", err)
		}

		return true, nil
	}

	return false, nil
}

// handleInput обрабатывает строку пользователя во время теста.
func (a *App) handleInput(ctx context.Context, line string) {
	switch line {
	case "":
	case "/next":
		_ = a.session.GoToNextQuestion()
		a.showCurrentQuestion()
	case "/prev":
		_ = a.session.GoToPrevQuestion()
		a.showCurrentQuestion()
	case "/submit":
		if err := a.session.Submit(ctx); err != nil && !errors.Is(err, exam.ErrSubmitInFlight) {
			slog.Debug("submit failed", "err", err)
		}
	default:
		question, ok := a.session.CurrentQuestion()
		if !ok {
			return
		}

		if err := a.session.SetAnswer(question.ID, line); err != nil {
			a.notifier.Error(err.Error())
			return
		}

		fmt.Fprintln(a.out, msgAnswerAcceptance)
	}
}

// showCurrentQuestion печатает текущий вопрос.
func (a *App) showCurrentQuestion() {
	question, ok := a.session.CurrentQuestion()
	if !ok {
		return
	}

	fmt.Fprintf(a.out, "\nВопрос %d (%d балл.): %s\n",
		a.session.CurrentIndex()+1, question.Marks, question.Text)

	for i, option := range question.Options {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, option)
	}
}

// showResult печатает результат теста.
func (a *App) showResult(result *services.TestResult) {
	fmt.Fprintf(a.out, "\nРезультат: %d/%d (%.1f%%), оценка %s\n",
		result.Score, result.TotalMarks, result.Percentage, result.Grade)

	if len(result.WeakTopics) > 0 {
		fmt.Fprintln(a.out, "Слабые темы:", strings.Join(result.WeakTopics, ", "))
	}
	if len(result.StrongTopics) > 0 {
		fmt.Fprintln(a.out, "Сильные темы:", strings.Join(result.StrongTopics, ", "))
	}
}

// archiveResult сохраняет результат в локальный архив.
func (a *App) archiveResult(ctx context.Context, subject *services.Subject, result *services.TestResult) error {
	test := a.session.Test()
	if test == nil {
		return nil
	}

	return a.archive.SaveAttempt(ctx, &models.AttemptModel{
		ID:               a.session.AttemptID(),
		TestID:           test.TestID,
		SubjectID:        subject.ID,
		Score:            result.Score,
		TotalMarks:       result.TotalMarks,
		Percentage:       result.Percentage,
		Grade:            result.Grade,
		WeakTopics:       result.WeakTopics,
		StrongTopics:     result.StrongTopics,
		TimeTakenSeconds: a.session.ElapsedSeconds(),
		FinishedAt:       time.Now(),
	})
}

// prompt печатает приглашение и читает строку.
func (a *App) prompt(text string) string {
	fmt.Fprint(a.out, text)

	if !a.in.Scan() {
		return ""
	}

	return strings.TrimSpace(a.in.Text())
}
