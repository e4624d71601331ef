package services

import (
	"context"
	"fmt"
	"net/url"

	"github.com/Ashutosh3021/PrepIQ-sub001/internal/client"
)

// Service — типизированные обёртки над эндпоинтами PrepIQ API.
// Каждый метод — тонкая обёртка над client.Client, вся авторизация,
// повторы и классификация ошибок живут в клиенте.
type Service struct {
	api client.Client
}

// New создаёт новый Service поверх клиента api.
func New(api client.Client) *Service {
	return &Service{api: api}
}

// GetProfile возвращает профиль текущего пользователя.
func (s *Service) GetProfile(ctx context.Context) (*Profile, error) {
	var profile Profile
	if err := s.api.Get(ctx, "/auth/profile", &profile, nil); err != nil {
		return nil, err
	}

	return &profile, nil
}

// UpdateProfile обновляет профиль текущего пользователя.
func (s *Service) UpdateProfile(ctx context.Context, profile *Profile) (*Profile, error) {
	var updated Profile
	if err := s.api.Put(ctx, "/auth/profile", profile, &updated, nil); err != nil {
		return nil, err
	}

	return &updated, nil
}

// GetWizardStatus возвращает состояние онбординга.
func (s *Service) GetWizardStatus(ctx context.Context) (*WizardStatus, error) {
	var status WizardStatus
	if err := s.api.Get(ctx, "/wizard/status", &status, nil); err != nil {
		return nil, err
	}

	return &status, nil
}

// SubmitWizardStep1 отправляет первый шаг онбординга.
func (s *Service) SubmitWizardStep1(ctx context.Context, step WizardStep1) error {
	return s.api.Post(ctx, "/wizard/step1", step, nil, nil)
}

// SubmitWizardStep2 отправляет второй шаг онбординга.
func (s *Service) SubmitWizardStep2(ctx context.Context, step WizardStep2) error {
	return s.api.Post(ctx, "/wizard/step2", step, nil, nil)
}

// SubmitWizardStep3 отправляет третий шаг онбординга.
func (s *Service) SubmitWizardStep3(ctx context.Context, step WizardStep3) error {
	return s.api.Post(ctx, "/wizard/step3", step, nil, nil)
}

// CompleteWizard завершает онбординг.
func (s *Service) CompleteWizard(ctx context.Context) error {
	return s.api.Post(ctx, "/wizard/complete", nil, nil, nil)
}

// ListSubjects возвращает предметы пользователя.
func (s *Service) ListSubjects(ctx context.Context) ([]Subject, error) {
	var subjects []Subject
	if err := s.api.Get(ctx, "/api/subjects", &subjects, nil); err != nil {
		return nil, err
	}

	return subjects, nil
}

// CreateSubject создаёт предмет.
func (s *Service) CreateSubject(ctx context.Context, input SubjectInput) (*Subject, error) {
	var subject Subject
	if err := s.api.Post(ctx, "/api/subjects", input, &subject, nil); err != nil {
		return nil, err
	}

	return &subject, nil
}

// UpdateSubject обновляет предмет.
func (s *Service) UpdateSubject(ctx context.Context, id string, input SubjectInput) (*Subject, error) {
	var subject Subject
	if err := s.api.Put(ctx, "/api/subjects/"+url.PathEscape(id), input, &subject, nil); err != nil {
		return nil, err
	}

	return &subject, nil
}

// DeleteSubject удаляет предмет.
func (s *Service) DeleteSubject(ctx context.Context, id string) error {
	return s.api.Delete(ctx, "/api/subjects/"+url.PathEscape(id), nil)
}

// GenerateTest запрашивает генерацию пробного теста.
func (s *Service) GenerateTest(ctx context.Context, req GenerateTestRequest) (*GeneratedTest, error) {
	var test GeneratedTest
	if err := s.api.Post(ctx, "/tests/generate", req, &test, nil); err != nil {
		return nil, err
	}

	return &test, nil
}

// SubmitTest отправляет ответы на проверку.
func (s *Service) SubmitTest(ctx context.Context, testID string, req SubmitTestRequest) (*TestResult, error) {
	endpoint := fmt.Sprintf("/tests/%s/submit", url.PathEscape(testID))

	var result TestResult
	if err := s.api.Post(ctx, endpoint, req, &result, nil); err != nil {
		return nil, err
	}

	return &result, nil
}

// GetImportantQuestions возвращает важные вопросы по предмету.
func (s *Service) GetImportantQuestions(ctx context.Context, subjectID string) ([]Question, error) {
	endpoint := "/questions/important?subject_id=" + url.QueryEscape(subjectID)

	var questions []Question
	if err := s.api.Get(ctx, endpoint, &questions, nil); err != nil {
		return nil, err
	}

	return questions, nil
}

// SearchQuestions ищет вопросы по строке query.
func (s *Service) SearchQuestions(ctx context.Context, query string) ([]Question, error) {
	endpoint := "/questions/search?q=" + url.QueryEscape(query)

	var questions []Question
	if err := s.api.Get(ctx, endpoint, &questions, nil); err != nil {
		return nil, err
	}

	return questions, nil
}

// ListPredictions возвращает предсказания по предмету.
func (s *Service) ListPredictions(ctx context.Context, subjectID string) ([]Prediction, error) {
	endpoint := "/api/predictions?subject_id=" + url.QueryEscape(subjectID)

	var predictions []Prediction
	if err := s.api.Get(ctx, endpoint, &predictions, nil); err != nil {
		return nil, err
	}

	return predictions, nil
}

// GeneratePredictions запрашивает пересчёт предсказаний по предмету.
func (s *Service) GeneratePredictions(ctx context.Context, subjectID string) ([]Prediction, error) {
	body := map[string]string{"subject_id": subjectID}

	var predictions []Prediction
	if err := s.api.Post(ctx, "/api/predictions/generate", body, &predictions, nil); err != nil {
		return nil, err
	}

	return predictions, nil
}

// UploadPaper загружает PDF прошлой работы по предмету.
func (s *Service) UploadPaper(
	ctx context.Context,
	subjectID string,
	fileName string,
	data []byte,
) (*QuestionPaper, error) {
	fields := map[string]string{"subject_id": subjectID}

	var paper QuestionPaper
	if err := s.api.Upload(ctx, "/api/papers/upload", fileName, data, fields, &paper, nil); err != nil {
		return nil, err
	}

	return &paper, nil
}
