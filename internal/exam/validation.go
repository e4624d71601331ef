package exam

import (
	"fmt"

	"github.com/Ashutosh3021/PrepIQ-sub001/internal/services"
)

// isCorrectDraft проверяет на корректность черновик настроек теста
func isCorrectDraft(draft Draft) error {
	if draft.SubjectID == "" {
		return fmt.Errorf("%w, missing subject", ErrValidation)
	}

	if draft.NumQuestions < 1 {
		return fmt.Errorf("%w, need at least one question", ErrValidation)
	}

	if !contains(Difficulties, draft.Difficulty) {
		return fmt.Errorf("%w, unknown difficulty %q", ErrValidation, draft.Difficulty)
	}

	if draft.TimeLimitMinutes < 1 {
		return fmt.Errorf("%w, time limit must be at least one minute", ErrValidation)
	}

	if !contains(QuestionSources, draft.QuestionSource) {
		return fmt.Errorf("%w, unknown question source %q", ErrValidation, draft.QuestionSource)
	}

	return nil
}

// isCorrectTest проверяет на корректность сгенерированный сервером тест
func isCorrectTest(test *services.GeneratedTest) error {
	if test == nil {
		return fmt.Errorf("%w, test object is nil", ErrValidation)
	}

	if test.TestID == "" {
		return fmt.Errorf("%w, missing field test_id", ErrValidation)
	}

	if len(test.Questions) == 0 {
		return fmt.Errorf("%w, need at least one question", ErrValidation)
	}

	seen := make(map[string]struct{}, len(test.Questions))
	for i, question := range test.Questions {
		if question.ID == "" {
			return fmt.Errorf("%w, missing id of %d question", ErrValidation, i)
		}

		if _, ok := seen[question.ID]; ok {
			return fmt.Errorf("%w, duplicated id of %d question", ErrValidation, i)
		}
		seen[question.ID] = struct{}{}

		if question.Type == services.QuestionMultipleChoice && len(question.Options) < 2 {
			return fmt.Errorf("%w, amount of options must be at least two in %d question", ErrValidation, i)
		}
	}

	return nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}

	return false
}
