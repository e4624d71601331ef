package services

// Модели ответов бэкенда. Клиент не валидирует и не пересчитывает
// их содержимое, только придаёт форму (type-shaping).

// Profile представляет профиль пользователя.
type Profile struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	ExamBoard string `json:"exam_board"`
	GradeYear string `json:"grade_year"`
}

// WizardStatus представляет состояние онбординга.
type WizardStatus struct {
	Completed   bool `json:"completed"`
	CurrentStep int  `json:"current_step"`
}

// WizardStep1 — данные первого шага онбординга (о себе).
type WizardStep1 struct {
	FullName  string `json:"full_name"`
	GradeYear string `json:"grade_year"`
	ExamBoard string `json:"exam_board"`
}

// WizardStep2 — данные второго шага онбординга (предметы).
type WizardStep2 struct {
	Subjects []SubjectInput `json:"subjects"`
}

// WizardStep3 — данные третьего шага онбординга (цели).
type WizardStep3 struct {
	StudyHoursPerWeek int    `json:"study_hours_per_week"`
	TargetGrade       string `json:"target_grade"`
}

// Subject представляет предмет пользователя.
type Subject struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ExamBoard string `json:"exam_board"`
	Level     string `json:"level"`
	ExamDate  string `json:"exam_date"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// SubjectInput — тело создания/обновления предмета.
type SubjectInput struct {
	Name      string `json:"name"`
	ExamBoard string `json:"exam_board"`
	Level     string `json:"level"`
	ExamDate  string `json:"exam_date,omitempty"`
}

// QuestionType — тип вопроса.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionFreeText       QuestionType = "free_text"
	QuestionNumeric        QuestionType = "numeric"
)

// Question представляет вопрос теста или банка вопросов.
type Question struct {
	ID      string       `json:"id"`
	Text    string       `json:"text"`
	Type    QuestionType `json:"type"`
	Options []string     `json:"options,omitempty"`
	Marks   int          `json:"marks"`
	Topic   string       `json:"topic,omitempty"`
}

// GenerateTestRequest — тело запроса генерации теста.
type GenerateTestRequest struct {
	SubjectID        string `json:"subject_id"`
	NumQuestions     int    `json:"num_questions"`
	Difficulty       string `json:"difficulty"`
	TimeLimitMinutes int    `json:"time_limit_minutes"`
	QuestionSource   string `json:"question_source"`
}

// GeneratedTest — ответ генерации теста.
type GeneratedTest struct {
	TestID           string     `json:"test_id"`
	Questions        []Question `json:"questions"`
	TimeLimitMinutes int        `json:"time_limit_minutes"`
	TotalMarks       int        `json:"total_marks"`
}

// SubmitTestRequest — тело отправки ответов.
type SubmitTestRequest struct {
	Answers          map[string]string `json:"answers"`
	TimeTakenSeconds int               `json:"time_taken_seconds"`
}

// QuestionResult — результат по одному вопросу.
type QuestionResult struct {
	QuestionID string `json:"question_id"`
	Correct    bool   `json:"correct"`
	Marks      int    `json:"marks"`
	Feedback   string `json:"feedback,omitempty"`
}

// TestResult — результат проверки теста. Вся арифметика оценок
// принадлежит серверу.
type TestResult struct {
	Score        int              `json:"score"`
	TotalMarks   int              `json:"total_marks"`
	Percentage   float64          `json:"percentage"`
	Grade        string           `json:"grade"`
	Results      []QuestionResult `json:"results"`
	WeakTopics   []string         `json:"weak_topics"`
	StrongTopics []string         `json:"strong_topics"`
}

// Prediction представляет предсказание важности темы/вопроса.
type Prediction struct {
	ID         string  `json:"id"`
	SubjectID  string  `json:"subject_id"`
	Topic      string  `json:"topic"`
	Likelihood float64 `json:"likelihood"`
	Reasoning  string  `json:"reasoning,omitempty"`
	CreatedAt  string  `json:"created_at"`
}

// QuestionPaper представляет загруженный PDF с прошлой работой.
type QuestionPaper struct {
	ID         string `json:"id"`
	SubjectID  string `json:"subject_id"`
	FileName   string `json:"file_name"`
	Year       string `json:"year,omitempty"`
	UploadedAt string `json:"uploaded_at"`
}
