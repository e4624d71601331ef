package models

import (
	"time"
)

// Файл для работы с моделями локального архива, которые доступны извне.
// Приложение создаёт экземпляры моделей, заполняет их данными и
// передаёт в соответствующую функцию хранилища.

// AttemptModel определяет модель для таблицы завершённых попыток
type AttemptModel struct {
	ID               string
	TestID           string
	SubjectID        string
	Score            int
	TotalMarks       int
	Percentage       float64
	Grade            string
	WeakTopics       []string
	StrongTopics     []string
	TimeTakenSeconds int
	FinishedAt       time.Time
}

// ProgressItemModel определяет модель для таблицы пунктов прогресса по предмету
type ProgressItemModel struct {
	ID        int64
	SubjectID string
	Title     string
	Done      bool
	CreatedAt time.Time
}
