package storage

import (
	"context"
	"errors"

	"github.com/Ashutosh3021/PrepIQ-sub001/internal/domain/models"
)

// Storage определяет интерфейс локального архива: завершённые попытки
// тестов и списки прогресса по предметам.
type Storage interface {
	// SaveAttempt сохраняет завершённую попытку.
	SaveAttempt(ctx context.Context, attempt *models.AttemptModel) error

	// GetAttempt возвращает попытку по ID.
	GetAttempt(ctx context.Context, id string) (*models.AttemptModel, error)

	// ListAttempts возвращает попытки по предмету,
	// от новых к старым.
	ListAttempts(ctx context.Context, subjectID string) ([]*models.AttemptModel, error)

	// AddProgressItem добавляет пункт прогресса по предмету.
	// Возвращает присвоенный ID.
	AddProgressItem(ctx context.Context, item *models.ProgressItemModel) (int64, error)

	// ListProgress возвращает пункты прогресса по предмету.
	ListProgress(ctx context.Context, subjectID string) ([]*models.ProgressItemModel, error)

	// SetProgressDone отмечает пункт прогресса выполненным или нет.
	SetProgressDone(ctx context.Context, id int64, done bool) error
}

// Ошибки хранилища
var ErrNotFound = errors.New("not found")
