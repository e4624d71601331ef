package storage

import (
	"context"
	"sort"
	"sync"

	"github.com/Ashutosh3021/PrepIQ-sub001/internal/domain/models"
)

// MemoryStorage реализует Storage в памяти.
type MemoryStorage struct {
	mu       sync.Mutex
	attempts map[string]*models.AttemptModel
	progress map[int64]*models.ProgressItemModel
	nextID   int64
}

// NewMemoryStorage создаёт новый MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		attempts: make(map[string]*models.AttemptModel),
		progress: make(map[int64]*models.ProgressItemModel),
		nextID:   1,
	}
}

// SaveAttempt сохраняет завершённую попытку.
func (s *MemoryStorage) SaveAttempt(ctx context.Context, attempt *models.AttemptModel) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *attempt
	s.attempts[attempt.ID] = &copied

	return nil
}

// GetAttempt возвращает попытку по ID.
func (s *MemoryStorage) GetAttempt(ctx context.Context, id string) (*models.AttemptModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempt, ok := s.attempts[id]
	if !ok {
		return nil, ErrNotFound
	}

	copied := *attempt

	return &copied, nil
}

// ListAttempts возвращает попытки по предмету, от новых к старым.
func (s *MemoryStorage) ListAttempts(ctx context.Context, subjectID string) ([]*models.AttemptModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempts := make([]*models.AttemptModel, 0)
	for _, attempt := range s.attempts {
		if attempt.SubjectID != subjectID {
			continue
		}

		copied := *attempt
		attempts = append(attempts, &copied)
	}

	sort.Slice(attempts, func(i, j int) bool {
		return attempts[i].FinishedAt.After(attempts[j].FinishedAt)
	})

	return attempts, nil
}

// AddProgressItem добавляет пункт прогресса по предмету.
func (s *MemoryStorage) AddProgressItem(ctx context.Context, item *models.ProgressItemModel) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *item
	copied.ID = s.nextID
	s.nextID++

	s.progress[copied.ID] = &copied

	return copied.ID, nil
}

// ListProgress возвращает пункты прогресса по предмету.
func (s *MemoryStorage) ListProgress(ctx context.Context, subjectID string) ([]*models.ProgressItemModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]*models.ProgressItemModel, 0)
	for _, item := range s.progress {
		if item.SubjectID != subjectID {
			continue
		}

		copied := *item
		items = append(items, &copied)
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].ID < items[j].ID
	})

	return items, nil
}

// SetProgressDone отмечает пункт прогресса выполненным или нет.
func (s *MemoryStorage) SetProgressDone(ctx context.Context, id int64, done bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.progress[id]
	if !ok {
		return ErrNotFound
	}

	item.Done = done

	return nil
}
