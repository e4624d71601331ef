package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"github.com/Ashutosh3021/PrepIQ-sub001/internal/domain/models"
	"github.com/Ashutosh3021/PrepIQ-sub001/internal/storage"
)

// Storage реализует storage.Storage поверх PostgreSQL.
type Storage struct {
	pool *pgxpool.Pool
}

// NewStorage создаёт новое хранилище по строке подключения dsn.
func NewStorage(ctx context.Context, dsn string) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	return &Storage{pool: pool}, nil
}

// Close закрывает пул соединений.
func (s *Storage) Close() {
	s.pool.Close()
}

// SaveAttempt сохраняет завершённую попытку.
func (s *Storage) SaveAttempt(ctx context.Context, attempt *models.AttemptModel) error {
	query := `
	INSERT INTO attempts (
		id, test_id, subject_id, score, total_marks, percentage, grade,
		weak_topics, strong_topics, time_taken_seconds, finished_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := s.pool.Exec(ctx, query,
		attempt.ID,
		attempt.TestID,
		attempt.SubjectID,
		attempt.Score,
		attempt.TotalMarks,
		attempt.Percentage,
		attempt.Grade,
		attempt.WeakTopics,
		attempt.StrongTopics,
		attempt.TimeTakenSeconds,
		attempt.FinishedAt,
	)

	return err
}

// GetAttempt возвращает попытку по ID.
func (s *Storage) GetAttempt(ctx context.Context, id string) (*models.AttemptModel, error) {
	query := `
	SELECT id, test_id, subject_id, score, total_marks, percentage, grade,
		weak_topics, strong_topics, time_taken_seconds, finished_at
	FROM attempts WHERE id = $1
	`

	attempt := &models.AttemptModel{}
	err := s.pool.QueryRow(ctx, query, id).Scan(
		&attempt.ID,
		&attempt.TestID,
		&attempt.SubjectID,
		&attempt.Score,
		&attempt.TotalMarks,
		&attempt.Percentage,
		&attempt.Grade,
		&attempt.WeakTopics,
		&attempt.StrongTopics,
		&attempt.TimeTakenSeconds,
		&attempt.FinishedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return attempt, nil
}

// ListAttempts возвращает попытки по предмету, от новых к старым.
func (s *Storage) ListAttempts(ctx context.Context, subjectID string) ([]*models.AttemptModel, error) {
	query := `
	SELECT id, test_id, subject_id, score, total_marks, percentage, grade,
		weak_topics, strong_topics, time_taken_seconds, finished_at
	FROM attempts WHERE subject_id = $1
	ORDER BY finished_at DESC
	`

	rows, err := s.pool.Query(ctx, query, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attempts := make([]*models.AttemptModel, 0)
	for rows.Next() {
		attempt := &models.AttemptModel{}
		err = rows.Scan(
			&attempt.ID,
			&attempt.TestID,
			&attempt.SubjectID,
			&attempt.Score,
			&attempt.TotalMarks,
			&attempt.Percentage,
			&attempt.Grade,
			&attempt.WeakTopics,
			&attempt.StrongTopics,
			&attempt.TimeTakenSeconds,
			&attempt.FinishedAt,
		)
		if err != nil {
			return nil, err
		}

		attempts = append(attempts, attempt)
	}

	return attempts, rows.Err()
}

// AddProgressItem добавляет пункт прогресса по предмету.
func (s *Storage) AddProgressItem(ctx context.Context, item *models.ProgressItemModel) (int64, error) {
	query := `
	INSERT INTO progress_items (subject_id, title, done, created_at)
	VALUES ($1, $2, $3, $4)
	RETURNING id
	`

	var id int64
	err := s.pool.QueryRow(ctx, query, item.SubjectID, item.Title, item.Done, item.CreatedAt).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

// ListProgress возвращает пункты прогресса по предмету.
func (s *Storage) ListProgress(ctx context.Context, subjectID string) ([]*models.ProgressItemModel, error) {
	query := `
	SELECT id, subject_id, title, done, created_at
	FROM progress_items WHERE subject_id = $1
	ORDER BY id
	`

	rows, err := s.pool.Query(ctx, query, subjectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]*models.ProgressItemModel, 0)
	for rows.Next() {
		item := &models.ProgressItemModel{}
		err = rows.Scan(&item.ID, &item.SubjectID, &item.Title, &item.Done, &item.CreatedAt)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

// SetProgressDone отмечает пункт прогресса выполненным или нет.
func (s *Storage) SetProgressDone(ctx context.Context, id int64, done bool) error {
	query := `
	UPDATE progress_items SET done = $1 WHERE id = $2
	`

	tag, err := s.pool.Exec(ctx, query, done, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}

	return nil
}
