package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ashutosh3021/PrepIQ-sub001/internal/domain/models"
)

func TestMemoryStorage_Attempts(t *testing.T) {
	st := NewMemoryStorage()
	ctx := context.Background()

	_, err := st.GetAttempt(ctx, "a1")
	assert.ErrorIs(t, err, ErrNotFound)

	older := &models.AttemptModel{
		ID:         "a1",
		TestID:     "t1",
		SubjectID:  "s1",
		Score:      3,
		TotalMarks: 5,
		FinishedAt: time.Now().Add(-time.Hour),
	}
	newer := &models.AttemptModel{
		ID:         "a2",
		TestID:     "t2",
		SubjectID:  "s1",
		Score:      5,
		TotalMarks: 5,
		FinishedAt: time.Now(),
	}
	other := &models.AttemptModel{
		ID:         "a3",
		TestID:     "t3",
		SubjectID:  "s2",
		FinishedAt: time.Now(),
	}

	require.NoError(t, st.SaveAttempt(ctx, older))
	require.NoError(t, st.SaveAttempt(ctx, newer))
	require.NoError(t, st.SaveAttempt(ctx, other))

	got, err := st.GetAttempt(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, 3, got.Score)

	// только свой предмет, от новых к старым
	attempts, err := st.ListAttempts(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, "a2", attempts[0].ID)
	assert.Equal(t, "a1", attempts[1].ID)
}

func TestMemoryStorage_Progress(t *testing.T) {
	st := NewMemoryStorage()
	ctx := context.Background()

	id1, err := st.AddProgressItem(ctx, &models.ProgressItemModel{
		SubjectID: "s1",
		Title:     "Повторить механику",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)

	id2, err := st.AddProgressItem(ctx, &models.ProgressItemModel{
		SubjectID: "s1",
		Title:     "Решить прошлогодний вариант",
		CreatedAt: time.Now(),
	})
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	require.NoError(t, st.SetProgressDone(ctx, id1, true))
	assert.ErrorIs(t, st.SetProgressDone(ctx, 999, true), ErrNotFound)

	items, err := st.ListProgress(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.True(t, items[0].Done)
	assert.False(t, items[1].Done)

	items, err = st.ListProgress(ctx, "s2")
	require.NoError(t, err)
	assert.Empty(t, items)
}
