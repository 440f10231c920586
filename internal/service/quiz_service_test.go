package service

import (
	"fmt"
	"testing"

	"github.com/Frisk239/minpaixinyu/internal/apperr"
	"github.com/Frisk239/minpaixinyu/internal/model"
	"github.com/Frisk239/minpaixinyu/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newQuizService(t *testing.T) (QuizService, *gorm.DB) {
	db := newTestDB(t)
	return NewQuizService(
		repository.NewQuestionRepository(db),
		repository.NewAnswerRecordRepository(db),
	), db
}

func TestDrawQuestionsReturnsValidSample(t *testing.T) {
	svc, db := newQuizService(t)

	known := make(map[uint]bool)
	for i := 0; i < 12; i++ {
		q := seedQuestion(t, db, fmt.Sprintf("问题 %d", i), "A")
		known[q.ID] = true
	}

	// The draw is random, so assert set membership and sample size rather
	// than any particular order.
	for round := 0; round < 2; round++ {
		drawn, err := svc.DrawQuestions(10)
		require.NoError(t, err)
		require.Len(t, drawn, 10)

		seen := make(map[uint]bool)
		for _, q := range drawn {
			assert.True(t, known[q.ID], "drawn question %d does not exist in the store", q.ID)
			assert.False(t, seen[q.ID], "question %d drawn twice in one round", q.ID)
			seen[q.ID] = true
		}
	}
}

func TestDrawQuestionsFewerAvailableThanRequested(t *testing.T) {
	svc, db := newQuizService(t)

	for i := 0; i < 3; i++ {
		seedQuestion(t, db, fmt.Sprintf("问题 %d", i), "B")
	}

	drawn, err := svc.DrawQuestions(10)
	require.NoError(t, err)
	assert.Len(t, drawn, 3)
}

func TestDrawQuestionsExposesCorrectAnswer(t *testing.T) {
	svc, db := newQuizService(t)
	seedQuestion(t, db, "福建省的省会是哪个城市？", "B")

	drawn, err := svc.DrawQuestions(10)
	require.NoError(t, err)
	require.Len(t, drawn, 1)
	assert.Equal(t, "福建省的省会是哪个城市？", drawn[0].QuestionText)
	assert.Equal(t, "B", drawn[0].CorrectAnswer)
}

func TestSubmitJudgesAnswer(t *testing.T) {
	svc, db := newQuizService(t)
	q := seedQuestion(t, db, "福建省的省会是哪个城市？", "B")

	result, err := svc.Submit(1, q.ID, "B")
	require.NoError(t, err)
	assert.True(t, result.Correct)
	assert.Equal(t, "B", result.CorrectAnswer)

	result, err = svc.Submit(1, q.ID, "A")
	require.NoError(t, err)
	assert.False(t, result.Correct)
	assert.Equal(t, "B", result.CorrectAnswer)

	// Label comparison is case-sensitive.
	result, err = svc.Submit(1, q.ID, "b")
	require.NoError(t, err)
	assert.False(t, result.Correct)
}

func TestSubmitAppendsARecordPerSubmission(t *testing.T) {
	svc, db := newQuizService(t)
	q := seedQuestion(t, db, "鼓浪屿属于福建省哪个城市？", "C")

	_, err := svc.Submit(1, q.ID, "C")
	require.NoError(t, err)
	_, err = svc.Submit(1, q.ID, "C")
	require.NoError(t, err)

	var records []model.AnswerRecord
	require.NoError(t, db.Where("user_id = ?", 1).Find(&records).Error)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, q.ID, rec.QuestionID)
		assert.True(t, rec.IsCorrect)
	}
}

func TestHistoryListsOwnRecordsWithQuestions(t *testing.T) {
	svc, db := newQuizService(t)
	q := seedQuestion(t, db, "福建省的省会是哪个城市？", "B")

	_, err := svc.Submit(1, q.ID, "B")
	require.NoError(t, err)
	_, err = svc.Submit(1, q.ID, "A")
	require.NoError(t, err)
	_, err = svc.Submit(2, q.ID, "B")
	require.NoError(t, err)

	records, err := svc.History(1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, q.ID, rec.QuestionID)
		assert.Equal(t, "福建省的省会是哪个城市？", rec.Question.QuestionText)
		assert.False(t, rec.AnsweredAt.IsZero())
	}

	// A user with no submissions gets an empty, non-nil list.
	records, err = svc.History(3)
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestSubmitUnknownQuestion(t *testing.T) {
	svc, db := newQuizService(t)

	_, err := svc.Submit(1, 9999, "A")
	assert.ErrorIs(t, err, apperr.ErrQuestionNotFound)

	// A failed lookup must not leave a record behind.
	var count int64
	require.NoError(t, db.Model(&model.AnswerRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}
