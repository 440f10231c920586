package service

import (
	"testing"

	"github.com/Frisk239/minpaixinyu/internal/apperr"
	"github.com/Frisk239/minpaixinyu/internal/model"
	"github.com/Frisk239/minpaixinyu/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newProgressService(t *testing.T) (ProgressService, *gorm.DB) {
	db := newTestDB(t)
	return NewProgressService(
		repository.NewExplorationRepository(db),
		repository.NewAnswerRecordRepository(db),
	), db
}

func TestNormalizeCityName(t *testing.T) {
	assert.Equal(t, "福州", NormalizeCityName("福州"))
	assert.Equal(t, "福州", NormalizeCityName("闽派新语 - 福州"))
	assert.Equal(t, "福州", NormalizeCityName("  福州  "))
	assert.Equal(t, "", NormalizeCityName(""))
}

func TestMarkExploredIsIdempotent(t *testing.T) {
	svc, db := newProgressService(t)

	require.NoError(t, svc.MarkExplored(1, "福州"))
	require.NoError(t, svc.MarkExplored(1, "福州"))

	var count int64
	require.NoError(t, db.Model(&model.CityExploration{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMarkExploredNormalizesPrefixedNames(t *testing.T) {
	svc, db := newProgressService(t)

	// A prefixed composite and the bare name are the same city.
	require.NoError(t, svc.MarkExplored(1, "闽派新语 - 厦门"))
	require.NoError(t, svc.MarkExplored(1, "厦门"))

	var count int64
	require.NoError(t, db.Model(&model.CityExploration{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	explored, err := svc.IsExplored(1, "厦门")
	require.NoError(t, err)
	assert.True(t, explored)
}

func TestMarkExploredEmptyName(t *testing.T) {
	svc, _ := newProgressService(t)
	assert.ErrorIs(t, svc.MarkExplored(1, ""), apperr.ErrEmptyField)
	assert.ErrorIs(t, svc.MarkExplored(1, "   "), apperr.ErrEmptyField)
}

func TestIsExploredPerUser(t *testing.T) {
	svc, _ := newProgressService(t)

	require.NoError(t, svc.MarkExplored(1, "泉州"))

	explored, err := svc.IsExplored(1, "泉州")
	require.NoError(t, err)
	assert.True(t, explored)

	explored, err = svc.IsExplored(2, "泉州")
	require.NoError(t, err)
	assert.False(t, explored)
}

func TestListExplored(t *testing.T) {
	svc, _ := newProgressService(t)

	names, err := svc.ListExplored(1)
	require.NoError(t, err)
	assert.Empty(t, names)
	assert.NotNil(t, names, "empty list must serialize as [], not null")

	require.NoError(t, svc.MarkExplored(1, "福州"))
	require.NoError(t, svc.MarkExplored(1, "闽派新语 - 厦门"))

	names, err = svc.ListExplored(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"福州", "厦门"}, names)
}

func TestStatisticsWithNoAnswers(t *testing.T) {
	svc, _ := newProgressService(t)

	stats, err := svc.Statistics(1)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalAnswers)
	assert.Zero(t, stats.CorrectAnswers)
	assert.Zero(t, stats.WrongAnswers)
	assert.Zero(t, stats.CorrectRate)
	assert.Zero(t, stats.ExplorationCount)
}

func TestStatisticsAggregates(t *testing.T) {
	svc, db := newProgressService(t)

	q := seedQuestion(t, db, "武夷山位于福建省的哪个地级市？", "A")
	require.NoError(t, db.Create(&model.AnswerRecord{UserID: 1, QuestionID: q.ID, UserAnswer: "A", IsCorrect: true}).Error)
	require.NoError(t, db.Create(&model.AnswerRecord{UserID: 1, QuestionID: q.ID, UserAnswer: "A", IsCorrect: true}).Error)
	require.NoError(t, db.Create(&model.AnswerRecord{UserID: 1, QuestionID: q.ID, UserAnswer: "B", IsCorrect: false}).Error)
	require.NoError(t, svc.MarkExplored(1, "南平"))

	// Another user's records must not leak into the aggregate.
	require.NoError(t, db.Create(&model.AnswerRecord{UserID: 2, QuestionID: q.ID, UserAnswer: "C", IsCorrect: false}).Error)

	stats, err := svc.Statistics(1)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalAnswers)
	assert.Equal(t, int64(2), stats.CorrectAnswers)
	assert.Equal(t, int64(1), stats.WrongAnswers)
	assert.Equal(t, 67, stats.CorrectRate) // round(2/3*100)
	assert.Equal(t, int64(1), stats.ExplorationCount)
}
