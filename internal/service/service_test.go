package service

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Frisk239/minpaixinyu/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// newTestDB opens an isolated in-memory sqlite database migrated with the
// full schema. cache=shared keeps the database alive across the pooled
// connections gorm opens; the test name keys each test to its own database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Question{},
		&model.AnswerRecord{},
		&model.CityExploration{},
	))
	return db
}

func seedQuestion(t *testing.T, db *gorm.DB, text, correct string) *model.Question {
	t.Helper()
	q := model.Question{
		QuestionText:  text,
		OptionA:       "选项A",
		OptionB:       "选项B",
		OptionC:       "选项C",
		OptionD:       "选项D",
		CorrectAnswer: correct,
	}
	require.NoError(t, db.Create(&q).Error)
	return &q
}
