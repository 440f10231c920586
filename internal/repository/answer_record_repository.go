package repository

import (
	"github.com/Frisk239/minpaixinyu/internal/model"
	"gorm.io/gorm"
)

type AnswerRecordRepository interface {
	Create(record *model.AnswerRecord) error
	CountByUser(userID uint) (int64, error)
	CountCorrectByUser(userID uint) (int64, error)
	FindByUser(userID uint) ([]model.AnswerRecord, error)
}

type answerRecordRepository struct {
	db *gorm.DB
}

func NewAnswerRecordRepository(db *gorm.DB) AnswerRecordRepository {
	return &answerRecordRepository{db: db}
}

func (r *answerRecordRepository) Create(record *model.AnswerRecord) error {
	return r.db.Create(record).Error
}

func (r *answerRecordRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.AnswerRecord{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *answerRecordRepository) CountCorrectByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.AnswerRecord{}).
		Where("user_id = ? AND is_correct = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *answerRecordRepository) FindByUser(userID uint) ([]model.AnswerRecord, error) {
	var records []model.AnswerRecord
	err := r.db.Preload("Question").
		Where("user_id = ?", userID).
		Order("answered_at desc").
		Find(&records).Error
	return records, err
}
