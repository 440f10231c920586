package model

import (
	"time"
)

// AnswerRecord is an append-only fact: user U answered question Q with answer
// A, judged correct or not at time T. Records are never updated; resubmitting
// the same question simply appends another row. Rows are removed only when
// the owning account is deleted.
type AnswerRecord struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	QuestionID uint      `json:"question_id" gorm:"not null;index"`
	Question   Question  `json:"question,omitempty" gorm:"foreignKey:QuestionID"`
	UserAnswer string    `json:"user_answer" gorm:"not null"`
	IsCorrect  bool      `json:"is_correct" gorm:"not null"`
	AnsweredAt time.Time `json:"answered_at" gorm:"autoCreateTime"`
}
