package model

import (
	"time"
)

// Question is a multiple-choice quiz item. CorrectAnswer holds the single
// option label ("A".."D"). Questions are seeded at startup and immutable
// through the API.
type Question struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	QuestionText  string    `json:"question" gorm:"type:text;not null"`
	OptionA       string    `json:"option_a" gorm:"not null"`
	OptionB       string    `json:"option_b" gorm:"not null"`
	OptionC       string    `json:"option_c" gorm:"not null"`
	OptionD       string    `json:"option_d" gorm:"not null"`
	CorrectAnswer string    `json:"correct_answer" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
}
