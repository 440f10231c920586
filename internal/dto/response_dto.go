package dto

import "time"

// ErrorResponse is the uniform error envelope, field name matching the
// original frontend's expectations.
type ErrorResponse struct {
	Error   string   `json:"error"`
	Details []string `json:"details,omitempty"`
}

type SuccessResponse struct {
	Success bool `json:"success"`
}

// QuestionResponse exposes a quiz question. CorrectAnswer is included in the
// list response; the original client relies on it for instant feedback, a
// known trust-boundary tradeoff kept as-is.
type QuestionResponse struct {
	ID            uint   `json:"id"`
	QuestionText  string `json:"question"`
	OptionA       string `json:"option_a"`
	OptionB       string `json:"option_b"`
	OptionC       string `json:"option_c"`
	OptionD       string `json:"option_d"`
	CorrectAnswer string `json:"correct_answer"`
}

type QuestionListResponse struct {
	Questions []QuestionResponse `json:"questions"`
}

type SubmitAnswerResponse struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
}

type LoginStatusResponse struct {
	LoggedIn bool   `json:"logged_in"`
	Username string `json:"username"`
}

type ExploredResponse struct {
	Explored bool `json:"explored"`
}

type ExplorationsResponse struct {
	Explorations []string `json:"explorations"`
}

// StatisticsResponse mirrors the user-center counters. WrongAnswers is always
// derived as total minus correct, and CorrectRate is 0 when nothing has been
// answered yet.
type StatisticsResponse struct {
	TotalAnswers     int64 `json:"total_answers"`
	CorrectAnswers   int64 `json:"correct_answers"`
	WrongAnswers     int64 `json:"wrong_answers"`
	CorrectRate      int   `json:"correct_rate"`
	ExplorationCount int64 `json:"exploration_count"`
}

// AnswerRecordResponse is one entry of a user's answer history, with the
// question it was given for.
type AnswerRecordResponse struct {
	ID         uint             `json:"id"`
	QuestionID uint             `json:"question_id"`
	Question   QuestionResponse `json:"question"`
	UserAnswer string           `json:"user_answer"`
	IsCorrect  bool             `json:"is_correct"`
	AnsweredAt time.Time        `json:"answered_at"`
}

type AnswerHistoryResponse struct {
	Records []AnswerRecordResponse `json:"records"`
}

type ChatResponse struct {
	Answer string `json:"answer"`
}
