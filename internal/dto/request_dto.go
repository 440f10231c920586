package dto

// LoginRequest carries login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SubmitAnswerRequest is the body of POST /api/submit-answer.
type SubmitAnswerRequest struct {
	QuestionID uint   `json:"question_id" binding:"required"`
	UserAnswer string `json:"user_answer" binding:"required"`
}

// MarkExploredRequest is accepted as JSON or as a form field (the city pages
// post both shapes).
type MarkExploredRequest struct {
	CityName string `json:"city_name" form:"city_name"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type DeleteAccountRequest struct {
	ConfirmUsername string `json:"confirm_username"`
	ConfirmPassword string `json:"confirm_password"`
}

type ChatRequest struct {
	Question string `json:"question"`
}
