package controller

import (
	"net/http"

	"github.com/Frisk239/minpaixinyu/internal/dto"
	"github.com/Frisk239/minpaixinyu/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type QuizController struct {
	quiz service.QuizService
}

func NewQuizController(quiz service.QuizService) *QuizController {
	return &QuizController{quiz: quiz}
}

// GetQuestions godoc
// @Summary Draw a quiz round
// @Description Returns 10 randomly drawn questions (fewer if the bank is smaller). Each call is an independent draw.
// @Tags Quiz
// @Produce json
// @Success 200 {object} dto.QuestionListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/get-questions [get]
func (c *QuizController) GetQuestions(ctx *gin.Context) {
	questions, err := c.quiz.DrawQuestions(service.DefaultQuizSize)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.QuestionListResponse{Questions: questions})
}

// SubmitAnswer godoc
// @Summary Submit an answer
// @Description Judges the submitted option label against the stored correct answer and records the attempt. Resubmission appends a new record.
// @Tags Quiz
// @Accept json
// @Produce json
// @Param answer body dto.SubmitAnswerRequest true "Answer"
// @Success 200 {object} dto.SubmitAnswerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse "Question not found"
// @Router /api/submit-answer [post]
func (c *QuizController) SubmitAnswer(ctx *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Details: []string{err.Error()}})
		return
	}

	userID, _ := currentUserID(ctx)
	result, err := c.quiz.Submit(userID, req.QuestionID, req.UserAnswer)
	if err != nil {
		log.Warn().Err(err).Uint("userID", userID).Uint("questionID", req.QuestionID).Msg("SubmitAnswer failed")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, result)
}

// GetAnswerHistory godoc
// @Summary List the answer history
// @Description Returns the logged-in user's answer records, newest first, each with the question it was given for.
// @Tags Quiz
// @Produce json
// @Success 200 {object} dto.AnswerHistoryResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/answer-history [get]
func (c *QuizController) GetAnswerHistory(ctx *gin.Context) {
	userID, _ := currentUserID(ctx)
	records, err := c.quiz.History(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.AnswerHistoryResponse{Records: records})
}
