package controller

import (
	"net/http"
	"strings"

	"github.com/Frisk239/minpaixinyu/internal/apperr"
	"github.com/Frisk239/minpaixinyu/internal/dto"
	"github.com/Frisk239/minpaixinyu/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

type ChatController struct {
	chat service.ChatService
}

func NewChatController(chat service.ChatService) *ChatController {
	return &ChatController{chat: chat}
}

// Chat godoc
// @Summary Ask the Fujian culture assistant
// @Description Proxies the question to the LLM; when the LLM is unavailable a canned keyword-matched answer is returned.
// @Tags Chat
// @Accept json
// @Produce json
// @Param request body dto.ChatRequest true "Question"
// @Success 200 {object} dto.ChatResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /api/chat [post]
func (c *ChatController) Chat(ctx *gin.Context) {
	var req dto.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request body", Details: []string{err.Error()}})
		return
	}

	question := strings.TrimSpace(req.Question)
	if question == "" {
		respondError(ctx, apperr.ErrEmptyField)
		return
	}

	answer, err := c.chat.AnswerQuestion(ctx.Request.Context(), question)
	if err != nil {
		log.Error().Err(err).Msg("Chat: assistant failed")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "failed to get an answer"})
		return
	}
	ctx.JSON(http.StatusOK, dto.ChatResponse{Answer: answer})
}
