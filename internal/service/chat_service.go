package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Frisk239/minpaixinyu/config"
	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// ChatService answers free-form questions about Fujian culture. It is a thin
// proxy around the LLM API and holds no quiz or progress state, so an outage
// on its side cannot affect the core.
type ChatService interface {
	AnswerQuestion(ctx context.Context, question string) (string, error)
}

type chatService struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

func NewChatService(cfg *config.Config) (ChatService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. ChatService will serve canned fallback answers.")
		return &chatService{cfg: cfg, client: nil}, nil
	}
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	model := client.GenerativeModel("gemini-1.5-flash")
	return &chatService{client: model, cfg: cfg}, nil
}

const chatSystemPrompt = "你是一个福建文化知识问答助手，专门解答关于福建历史、文化、地理等相关问题。" +
	"请用简洁、准确的中文回答下面的问题。\n\n问题："

// fallbackAnswers maps question keywords to canned responses used when the
// LLM is unreachable or not configured.
var fallbackAnswers = []struct {
	keyword string
	answer  string
}{
	{"土楼", "福建土楼是客家人聚族而居的大型夯土民居建筑，主要分布在龙岩市和漳州市，2008年被列入世界文化遗产名录。"},
	{"武夷山", "武夷山位于福建省南平市，是世界文化与自然双重遗产，以丹霞地貌和岩茶（大红袍）闻名。"},
	{"鼓浪屿", "鼓浪屿是厦门市的一座小岛，素有“海上花园”之称，2017年被列入世界文化遗产名录。"},
	{"省会", "福建省的省会是福州市，别称榕城，已有两千多年的建城历史。"},
	{"福州", "福州是福建省省会，别称榕城，以三坊七巷、闽菜和温泉文化著称。"},
	{"闽南", "闽南地区主要包括泉州、厦门、漳州，通行闽南语，保留着南音、梨园戏等传统文化。"},
}

const fallbackDefault = "抱歉，AI服务暂时不可用。您可以浏览各地市页面了解福建的历史文化，或稍后再试。"

func fallbackAnswer(question string) string {
	for _, fa := range fallbackAnswers {
		if strings.Contains(question, fa.keyword) {
			return fa.answer
		}
	}
	return fallbackDefault
}

func (s *chatService) AnswerQuestion(ctx context.Context, question string) (string, error) {
	if s.client == nil {
		return fallbackAnswer(question), nil
	}

	resp, err := s.client.GenerateContent(ctx, genai.Text(chatSystemPrompt+question))
	if err != nil {
		log.Error().Err(err).Msg("AnswerQuestion: Gemini API call failed, serving fallback")
		return fallbackAnswer(question), nil
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		log.Warn().Msg("AnswerQuestion: Gemini returned no candidates, serving fallback")
		return fallbackAnswer(question), nil
	}

	var answer strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			answer.WriteString(string(txt))
		}
	}
	if answer.Len() == 0 {
		log.Warn().Msg("AnswerQuestion: Gemini returned no text content, serving fallback")
		return fallbackAnswer(question), nil
	}
	return strings.TrimSpace(answer.String()), nil
}
