package service

import (
	"errors"
	"fmt"

	"github.com/Frisk239/minpaixinyu/internal/apperr"
	"github.com/Frisk239/minpaixinyu/internal/dto"
	"github.com/Frisk239/minpaixinyu/internal/model"
	"github.com/Frisk239/minpaixinyu/internal/repository"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// DefaultQuizSize is how many questions a quiz round draws.
const DefaultQuizSize = 10

// QuizService draws random question sets and judges submitted answers.
type QuizService interface {
	// DrawQuestions returns min(limit, available) questions, uniformly
	// sampled without replacement. Two successive calls are independent
	// draws; no ordering is guaranteed.
	DrawQuestions(limit int) ([]dto.QuestionResponse, error)
	// Submit judges an answer against the stored correct label and always
	// appends one answer record, right or wrong.
	Submit(userID, questionID uint, userAnswer string) (*dto.SubmitAnswerResponse, error)
	// History lists the user's answer records, newest first, each with its
	// question attached.
	History(userID uint) ([]dto.AnswerRecordResponse, error)
}

type quizService struct {
	questionRepo repository.QuestionRepository
	answerRepo   repository.AnswerRecordRepository
}

func NewQuizService(questionRepo repository.QuestionRepository, answerRepo repository.AnswerRecordRepository) QuizService {
	return &quizService{questionRepo: questionRepo, answerRepo: answerRepo}
}

func (s *quizService) DrawQuestions(limit int) ([]dto.QuestionResponse, error) {
	if limit <= 0 {
		limit = DefaultQuizSize
	}
	questions, err := s.questionRepo.FindRandom(limit)
	if err != nil {
		log.Error().Err(err).Msg("DrawQuestions: random draw failed")
		return nil, fmt.Errorf("draw questions: %w", apperr.ErrStore)
	}

	responses := make([]dto.QuestionResponse, len(questions))
	for i := range questions {
		if err := copier.Copy(&responses[i], &questions[i]); err != nil {
			log.Error().Err(err).Msg("DrawQuestions: failed to map question to DTO")
			return nil, fmt.Errorf("map questions: %w", err)
		}
	}
	return responses, nil
}

func (s *quizService) Submit(userID, questionID uint, userAnswer string) (*dto.SubmitAnswerResponse, error) {
	question, err := s.questionRepo.FindByID(questionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.ErrQuestionNotFound
		}
		log.Error().Err(err).Uint("questionID", questionID).Msg("Submit: question lookup failed")
		return nil, fmt.Errorf("find question: %w", apperr.ErrStore)
	}

	// Exact, case-sensitive label comparison ("A".."D").
	correct := userAnswer == question.CorrectAnswer

	record := model.AnswerRecord{
		UserID:     userID,
		QuestionID: questionID,
		UserAnswer: userAnswer,
		IsCorrect:  correct,
	}
	if err := s.answerRepo.Create(&record); err != nil {
		log.Error().Err(err).Uint("userID", userID).Uint("questionID", questionID).
			Msg("Submit: failed to persist answer record")
		return nil, fmt.Errorf("record answer: %w", apperr.ErrStore)
	}

	return &dto.SubmitAnswerResponse{
		Correct:       correct,
		CorrectAnswer: question.CorrectAnswer,
	}, nil
}

func (s *quizService) History(userID uint) ([]dto.AnswerRecordResponse, error) {
	records, err := s.answerRepo.FindByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("History: lookup failed")
		return nil, fmt.Errorf("load answer history: %w", apperr.ErrStore)
	}

	responses := make([]dto.AnswerRecordResponse, len(records))
	for i := range records {
		if err := copier.Copy(&responses[i], &records[i]); err != nil {
			log.Error().Err(err).Msg("History: failed to map record to DTO")
			return nil, fmt.Errorf("map records: %w", err)
		}
	}
	return responses, nil
}
