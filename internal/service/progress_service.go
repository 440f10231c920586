package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/Frisk239/minpaixinyu/internal/apperr"
	"github.com/Frisk239/minpaixinyu/internal/dto"
	"github.com/Frisk239/minpaixinyu/internal/model"
	"github.com/Frisk239/minpaixinyu/internal/repository"
	"github.com/rs/zerolog/log"
)

// ProgressService tracks which cities a user has explored and aggregates
// their quiz statistics.
type ProgressService interface {
	// MarkExplored is idempotent: marking an already-explored city succeeds
	// without creating a second row.
	MarkExplored(userID uint, cityName string) error
	IsExplored(userID uint, cityName string) (bool, error)
	ListExplored(userID uint) ([]string, error)
	Statistics(userID uint) (*dto.StatisticsResponse, error)
}

type progressService struct {
	explorationRepo repository.ExplorationRepository
	answerRepo      repository.AnswerRecordRepository
}

func NewProgressService(explorationRepo repository.ExplorationRepository, answerRepo repository.AnswerRecordRepository) ProgressService {
	return &progressService{explorationRepo: explorationRepo, answerRepo: answerRepo}
}

// NormalizeCityName reduces a city name to its canonical bare form. Earlier
// frontend builds posted composite strings like "闽派新语 - 福州"; the part
// after the last dash is the city. Display prefixes never reach storage.
func NormalizeCityName(name string) string {
	name = strings.TrimSpace(name)
	if i := strings.LastIndex(name, "-"); i >= 0 {
		name = strings.TrimSpace(name[i+1:])
	}
	return name
}

func (s *progressService) MarkExplored(userID uint, cityName string) error {
	city := NormalizeCityName(cityName)
	if city == "" {
		return apperr.ErrEmptyField
	}
	exploration := model.CityExploration{UserID: userID, CityName: city}
	if err := s.explorationRepo.Upsert(&exploration); err != nil {
		log.Error().Err(err).Uint("userID", userID).Str("city", city).Msg("MarkExplored: upsert failed")
		return fmt.Errorf("mark explored: %w", apperr.ErrStore)
	}
	return nil
}

func (s *progressService) IsExplored(userID uint, cityName string) (bool, error) {
	city := NormalizeCityName(cityName)
	if city == "" {
		return false, apperr.ErrEmptyField
	}
	explored, err := s.explorationRepo.Exists(userID, city)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Str("city", city).Msg("IsExplored: lookup failed")
		return false, fmt.Errorf("check explored: %w", apperr.ErrStore)
	}
	return explored, nil
}

func (s *progressService) ListExplored(userID uint) ([]string, error) {
	names, err := s.explorationRepo.ListByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("ListExplored: query failed")
		return nil, fmt.Errorf("list explorations: %w", apperr.ErrStore)
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

func (s *progressService) Statistics(userID uint) (*dto.StatisticsResponse, error) {
	total, err := s.answerRepo.CountByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Statistics: total count failed")
		return nil, fmt.Errorf("count answers: %w", apperr.ErrStore)
	}
	correct, err := s.answerRepo.CountCorrectByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Statistics: correct count failed")
		return nil, fmt.Errorf("count correct answers: %w", apperr.ErrStore)
	}
	explored, err := s.explorationRepo.CountByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Statistics: exploration count failed")
		return nil, fmt.Errorf("count explorations: %w", apperr.ErrStore)
	}

	rate := 0
	if total > 0 {
		rate = int(math.Round(float64(correct) / float64(total) * 100))
	}

	return &dto.StatisticsResponse{
		TotalAnswers:     total,
		CorrectAnswers:   correct,
		WrongAnswers:     total - correct,
		CorrectRate:      rate,
		ExplorationCount: explored,
	}, nil
}
