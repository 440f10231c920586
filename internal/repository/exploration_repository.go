package repository

import (
	"github.com/Frisk239/minpaixinyu/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ExplorationRepository interface {
	// Upsert inserts the exploration, silently keeping the existing row when
	// the (user_id, city_name) pair is already present. This is a single
	// atomic statement, so concurrent marks from the same user cannot race.
	Upsert(exploration *model.CityExploration) error
	Exists(userID uint, cityName string) (bool, error)
	ListByUser(userID uint) ([]string, error)
	CountByUser(userID uint) (int64, error)
}

type explorationRepository struct {
	db *gorm.DB
}

func NewExplorationRepository(db *gorm.DB) ExplorationRepository {
	return &explorationRepository{db: db}
}

func (r *explorationRepository) Upsert(exploration *model.CityExploration) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "city_name"}},
		DoNothing: true,
	}).Create(exploration).Error
}

func (r *explorationRepository) Exists(userID uint, cityName string) (bool, error) {
	var count int64
	err := r.db.Model(&model.CityExploration{}).
		Where("user_id = ? AND city_name = ?", userID, cityName).
		Count(&count).Error
	return count > 0, err
}

func (r *explorationRepository) ListByUser(userID uint) ([]string, error) {
	var names []string
	err := r.db.Model(&model.CityExploration{}).
		Where("user_id = ?", userID).
		Order("explored_at asc").
		Pluck("city_name", &names).Error
	return names, err
}

func (r *explorationRepository) CountByUser(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&model.CityExploration{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
