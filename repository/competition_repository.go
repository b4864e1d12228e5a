package repository

import (
	"gorm.io/gorm"

	"github.com/shaymimran45/CTF-WAR-2/models"
)

type CompetitionRepository interface {
	Create(competition *models.Competition) error
	FindByID(id uint) (*models.Competition, error)
	// Latest 取开赛时间最晚的一场，创建题目未指定比赛时挂到这里
	Latest() (*models.Competition, error)
}

type competitionRepository struct {
	db *gorm.DB
}

func NewCompetitionRepository(db *gorm.DB) CompetitionRepository {
	return &competitionRepository{db: db}
}

func (r *competitionRepository) Create(competition *models.Competition) error {
	return r.db.Create(competition).Error
}

func (r *competitionRepository) FindByID(id uint) (*models.Competition, error) {
	var competition models.Competition
	if err := r.db.First(&competition, id).Error; err != nil {
		return nil, err
	}
	return &competition, nil
}

func (r *competitionRepository) Latest() (*models.Competition, error) {
	var competition models.Competition
	if err := r.db.Order("start_time desc").First(&competition).Error; err != nil {
		return nil, err
	}
	return &competition, nil
}
