package repository

import (
	"gorm.io/gorm"

	"github.com/shaymimran45/CTF-WAR-2/models"
)

type ChallengeFileRepository interface {
	Create(file *models.ChallengeFile) error
	FindByID(id uint) (*models.ChallengeFile, error)
	Delete(id uint) error
}

type challengeFileRepository struct {
	db *gorm.DB
}

func NewChallengeFileRepository(db *gorm.DB) ChallengeFileRepository {
	return &challengeFileRepository{db: db}
}

func (r *challengeFileRepository) Create(file *models.ChallengeFile) error {
	return r.db.Create(file).Error
}

func (r *challengeFileRepository) FindByID(id uint) (*models.ChallengeFile, error) {
	var file models.ChallengeFile
	if err := r.db.First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

func (r *challengeFileRepository) Delete(id uint) error {
	return r.db.Delete(&models.ChallengeFile{}, id).Error
}
