package repository

import (
	"gorm.io/gorm"

	"github.com/shaymimran45/CTF-WAR-2/models"
)

type HintRepository interface {
	Create(hint *models.Hint) error
	FindByID(id uint) (*models.Hint, error)
	Save(hint *models.Hint) error
	Delete(id uint) error
}

type hintRepository struct {
	db *gorm.DB
}

func NewHintRepository(db *gorm.DB) HintRepository {
	return &hintRepository{db: db}
}

func (r *hintRepository) Create(hint *models.Hint) error {
	return r.db.Create(hint).Error
}

func (r *hintRepository) FindByID(id uint) (*models.Hint, error) {
	var hint models.Hint
	if err := r.db.First(&hint, id).Error; err != nil {
		return nil, err
	}
	return &hint, nil
}

func (r *hintRepository) Save(hint *models.Hint) error {
	return r.db.Save(hint).Error
}

func (r *hintRepository) Delete(id uint) error {
	return r.db.Delete(&models.Hint{}, id).Error
}
