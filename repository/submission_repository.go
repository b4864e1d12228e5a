package repository

import (
	"gorm.io/gorm"

	"github.com/shaymimran45/CTF-WAR-2/models"
)

type SubmissionRepository interface {
	WithTx(tx *gorm.DB) SubmissionRepository
	Create(submission *models.Submission) error
	// CountIncorrect 统计某用户在某题上答错的次数，答对的提交不计入
	CountIncorrect(userID, challengeID uint) (int64, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) WithTx(tx *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: tx}
}

func (r *submissionRepository) Create(submission *models.Submission) error {
	return r.db.Create(submission).Error
}

func (r *submissionRepository) CountIncorrect(userID, challengeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Submission{}).
		Where("user_id = ? AND challenge_id = ? AND is_correct = ?", userID, challengeID, false).
		Count(&count).Error
	return count, err
}
