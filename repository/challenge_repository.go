package repository

import (
	"gorm.io/gorm"

	"github.com/shaymimran45/CTF-WAR-2/models"
)

// ChallengeFilter 玩家列表的可选筛选条件
type ChallengeFilter struct {
	Category   string
	Difficulty string
}

type ChallengeRepository interface {
	WithTx(tx *gorm.DB) ChallengeRepository
	Create(challenge *models.Challenge) error
	FindByID(id uint) (*models.Challenge, error)
	// FindVisibleByID 只返回可见题目，玩家侧读取一律走这里
	FindVisibleByID(id uint) (*models.Challenge, error)
	ListVisible(filter ChallengeFilter) ([]models.Challenge, error)
	ListAll() ([]models.Challenge, error)
	Save(challenge *models.Challenge) error
	Delete(id uint) error
	SetAllVisibility(visible bool) (int64, error)
	Categories() ([]string, error)
	CountVisible() (int64, error)
	CountVisibleByColumn(column string) (map[string]int64, error)
}

type challengeRepository struct {
	db *gorm.DB
}

func NewChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &challengeRepository{db: db}
}

func (r *challengeRepository) WithTx(tx *gorm.DB) ChallengeRepository {
	return &challengeRepository{db: tx}
}

func (r *challengeRepository) Create(challenge *models.Challenge) error {
	return r.db.Create(challenge).Error
}

func (r *challengeRepository) FindByID(id uint) (*models.Challenge, error) {
	var challenge models.Challenge
	if err := r.db.Preload("Files").Preload("Hints").First(&challenge, id).Error; err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *challengeRepository) FindVisibleByID(id uint) (*models.Challenge, error) {
	var challenge models.Challenge
	err := r.db.Preload("Files").Preload("Hints").
		Where("id = ? AND is_visible = ?", id, true).
		First(&challenge).Error
	if err != nil {
		return nil, err
	}
	return &challenge, nil
}

func (r *challengeRepository) ListVisible(filter ChallengeFilter) ([]models.Challenge, error) {
	db := r.db.Where("is_visible = ?", true)
	if filter.Category != "" {
		db = db.Where("category = ?", filter.Category)
	}
	if filter.Difficulty != "" {
		db = db.Where("difficulty = ?", filter.Difficulty)
	}

	var challenges []models.Challenge
	err := db.Order("points asc, created_at desc").Find(&challenges).Error
	return challenges, err
}

func (r *challengeRepository) ListAll() ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := r.db.Order("updated_at desc").Find(&challenges).Error
	return challenges, err
}

func (r *challengeRepository) Save(challenge *models.Challenge) error {
	return r.db.Save(challenge).Error
}

func (r *challengeRepository) Delete(id uint) error {
	return r.db.Delete(&models.Challenge{}, id).Error
}

func (r *challengeRepository) SetAllVisibility(visible bool) (int64, error) {
	result := r.db.Model(&models.Challenge{}).Where("1 = 1").Update("is_visible", visible)
	return result.RowsAffected, result.Error
}

func (r *challengeRepository) Categories() ([]string, error) {
	var categories []string
	err := r.db.Model(&models.Challenge{}).
		Where("is_visible = ?", true).
		Distinct("category").
		Pluck("category", &categories).Error
	return categories, err
}

func (r *challengeRepository) CountVisible() (int64, error) {
	var count int64
	err := r.db.Model(&models.Challenge{}).Where("is_visible = ?", true).Count(&count).Error
	return count, err
}

// CountVisibleByColumn 按指定列分组统计可见题目数，column 只允许 category/difficulty
func (r *challengeRepository) CountVisibleByColumn(column string) (map[string]int64, error) {
	type row struct {
		Key   string
		Count int64
	}
	var rows []row
	err := r.db.Model(&models.Challenge{}).
		Select(column+" as `key`, COUNT(*) as count").
		Where("is_visible = ?", true).
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	stats := make(map[string]int64, len(rows))
	for _, r := range rows {
		stats[r.Key] = r.Count
	}
	return stats, nil
}
