package repository

import (
	"gorm.io/gorm"

	"github.com/shaymimran45/CTF-WAR-2/models"
)

type TeamMemberRepository interface {
	WithTx(tx *gorm.DB) TeamMemberRepository
	Create(member *models.TeamMember) error
	Find(teamID, userID uint) (*models.TeamMember, error)
	FindByUser(userID uint) (*models.TeamMember, error)
	// ListByTeam 按加入时间升序返回，时间相同时按 id 升序，队长继任顺序依赖此排序
	ListByTeam(teamID uint) ([]models.TeamMember, error)
	CountByTeam(teamID uint) (int64, error)
	Delete(teamID, userID uint) error
}

type teamMemberRepository struct {
	db *gorm.DB
}

func NewTeamMemberRepository(db *gorm.DB) TeamMemberRepository {
	return &teamMemberRepository{db: db}
}

func (r *teamMemberRepository) WithTx(tx *gorm.DB) TeamMemberRepository {
	return &teamMemberRepository{db: tx}
}

func (r *teamMemberRepository) Create(member *models.TeamMember) error {
	return r.db.Create(member).Error
}

func (r *teamMemberRepository) Find(teamID, userID uint) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.Where("team_id = ? AND user_id = ?", teamID, userID).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *teamMemberRepository) FindByUser(userID uint) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := r.db.Where("user_id = ?", userID).First(&member).Error; err != nil {
		return nil, err
	}
	return &member, nil
}

func (r *teamMemberRepository) ListByTeam(teamID uint) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := r.db.Preload("User").
		Where("team_id = ?", teamID).
		Order("joined_at asc, id asc").
		Find(&members).Error
	return members, err
}

func (r *teamMemberRepository) CountByTeam(teamID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.TeamMember{}).Where("team_id = ?", teamID).Count(&count).Error
	return count, err
}

func (r *teamMemberRepository) Delete(teamID, userID uint) error {
	return r.db.Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&models.TeamMember{}).Error
}
