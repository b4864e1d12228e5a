package repository

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/shaymimran45/CTF-WAR-2/models"
)

type TeamRepository interface {
	WithTx(tx *gorm.DB) TeamRepository
	Create(team *models.Team) error
	FindByID(id uint) (*models.Team, error)
	// FindByIDForUpdate 行锁读取，必须在事务内调用，容量判定靠它串行化
	FindByIDForUpdate(id uint) (*models.Team, error)
	FindByInviteCode(code string) (*models.Team, error)
	FindByName(name string) (*models.Team, error)
	UpdateLeader(teamID, leaderID uint) error
	Delete(teamID uint) error
}

type teamRepository struct {
	db *gorm.DB
}

func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) WithTx(tx *gorm.DB) TeamRepository {
	return &teamRepository{db: tx}
}

func (r *teamRepository) Create(team *models.Team) error {
	return r.db.Create(team).Error
}

func (r *teamRepository) FindByID(id uint) (*models.Team, error) {
	var team models.Team
	if err := r.db.First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) FindByIDForUpdate(id uint) (*models.Team, error) {
	var team models.Team
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).First(&team, id).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) FindByInviteCode(code string) (*models.Team, error) {
	var team models.Team
	if err := r.db.Where("invite_code = ?", code).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) FindByName(name string) (*models.Team, error) {
	var team models.Team
	if err := r.db.Where("name = ?", name).First(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

func (r *teamRepository) UpdateLeader(teamID, leaderID uint) error {
	return r.db.Model(&models.Team{}).Where("id = ?", teamID).Update("leader_id", leaderID).Error
}

func (r *teamRepository) Delete(teamID uint) error {
	return r.db.Delete(&models.Team{}, teamID).Error
}
