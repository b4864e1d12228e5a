package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/shaymimran45/CTF-WAR-2/models"
)

// ScoreRow 排行榜聚合行，LastSolveAt 为空表示该实体尚无解题记录
type ScoreRow struct {
	EntityID    uint
	Name        string
	Score       int
	SolveCount  int64
	LastSolveAt *time.Time
}

// RecentSolve 最近解题动态，用于统计接口
type RecentSolve struct {
	ID            uint      `json:"id"`
	SolvedAt      time.Time `json:"solvedAt"`
	PointsAwarded int       `json:"pointsAwarded"`
	Username      string    `json:"username"`
	Title         string    `json:"title"`
	Category      string    `json:"category"`
}

type SolveRepository interface {
	WithTx(tx *gorm.DB) SolveRepository
	Create(solve *models.Solve) error
	Exists(userID, challengeID uint) (bool, error)
	SolvedChallengeIDs(userID uint) ([]uint, error)
	Count() (int64, error)
	CountByChallenge(challengeID uint) (int64, error)
	Recent(limit int) ([]RecentSolve, error)
	// AggregateUsers 对全体用户做 SUM/COUNT/MAX 聚合，无解题的用户也在结果中
	AggregateUsers() ([]ScoreRow, error)
	// AggregateTeams 经由当前队员关系归集队伍得分
	AggregateTeams() ([]ScoreRow, error)
}

type solveRepository struct {
	db *gorm.DB
}

func NewSolveRepository(db *gorm.DB) SolveRepository {
	return &solveRepository{db: db}
}

func (r *solveRepository) WithTx(tx *gorm.DB) SolveRepository {
	return &solveRepository{db: tx}
}

func (r *solveRepository) Create(solve *models.Solve) error {
	return r.db.Create(solve).Error
}

func (r *solveRepository) Exists(userID, challengeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Solve{}).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Count(&count).Error
	return count > 0, err
}

func (r *solveRepository) SolvedChallengeIDs(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&models.Solve{}).
		Where("user_id = ?", userID).
		Pluck("challenge_id", &ids).Error
	return ids, err
}

func (r *solveRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Solve{}).Count(&count).Error
	return count, err
}

func (r *solveRepository) CountByChallenge(challengeID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Solve{}).Where("challenge_id = ?", challengeID).Count(&count).Error
	return count, err
}

func (r *solveRepository) Recent(limit int) ([]RecentSolve, error) {
	var rows []RecentSolve
	err := r.db.Table("solves s").
		Select("s.id, s.solved_at, s.points_awarded, u.username, c.title, c.category").
		Joins("JOIN users u ON u.id = s.user_id").
		Joins("JOIN challenges c ON c.id = s.challenge_id").
		Order("s.solved_at desc").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}

// scoreScanRow 聚合查询的中间形态。MAX(solved_at) 这类带别名的聚合列
// 会丢掉声明类型，sqlite 驱动把值按存储原样返回成字符串，直接扫进
// *time.Time 会报错；mysql 的 time.Time 经 database/sql 转成 RFC3339Nano
// 字符串。两边统一先扫字符串，再显式解析
type scoreScanRow struct {
	EntityID    uint
	Name        string
	Score       int
	SolveCount  int64
	LastSolveAt *string
}

var solvedAtLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

func parseSolvedAt(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	for _, layout := range solvedAtLayouts {
		if ts, err := time.Parse(layout, *raw); err == nil {
			return &ts
		}
	}
	return nil
}

func toScoreRows(scanned []scoreScanRow) []ScoreRow {
	rows := make([]ScoreRow, 0, len(scanned))
	for _, s := range scanned {
		rows = append(rows, ScoreRow{
			EntityID:    s.EntityID,
			Name:        s.Name,
			Score:       s.Score,
			SolveCount:  s.SolveCount,
			LastSolveAt: parseSolvedAt(s.LastSolveAt),
		})
	}
	return rows
}

func (r *solveRepository) AggregateUsers() ([]ScoreRow, error) {
	var scanned []scoreScanRow
	err := r.db.Table("users u").
		Select("u.id as entity_id, u.username as name, COALESCE(SUM(s.points_awarded), 0) as score, COUNT(s.id) as solve_count, MAX(s.solved_at) as last_solve_at").
		Joins("LEFT JOIN solves s ON s.user_id = u.id").
		Group("u.id, u.username").
		Scan(&scanned).Error
	if err != nil {
		return nil, err
	}
	return toScoreRows(scanned), nil
}

func (r *solveRepository) AggregateTeams() ([]ScoreRow, error) {
	var scanned []scoreScanRow
	err := r.db.Table("teams t").
		Select("t.id as entity_id, t.name as name, COALESCE(SUM(s.points_awarded), 0) as score, COUNT(s.id) as solve_count, MAX(s.solved_at) as last_solve_at").
		Joins("LEFT JOIN team_members m ON m.team_id = t.id").
		Joins("LEFT JOIN solves s ON s.user_id = m.user_id").
		Group("t.id, t.name").
		Scan(&scanned).Error
	if err != nil {
		return nil, err
	}
	return toScoreRows(scanned), nil
}
