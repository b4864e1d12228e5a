package models

import (
	"time"
)

type ChallengeDifficulty string

const (
	DifficultyEasy   ChallengeDifficulty = "easy"
	DifficultyMedium ChallengeDifficulty = "medium"
	DifficultyHard   ChallengeDifficulty = "hard"
)

type Challenge struct {
	ID            uint                `gorm:"primarykey" json:"id"`
	Title         string              `gorm:"size:100;not null" json:"title"`
	Description   string              `gorm:"type:text;not null" json:"description"`
	Category      string              `gorm:"size:50;not null" json:"category"`
	Difficulty    ChallengeDifficulty `gorm:"size:20;default:'medium'" json:"difficulty"`
	Points        int                 `gorm:"not null" json:"points"`
	Flag          string              `gorm:"size:255;not null" json:"-"`
	CompetitionID uint                `gorm:"not null" json:"competitionId"`
	IsVisible     bool                `gorm:"default:false" json:"isVisible"`
	// MaxAttempts 为 0 表示不限次数
	MaxAttempts int             `gorm:"default:0" json:"maxAttempts"`
	Files       []ChallengeFile `gorm:"foreignKey:ChallengeID" json:"files,omitempty"`
	Hints       []Hint          `gorm:"foreignKey:ChallengeID" json:"hints,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

func (Challenge) TableName() string {
	return "challenges"
}
