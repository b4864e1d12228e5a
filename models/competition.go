package models

import (
	"time"
)

type CompetitionType string

const (
	CompetitionIndividual CompetitionType = "individual"
	CompetitionTeam       CompetitionType = "team"
)

type Competition struct {
	ID              uint            `gorm:"primarykey" json:"id"`
	Name            string          `gorm:"size:100;not null" json:"name"`
	Description     string          `gorm:"type:text" json:"description"`
	StartTime       time.Time       `gorm:"not null" json:"startTime"`
	EndTime         time.Time       `gorm:"not null" json:"endTime"`
	CompetitionType CompetitionType `gorm:"size:20;default:'individual'" json:"competitionType"`
	IsPublic        bool            `gorm:"default:true" json:"isPublic"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"-"`
}

func (Competition) TableName() string {
	return "competitions"
}
