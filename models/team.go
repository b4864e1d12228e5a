package models

import (
	"time"
)

type Team struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	Name        string       `gorm:"size:100;unique;not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	LeaderID    uint         `gorm:"not null" json:"leaderId"`
	InviteCode  string       `gorm:"size:20;unique;not null" json:"inviteCode"`
	MaxMembers  int          `gorm:"not null;default:4" json:"maxMembers"`
	Members     []TeamMember `gorm:"foreignKey:TeamID" json:"members,omitempty"`
	CreatedAt   time.Time    `json:"createdAt"`
	UpdatedAt   time.Time    `json:"-"`
}

func (Team) TableName() string {
	return "teams"
}
