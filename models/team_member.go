package models

import "time"

type TeamMember struct {
	ID       uint      `gorm:"primarykey" json:"-"`
	TeamID   uint      `gorm:"uniqueIndex:uniq_team_user;not null" json:"teamId"`
	UserID   uint      `gorm:"uniqueIndex:uniq_team_user;not null" json:"userId"`
	User     User      `gorm:"foreignKey:UserID" json:"user,omitempty"`
	JoinedAt time.Time `json:"joinedAt"`
}

func (TeamMember) TableName() string {
	return "team_members"
}
