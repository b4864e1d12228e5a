package models

import "time"

type Hint struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ChallengeID uint      `gorm:"not null" json:"challengeId"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Penalty     int       `gorm:"default:0" json:"penalty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func (Hint) TableName() string {
	return "hints"
}
