package models

import "time"

// Submission 每次 flag 提交都会留一条记录，只增不改
type Submission struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UserID        uint      `gorm:"index;not null" json:"userId"`
	ChallengeID   uint      `gorm:"index;not null" json:"challengeId"`
	SubmittedFlag string    `gorm:"size:255;not null" json:"submittedFlag"`
	IsCorrect     bool      `json:"isCorrect"`
	PointsAwarded int       `gorm:"default:0" json:"pointsAwarded"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (Submission) TableName() string {
	return "submissions"
}
