package models

import "time"

// Solve 首次答对时生成，(user_id, challenge_id) 全局唯一，计分以此表为准
type Solve struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UserID        uint      `gorm:"uniqueIndex:uniq_user_challenge;not null" json:"userId"`
	ChallengeID   uint      `gorm:"uniqueIndex:uniq_user_challenge;not null" json:"challengeId"`
	SubmissionID  uint      `gorm:"not null" json:"submissionId"`
	PointsAwarded int       `gorm:"not null" json:"pointsAwarded"`
	SolvedAt      time.Time `gorm:"autoCreateTime" json:"solvedAt"`
}

func (Solve) TableName() string {
	return "solves"
}
