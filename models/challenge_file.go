package models

import "time"

type ChallengeFile struct {
	ID          uint      `gorm:"primarykey" json:"id"`
	ChallengeID uint      `gorm:"not null" json:"challengeId"`
	Filename    string    `gorm:"size:255;not null" json:"filename"`
	FilePath    string    `gorm:"size:512;not null" json:"-"`
	FileSize    int64     `gorm:"default:0" json:"fileSize"`
	SHA256      string    `gorm:"size:64" json:"sha256"`
	UploadedAt  time.Time `gorm:"autoCreateTime" json:"uploadedAt"`
}

func (ChallengeFile) TableName() string {
	return "challenge_files"
}
