package database

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	"github.com/shaymimran45/CTF-WAR-2/config"
	"github.com/shaymimran45/CTF-WAR-2/models"
)

// New 建立 MySQL 连接并配置连接池
func New(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Name)

	// TranslateError: 把驱动层的唯一约束冲突翻译成 gorm.ErrDuplicatedKey，
	// 并发重复 solve 的判定依赖它
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	// 避免 MySQL wait_timeout 掐掉长时间空闲的连接
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}

// Migrate 自动迁移全部数据表
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Competition{},
		&models.Challenge{},
		&models.ChallengeFile{},
		&models.Hint{},
		&models.Submission{},
		&models.Solve{},
	)
}
