package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	ServerAddr     string
	DB             DBConfig
	RedisAddr      string
	RedisPassword  string
	JWTSecret      string
	JWTExpireHours int
	FlagPrefixes   []string
	UploadDir      string
}

type DBConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
}

// Load 从环境变量读取配置，未设置的项使用默认值
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("SERVER_ADDR", ":8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 3306)
	v.SetDefault("DB_USER", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "ctfwar")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("JWT_EXPIRE_HOURS", 168)
	v.SetDefault("FLAG_PREFIXES", "CTF,flag")
	v.SetDefault("UPLOAD_DIR", "uploads")

	secret := v.GetString("JWT_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	cfg := &Config{
		ServerAddr: v.GetString("SERVER_ADDR"),
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetInt("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
		},
		RedisAddr:      v.GetString("REDIS_ADDR"),
		RedisPassword:  v.GetString("REDIS_PASSWORD"),
		JWTSecret:      secret,
		JWTExpireHours: v.GetInt("JWT_EXPIRE_HOURS"),
		FlagPrefixes:   ParsePrefixes(v.GetString("FLAG_PREFIXES")),
		UploadDir:      v.GetString("UPLOAD_DIR"),
	}
	return cfg, nil
}

// ParsePrefixes 解析逗号分隔的 flag 前缀白名单，前后空白会被去除
func ParsePrefixes(raw string) []string {
	parts := strings.Split(raw, ",")
	prefixes := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			prefixes = append(prefixes, p)
		}
	}
	return prefixes
}
