package config

import (
	"os"
	"time"
)

type JwtConfig struct {
	Secret   string
	TokenTTL time.Duration
	// AdminUser and AdminPasswordHash guard contest and problem creation.
	AdminUser         string
	AdminPasswordHash string
}

func NewJwtConfig() *JwtConfig {
	return &JwtConfig{
		Secret:            os.Getenv("JWT_SECRET"),
		TokenTTL:          getSecondsEnv("JWT_TTL_SEC", 3600),
		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
	}
}
