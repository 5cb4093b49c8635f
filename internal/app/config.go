package app

import (
	"time"

	"github.com/yungbote/skillbridge-backend/internal/logger"
	"github.com/yungbote/skillbridge-backend/internal/utils"
)

type Config struct {
	Port          string
	StaticDir     string
	DynamicTTL    time.Duration
	ReferenceTTL  time.Duration
	SheetsTimeout time.Duration
}

func LoadConfig(log *logger.Logger) Config {
	port := utils.GetEnv("PORT", "8080", log)
	staticDir := utils.GetEnv("STATIC_DIR", "frontend/dist", log)
	dynamicTTLSeconds := utils.GetEnvAsInt("CACHE_TTL_SECONDS", 30, log)
	referenceTTLSeconds := utils.GetEnvAsInt("STATIC_CACHE_TTL_SECONDS", 300, log)
	sheetsTimeoutSeconds := utils.GetEnvAsInt("SHEETS_TIMEOUT_SECONDS", 30, log)
	return Config{
		Port:          port,
		StaticDir:     staticDir,
		DynamicTTL:    time.Duration(dynamicTTLSeconds) * time.Second,
		ReferenceTTL:  time.Duration(referenceTTLSeconds) * time.Second,
		SheetsTimeout: time.Duration(sheetsTimeoutSeconds) * time.Second,
	}
}
