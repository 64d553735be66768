package config

import (
	"os"
	"strconv"
)

type Config struct {
	Port             string
	Env              string
	UploadDir        string
	MaxFileSize      int64
	DefaultChunkSize int
	WorkerCount      int
	RedisAddr        string
	KafkaBrokers     string
	KafkaTopic       string
}

func Load() *Config {
	return &Config{
		Port:             getEnv("SERVICE_PORT", "8082"),
		Env:              getEnv("ENV", "development"),
		UploadDir:        getEnv("UPLOAD_DIR", os.TempDir()),
		MaxFileSize:      getEnvAsInt64("MAX_FILE_SIZE", 100*1024*1024),
		DefaultChunkSize: getEnvAsInt("DEFAULT_CHUNK_SIZE", 4096),
		WorkerCount:      getEnvAsInt("WORKER_COUNT", 0),
		RedisAddr:        getEnv("REDIS_ADDR", ""),
		KafkaBrokers:     getEnv("KAFKA_BROKERS", ""),
		KafkaTopic:       getEnv("KAFKA_TOPIC", "hash_task_events"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}
