package config

import (
	"log"
	"os"
)

type Config struct {
	Port           string
	DBDSN          string
	MediaDir       string
	LogFile        string
	S3Bucket       string // empty disables remote image storage
	S3Region       string
	S3PublicBase   string // CDN/base URL for public object URLs
	ImageCacheFile string // local fallback image cache (JSON)
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "cantrack.db" // sqlite file in project root
	}
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./web/media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./cantrack.log"
	}
	cacheFile := os.Getenv("IMAGE_CACHE_FILE")
	if cacheFile == "" {
		cacheFile = media + "/can_images.json"
	}

	cfg := Config{
		Port:           port,
		DBDSN:          dsn,
		MediaDir:       media,
		LogFile:        logFile,
		S3Bucket:       os.Getenv("S3_BUCKET"),
		S3Region:       os.Getenv("S3_REGION"),
		S3PublicBase:   os.Getenv("S3_PUBLIC_BASE_URL"),
		ImageCacheFile: cacheFile,
	}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s S3_BUCKET=%s",
		cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.S3Bucket)
	return cfg
}
