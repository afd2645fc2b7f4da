// Package main is the entry point for the recipe tracker server.
//
// Its job is deliberately small: read configuration from the environment,
// build the pieces whose backends are deployment decisions (blob store,
// recipe provider), and hand everything to internal/server.
//
// Environment:
//
//	PORT                 listen port (default 4000)
//	JWT_SECRET           token signing secret, required, >= 16 chars
//	DB_PATH              SQLite file (default data/recipes.db)
//	MEMORY_ONLY          "1" to skip SQLite entirely; data dies with the process
//	STORAGE              "disk" (default) or "s3"
//	UPLOAD_DIR           disk mode image directory (default data/uploads)
//	S3_REGION            s3 mode: bucket region
//	S3_ENDPOINT          s3 mode: custom endpoint (MinIO etc.), optional
//	S3_BUCKET            s3 mode: bucket name
//	S3_ACCESS_KEY        s3 mode: access key id
//	S3_SECRET_KEY        s3 mode: secret access key
//	SPOONACULAR_API_KEY  recipe provider key; search/import fail without it
package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sakif/recipe-tracker/internal/blob"
	"github.com/sakif/recipe-tracker/internal/server"
	"github.com/sakif/recipe-tracker/internal/spoonacular"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	port := 4000
	if portStr := os.Getenv("PORT"); portStr != "" {
		var err error
		port, err = strconv.Atoi(portStr)
		if err != nil {
			logger.Error("invalid PORT value", slog.String("value", portStr))
			os.Exit(1)
		}
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		logger.Error("JWT_SECRET is required; generate one with: openssl rand -hex 32")
		os.Exit(1)
	}

	cfg := server.Config{
		Port:       port,
		JWTSecret:  jwtSecret,
		MemoryOnly: os.Getenv("MEMORY_ONLY") == "1",
	}

	if !cfg.MemoryOnly {
		cfg.DBPath = "data/recipes.db"
		if envDB := os.Getenv("DB_PATH"); envDB != "" {
			cfg.DBPath = envDB
		}
		if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
			logger.Error("failed to create database directory",
				slog.String("dir", filepath.Dir(cfg.DBPath)),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
	}

	blobStore, uploadDir, err := buildBlobStore(logger)
	if err != nil {
		logger.Error("failed to configure image storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	cfg.UploadDir = uploadDir

	apiKey := os.Getenv("SPOONACULAR_API_KEY")
	if apiKey == "" {
		logger.Warn("SPOONACULAR_API_KEY not set — recipe search and import will fail")
	}
	provider := spoonacular.New(apiKey)

	srv, err := server.New(cfg, logger, blobStore, provider)
	if err != nil {
		logger.Error("failed to create server", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := srv.Start(); err != nil {
		logger.Error("server error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildBlobStore picks the image backend from STORAGE. The returned dir is
// non-empty only for the disk store, where the server must serve /uploads/*
// itself.
func buildBlobStore(logger *slog.Logger) (blob.Store, string, error) {
	if os.Getenv("STORAGE") == "s3" {
		store, err := blob.NewS3Store(context.Background(), blob.S3Config{
			Region:       os.Getenv("S3_REGION"),
			BaseEndpoint: os.Getenv("S3_ENDPOINT"),
			Bucket:       os.Getenv("S3_BUCKET"),
			AccessKey:    os.Getenv("S3_ACCESS_KEY"),
			SecretKey:    os.Getenv("S3_SECRET_KEY"),
		})
		if err != nil {
			return nil, "", err
		}
		logger.Info("image storage: s3", slog.String("bucket", os.Getenv("S3_BUCKET")))
		return store, "", nil
	}

	dir := "data/uploads"
	if envDir := os.Getenv("UPLOAD_DIR"); envDir != "" {
		dir = envDir
	}
	store, err := blob.NewDiskStore(dir)
	if err != nil {
		return nil, "", err
	}
	logger.Info("image storage: disk", slog.String("dir", dir))
	return store, dir, nil
}
