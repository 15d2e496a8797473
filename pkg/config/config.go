// Package config loads publishing settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded when no explicit env file is given
const DefaultEnvFile = ".env"

// S3Config holds the credentials and target for publishing renders
type S3Config struct {
	AccessKey string
	SecretKey string
	Endpoint  string // Empty for AWS; set for S3-compatible stores
	Region    string
	Bucket    string
	Prefix    string // Key prefix for uploaded objects
}

// LoadEnv loads variables from path into the process environment without
// overriding variables that are already set. An empty path loads
// DefaultEnvFile if it exists; an explicit path must exist.
func LoadEnv(path string) error {
	if path == "" {
		if _, err := os.Stat(DefaultEnvFile); errors.Is(err, os.ErrNotExist) {
			return nil
		}
		path = DefaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// getEnv returns the environment variable or fallback when unset
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// S3FromEnv reads the S3_* variables
func S3FromEnv() S3Config {
	return S3Config{
		AccessKey: os.Getenv("S3_ACCESS_KEY"),
		SecretKey: os.Getenv("S3_SECRET_KEY"),
		Endpoint:  os.Getenv("S3_ENDPOINT"),
		Region:    getEnv("S3_REGION", "us-east-1"),
		Bucket:    os.Getenv("S3_BUCKET"),
		Prefix:    getEnv("S3_PREFIX", "renders"),
	}
}

// Validate reports the first missing required setting
func (c S3Config) Validate() error {
	switch {
	case c.Bucket == "":
		return errors.New("S3_BUCKET is not set")
	case c.AccessKey == "" || c.SecretKey == "":
		return errors.New("S3_ACCESS_KEY and S3_SECRET_KEY must both be set")
	}
	return nil
}
