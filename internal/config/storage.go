package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type StorageConfig struct {
	Driver         string
	Bucket         string
	Region         string
	Endpoint       string
	AccessKey      string
	SecretKey      string
	ForcePathStyle bool
	BaseDir        string
	SignedURLTTL   time.Duration
}

func NewStorageConfig(v *viper.Viper) *StorageConfig {
	return &StorageConfig{
		Driver:         strings.ToLower(v.GetString("STORAGE_DRIVER")),
		Bucket:         v.GetString("STORAGE_BUCKET"),
		Region:         v.GetString("STORAGE_REGION"),
		Endpoint:       v.GetString("STORAGE_ENDPOINT"),
		AccessKey:      v.GetString("STORAGE_ACCESS_KEY"),
		SecretKey:      v.GetString("STORAGE_SECRET_KEY"),
		ForcePathStyle: v.GetBool("STORAGE_FORCE_PATH_STYLE"),
		BaseDir:        v.GetString("STORAGE_BASE_DIR"),
		SignedURLTTL:   v.GetDuration("STORAGE_SIGNED_URL_TTL"),
	}
}
