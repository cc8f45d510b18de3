package config

import "github.com/spf13/viper"

type AppConfig struct {
	DebugMode        bool
	AutoMigrate      bool
	HTTPConfig       *HTTPConfig
	SubmissionConfig *SubmissionConfig
	RedisConfig      *RedisConfig
	PostgresConfig   *PostgresConfig
	JwtConfig        *JwtConfig
	StorageConfig    *StorageConfig
	KafkaConfig      *KafkaConfig
	TelemetryConfig  *TelemetryConfig
	LogConfig        *LogConfig
}

func NewSystemConfig(v *viper.Viper) *AppConfig {
	return &AppConfig{
		DebugMode:        v.GetBool("DEBUG_MODE"),
		AutoMigrate:      v.GetBool("AUTO_MIGRATE"),
		HTTPConfig:       NewHTTPConfig(v),
		SubmissionConfig: NewSubmissionConfig(v),
		RedisConfig:      NewRedisConfig(v),
		PostgresConfig:   NewPostgresConfig(v),
		JwtConfig:        NewJwtConfig(v),
		StorageConfig:    NewStorageConfig(v),
		KafkaConfig:      NewKafkaConfig(v),
		TelemetryConfig:  NewTelemetryConfig(v),
		LogConfig:        NewLogConfig(v),
	}
}
