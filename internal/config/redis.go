package config

import "github.com/spf13/viper"

// RedisConfig selects the shared rate-limit store. An empty Url keeps the
// limiter in process memory.
type RedisConfig struct {
	DB       int
	Url      string
	Password string
}

func NewRedisConfig(v *viper.Viper) *RedisConfig {
	return &RedisConfig{
		DB:       v.GetInt("REDIS_DB"),
		Url:      v.GetString("REDIS_ADDR"),
		Password: v.GetString("REDIS_PASSWORD"),
	}
}
