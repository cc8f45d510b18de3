package config

import "github.com/spf13/viper"

type JwtConfig struct {
	Secret string
}

func NewJwtConfig(v *viper.Viper) *JwtConfig {
	return &JwtConfig{
		Secret: v.GetString("JWT_SECRET"),
	}
}
