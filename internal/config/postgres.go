package config

import "github.com/spf13/viper"

type PostgresConfig struct {
	Url    string
	Schema string
}

func NewPostgresConfig(v *viper.Viper) *PostgresConfig {
	return &PostgresConfig{
		Url:    v.GetString("DATABASE_URL"),
		Schema: v.GetString("DB_SCHEMA"),
	}
}
