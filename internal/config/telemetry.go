package config

import (
	"time"

	"github.com/spf13/viper"
)

type TelemetryConfig struct {
	CollectorURL   string
	ExportInterval time.Duration
}

func NewTelemetryConfig(v *viper.Viper) *TelemetryConfig {
	return &TelemetryConfig{
		CollectorURL:   v.GetString("OTEL_COLLECTOR_URL"),
		ExportInterval: v.GetDuration("OTEL_METRIC_INTERVAL"),
	}
}
