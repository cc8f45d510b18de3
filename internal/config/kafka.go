package config

import "github.com/spf13/viper"

// KafkaConfig configures the review hand-off. No brokers disables publishing.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

func NewKafkaConfig(v *viper.Viper) *KafkaConfig {
	return &KafkaConfig{
		Brokers: splitList(v.GetString("KAFKA_BROKERS")),
		Topic:   v.GetString("KAFKA_TOPIC"),
	}
}
