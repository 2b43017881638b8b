package config

// RelayConfig holds what the outbox relay needs and nothing else.
type RelayConfig struct {
	DatabaseURL    string
	RabbitMQURL    string
	EventQueueName string
	HealthPort     string
}

func LoadRelayConfig() *RelayConfig {
	LoadEnv()

	return &RelayConfig{
		DatabaseURL:    mustEnv("DB_CONNECTION_STRING"),
		RabbitMQURL:    mustEnv("RABBITMQ_URL"),
		EventQueueName: getEnv("EVENT_QUEUE_NAME", "campus_events"),
		HealthPort:     getEnv("RELAY_HEALTH_PORT", "8081"),
	}
}
