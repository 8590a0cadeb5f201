package config

import "os"

// DispatchConfig holds what the assignment notifier needs. An empty
// RabbitMQURL disables publishing.
type DispatchConfig struct {
	RabbitMQURL string
	QueueName   string
}

func LoadDispatchConfig() DispatchConfig {
	queueName := os.Getenv("DISPATCH_QUEUE_NAME")
	if queueName == "" {
		queueName = "dispatch.assignments"
	}

	return DispatchConfig{
		RabbitMQURL: os.Getenv("RABBITMQ_URL"),
		QueueName:   queueName,
	}
}

func (c DispatchConfig) Enabled() bool {
	return c.RabbitMQURL != ""
}
