package kafka_client

type KafkaConfig struct {
	Broker string
	Topic  string
}

// GetKafkaConfig falls back to the default issues topic when topic is empty.
func GetKafkaConfig(broker, topic string) KafkaConfig {
	if topic == "" {
		topic = KAFKA_TOPIC_REVIEW_ISSUES
	}
	return KafkaConfig{
		Broker: broker,
		Topic:  topic,
	}
}
