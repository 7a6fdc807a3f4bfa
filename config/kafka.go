package config

import (
	"fmt"

	"github.com/segmentio/kafka-go"
)

const resultsConsumerGroup = "tippspiel-results"

func GetResultReader() (*kafka.Reader, error) {
	broker := Env().KafkaBroker
	if broker == "" {
		return nil, fmt.Errorf("KAFKA_BROKER environment variable not set")
	}
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     []string{broker},
		Topic:       Env().ResultsTopic,
		GroupID:     resultsConsumerGroup,
		MaxBytes:    1e6,
		StartOffset: kafka.FirstOffset,
	}), nil
}
