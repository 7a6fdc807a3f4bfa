package cron

import (
	"context"
	"encoding/json"
	"fmt"

	"tippspiel/config"
	"tippspiel/metrics"
	"tippspiel/service"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const resultSourceFeed = "feed"

// ResultMessage is one entry of the result feed. Both scores null clears the result.
type ResultMessage struct {
	MatchId   int  `json:"match_id"`
	HomeScore *int `json:"home_score"`
	AwayScore *int `json:"away_score"`
}

type MessageReader interface {
	ReadMessage(ctx context.Context) (kafka.Message, error)
	Close() error
}

type ResultConsumer struct {
	reader        MessageReader
	resultService *service.ResultService
	log           *logrus.Entry
}

func NewResultConsumer(reader MessageReader, db *gorm.DB) *ResultConsumer {
	return &ResultConsumer{
		reader:        reader,
		resultService: service.NewResultService(db),
		log:           config.Logger().WithField("component", "result-consumer"),
	}
}

func (r *ResultConsumer) handle(msg kafka.Message) error {
	var result ResultMessage
	if err := json.Unmarshal(msg.Value, &result); err != nil {
		return fmt.Errorf("malformed result message: %w", err)
	}
	if result.MatchId <= 0 {
		return fmt.Errorf("result message without match id")
	}
	return r.resultService.ApplyResult(result.MatchId, result.HomeScore, result.AwayScore, resultSourceFeed)
}

// Run applies results until the context is cancelled or the reader fails.
// Messages that cannot be applied are logged and skipped.
func (r *ResultConsumer) Run(ctx context.Context) error {
	defer r.reader.Close()
	for {
		msg, err := r.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if err := r.handle(msg); err != nil {
			metrics.ResultMessagesFailedCounter.Inc()
			r.log.WithError(err).WithFields(logrus.Fields{
				"partition": msg.Partition,
				"offset":    msg.Offset,
			}).Warn("skipping result message")
		}
	}
}

// StartResultConsumer runs the consumer in the background if a broker is configured.
func StartResultConsumer(ctx context.Context, db *gorm.DB) error {
	reader, err := config.GetResultReader()
	if err != nil {
		return err
	}
	consumer := NewResultConsumer(reader, db)
	go func() {
		if err := consumer.Run(ctx); err != nil {
			consumer.log.WithError(err).Error("result consumer stopped")
		}
	}()
	return nil
}
