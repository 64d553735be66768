package kafka

import (
	"context"
	"encoding/json"

	"github.com/IBM/sarama"
)

type Producer interface {
	SendTaskEvent(ctx context.Context, topic string, event *TaskEvent) error
	Close() error
}

// TaskEvent is emitted on every task lifecycle transition.
type TaskEvent struct {
	TaskID     string `json:"task_id"`
	TraceID    string `json:"trace_id,omitempty"`
	Kind       string `json:"kind"`
	Status     string `json:"status"`
	OccurredAt string `json:"occurred_at"`
}

type producer struct {
	producer sarama.SyncProducer
}

func NewProducer(brokers []string) (Producer, error) {
	config := sarama.NewConfig()
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Retry.Max = 5
	config.Producer.Return.Successes = true

	p, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &producer{producer: p}, nil
}

func (p *producer) SendTaskEvent(ctx context.Context, topic string, event *TaskEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(event.TaskID),
		Value: sarama.ByteEncoder(data),
	}

	_, _, err = p.producer.SendMessage(msg)
	return err
}

func (p *producer) Close() error {
	return p.producer.Close()
}
