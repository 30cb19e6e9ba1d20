package events

import (
	"encoding/json"
	"fmt"
	"time"

	"gossipbot/types"

	"github.com/IBM/sarama"
)

// ArticleStored is published once per article whose chunks were persisted.
type ArticleStored struct {
	Event    string    `json:"event"`
	URL      string    `json:"url"`
	Title    string    `json:"title"`
	Source   string    `json:"source"`
	Chunks   int       `json:"chunks"`
	StoredAt time.Time `json:"stored_at"`
}

// RunCompleted is published once at the end of an ingestion run.
type RunCompleted struct {
	Event       string            `json:"event"`
	Stats       types.IngestStats `json:"stats"`
	CompletedAt time.Time         `json:"completed_at"`
}

// Publisher emits ingestion events to a Kafka topic. Downstream consumers
// use them to react to freshly stored articles.
type Publisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewPublisher connects a synchronous producer to the given brokers.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForLocal
	cfg.Producer.Return.Successes = true

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating kafka producer: %w", err)
	}
	return &Publisher{producer: producer, topic: topic}, nil
}

// PublishArticleStored emits an ArticleStored event keyed by article URL.
func (p *Publisher) PublishArticleStored(article types.Article, chunks int) error {
	event := ArticleStored{
		Event:    "article_stored",
		URL:      article.URL,
		Title:    article.Title,
		Source:   article.Source,
		Chunks:   chunks,
		StoredAt: time.Now(),
	}
	return p.send(article.URL, event)
}

// PublishRunCompleted emits the run summary.
func (p *Publisher) PublishRunCompleted(stats types.IngestStats) error {
	event := RunCompleted{
		Event:       "run_completed",
		Stats:       stats,
		CompletedAt: time.Now(),
	}
	return p.send("", event)
}

func (p *Publisher) send(key string, event any) error {
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Value: sarama.ByteEncoder(value),
	}
	if key != "" {
		msg.Key = sarama.StringEncoder(key)
	}
	_, _, err = p.producer.SendMessage(msg)
	return err
}

// Close shuts down the producer.
func (p *Publisher) Close() error {
	return p.producer.Close()
}
