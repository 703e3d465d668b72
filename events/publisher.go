package events

import (
	"encoding/json"
	"log"
	"time"

	"github.com/IBM/sarama"
)

const (
	TopicOrderCreated   = "order.created"
	TopicOrderDeleted   = "order.deleted"
	TopicCardCreated    = "card.created"
	TopicPaymentCreated = "payment.created"
)

// Publisher announces committed domain changes. Publishing is best-effort:
// failures are logged and never fail the request that produced the event.
type Publisher interface {
	Publish(topic, key string, payload interface{})
}

// Envelope is the message body written to every topic.
type Envelope struct {
	EventType  string      `json:"event_type"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

// Nop discards every event. It is used when no brokers are configured.
type Nop struct{}

func (Nop) Publish(string, string, interface{}) {}

type KafkaPublisher struct {
	producer sarama.SyncProducer
	prefix   string
}

// NewKafkaPublisher dials the brokers with retries and returns a publisher
// writing to "<prefix>.<topic>".
func NewKafkaPublisher(brokers []string, prefix string) (*KafkaPublisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	var producer sarama.SyncProducer
	var err error
	for i := 1; i <= 5; i++ {
		producer, err = sarama.NewSyncProducer(brokers, config)
		if err == nil {
			log.Println("✅ Kafka producer initialized")
			return NewKafkaPublisherFromProducer(producer, prefix), nil
		}
		log.Printf("⏳ Waiting for Kafka... (%d/5) Error: %v", i, err)
		time.Sleep(2 * time.Second)
	}
	return nil, err
}

func NewKafkaPublisherFromProducer(producer sarama.SyncProducer, prefix string) *KafkaPublisher {
	return &KafkaPublisher{producer: producer, prefix: prefix}
}

func (p *KafkaPublisher) topic(name string) string {
	if p.prefix == "" {
		return name
	}
	return p.prefix + "." + name
}

func (p *KafkaPublisher) Publish(topic, key string, payload interface{}) {
	data, err := json.Marshal(Envelope{EventType: topic, OccurredAt: time.Now().UTC(), Data: payload})
	if err != nil {
		log.Printf("❌ Failed to marshal %s event: %v", topic, err)
		return
	}

	msg := &sarama.ProducerMessage{
		Topic: p.topic(topic),
		Key:   sarama.StringEncoder(key),
		Value: sarama.ByteEncoder(data),
	}
	if _, _, err := p.producer.SendMessage(msg); err != nil {
		log.Printf("❌ Failed to send %s event for %s: %v", topic, key, err)
		return
	}
	log.Printf("📤 Published %s event for %s", topic, key)
}

func (p *KafkaPublisher) Close() error {
	return p.producer.Close()
}
