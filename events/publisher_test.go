package events

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKafkaPublisherSendsEnvelope(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		var env Envelope
		if err := json.Unmarshal(val, &env); err != nil {
			return err
		}
		if env.EventType != TopicOrderCreated {
			return errors.New("unexpected event type " + env.EventType)
		}
		data, ok := env.Data.(map[string]interface{})
		if !ok || data["id"] != "order-1" {
			return errors.New("unexpected payload")
		}
		return nil
	})

	pub := NewKafkaPublisherFromProducer(producer, "orders-api")
	pub.Publish(TopicOrderCreated, "order-1", map[string]string{"id": "order-1"})

	require.NoError(t, pub.Close())
}

func TestKafkaPublisherSwallowsSendErrors(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	pub := NewKafkaPublisherFromProducer(producer, "")
	assert.NotPanics(t, func() {
		pub.Publish(TopicPaymentCreated, "payment-1", struct{}{})
	})
	require.NoError(t, pub.Close())
}

func TestTopicPrefix(t *testing.T) {
	assert.Equal(t, "orders-api.card.created", (&KafkaPublisher{prefix: "orders-api"}).topic(TopicCardCreated))
	assert.Equal(t, "card.created", (&KafkaPublisher{}).topic(TopicCardCreated))
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = Nop{}
	assert.NotPanics(t, func() { p.Publish(TopicOrderDeleted, "x", nil) })
}
