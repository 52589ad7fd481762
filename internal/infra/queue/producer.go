package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// LeadSyncedPayload is the event handed to the downstream pipeline when a
// verified lead is forwarded to the sales team.
type LeadSyncedPayload struct {
	LeadID            string    `json:"lead_id"`
	Name              string    `json:"name"`
	MostLikelyCountry string    `json:"most_likely_country"`
	ConfidenceScore   int       `json:"confidence_score"`
	ForwardedAt       time.Time `json:"forwarded_at"`
}

type QueueProducerInterface interface {
	PublishLeadSynced(ctx context.Context, payload LeadSyncedPayload) error
}

type RabbitMQProducer struct {
	Conn *amqp.Connection
	Ch   *amqp.Channel
}

func NewProducer(conn *amqp.Connection, ch *amqp.Channel) *RabbitMQProducer {
	return &RabbitMQProducer{
		Conn: conn,
		Ch:   ch,
	}
}

func (p *RabbitMQProducer) PublishLeadSynced(ctx context.Context, payload LeadSyncedPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	err = p.Ch.PublishWithContext(ctx,
		ExchangeName,
		RoutingKey,
		false, // Mandatory
		false, // Immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent, // survives a broker restart
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish to RabbitMQ: %w", err)
	}

	return nil
}
