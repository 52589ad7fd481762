package queue

import (
	"encoding/json"
	"log"

	amqp "github.com/rabbitmq/amqp091-go"
)

// SalesNotifier tells the sales team a verified lead was handed off.
type SalesNotifier interface {
	NotifyLeadSynced(payload LeadSyncedPayload) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier SalesNotifier
}

func NewWorker(ch *amqp.Channel, notifier SalesNotifier) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
	}
}

func (w *Worker) Start(queueName string) {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual is safer)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		log.Fatalf("❌ Failed to register RabbitMQ consumer: %s", err)
	}

	forever := make(chan bool)

	go func() {
		for d := range msgs {
			var payload LeadSyncedPayload
			if err := json.Unmarshal(d.Body, &payload); err != nil {
				log.Printf("❌ [WORKER] invalid JSON: %s", err)
				// Malformed message. Reject without requeue so it hits the DLQ.
				d.Nack(false, false)
				continue
			}

			log.Printf("📥 [WORKER] lead synced event for %s (%s, score %d)",
				payload.Name, payload.MostLikelyCountry, payload.ConfidenceScore)

			if err := w.Notifier.NotifyLeadSynced(payload); err != nil {
				log.Printf("❌ [WORKER] sales notification failed: %s", err)
				d.Nack(false, false)
			} else {
				d.Ack(false)
			}
		}
	}()

	log.Printf(" [*] Worker running, waiting on queue '%s'", queueName)
	<-forever
}
