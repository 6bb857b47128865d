package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"propmarket/pkg/config"
	"propmarket/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	EventQueueName  = "marketplace_events"
	EventExchange   = "marketplace"
	EventRoutingKey = "event"
)

// Event names published by the API service.
const (
	EventOrderPaid     = "order_paid"
	EventOfferActivity = "offer_activity"
)

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		EventExchange, // name
		"direct",      // type
		true,          // durable
		false,         // auto-deleted
		false,         // internal
		false,         // no-wait
		nil,           // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		EventQueueName, // name
		true,           // durable
		false,          // delete when unused
		false,          // exclusive
		false,          // no-wait
		nil,            // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		EventQueueName,
		EventRoutingKey,
		EventExchange,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// PublishEvent publishes a marketplace event (order paid, offer activity) to
// the event queue. Delivery is best effort; callers log and continue on error.
func (c *Client) PublishEvent(event string, payload map[string]interface{}) error {
	body := map[string]interface{}{
		"event":   event,
		"payload": payload,
	}

	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	err = c.channel.Publish(
		EventExchange,
		EventRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         data,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish %s event: %v", event, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	return nil
}

// ConsumeEvents consumes marketplace events with manual acknowledgement.
// Failed handlers cause a requeue; malformed payloads are dropped.
func (c *Client) ConsumeEvents(handler func(event string, payload map[string]interface{}) error) error {
	msgs, err := c.channel.Consume(
		EventQueueName,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from queue: %s", EventQueueName)

	go func() {
		for msg := range msgs {
			var body struct {
				Event   string                 `json:"event"`
				Payload map[string]interface{} `json:"payload"`
			}
			if err := json.Unmarshal(msg.Body, &body); err != nil {
				c.logger.Error("[RABBITMQ] Failed to unmarshal event: %v", err)
				msg.Nack(false, false)
				continue
			}

			if err := handler(body.Event, body.Payload); err != nil {
				c.logger.Error("[RABBITMQ] Handler failed for %s event: %v", body.Event, err)
				msg.Nack(false, true)
				continue
			}

			msg.Ack(false)
		}
	}()

	return nil
}
