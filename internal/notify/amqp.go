package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"
)

// publishTimeout bounds a single publish so a stalled broker cannot block
// the caller.
const publishTimeout = 5 * time.Second

// AMQPPort publishes events to a direct exchange with one routing key per
// user, so clients can bind a queue for exactly the user they serve.
type AMQPPort struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	exchange string
}

// NewAMQPPort connects to the broker and declares the exchange.
func NewAMQPPort(url, exchange string) (*AMQPPort, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"direct", // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return &AMQPPort{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
	}, nil
}

// Emit publishes the event with the user ID as routing key.
func (p *AMQPPort) Emit(ctx context.Context, event Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		"user."+event.UserID.String(), // routing key, one channel per user
		false,                         // mandatory
		false,                         // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    event.Timestamp,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	log.Debug().
		Str("user", event.UserID.String()).
		Str("kind", string(event.Kind)).
		Msg("event published")

	return nil
}

// Close closes the channel and the connection.
func (p *AMQPPort) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
