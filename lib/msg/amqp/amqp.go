// Package amqp implements the message broker interface for AMQP compliant brokers (ie RabbitMQ)
package amqp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/streadway/amqp"
	"go.uber.org/zap"

	mtype "github.com/tarancss/chaingate/lib/msg/types"
)

// exchange is the topic exchange the gateway publishes submissions to, routed by coin.network.txid.
const exchange = "subs"

// Amqp implements a connection to a broker and a channel for reuse.
type Amqp struct {
	conn *amqp.Connection
	log  *zap.Logger

	mu sync.Mutex
	ch *amqp.Channel
}

// New instantiates a new amqp broker.
func New(uri string, log *zap.Logger) (*Amqp, error) {
	conn, err := amqp.Dial(uri)
	if err != nil {
		return nil, fmt.Errorf("cannot connect to amqp broker: %w", err)
	}

	log.Info("connected to amqp broker")

	return &Amqp{conn: conn, log: log}, nil
}

// Setup obtains an amqp channel and declares the "subs" exchange the gateway service publishes submissions to.
func (r *Amqp) Setup(context.Context) error {
	// obtain a one-use channel
	channel, err := r.conn.Channel()
	if err != nil {
		return fmt.Errorf("cannot open amqp channel: %w", err)
	}
	defer channel.Close()

	if err = channel.ExchangeDeclare(exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		return fmt.Errorf("cannot declare exchange %s: %w", exchange, err)
	}

	return nil
}

// Close terminates gracefully the connection to the AMQP message broker
func (r *Amqp) Close() error {
	r.mu.Lock()
	if r.ch != nil {
		if err := r.ch.Close(); err != nil {
			r.log.Warn("error closing amqp channel", zap.Error(err))
		}

		r.ch = nil
	}
	r.mu.Unlock()

	return r.conn.Close()
}

// channel returns the shared channel, opening it if not present.
func (r *Amqp) channel() (*amqp.Channel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.ch == nil {
		ch, err := r.conn.Channel()
		if err != nil {
			return nil, fmt.Errorf("cannot open amqp channel: %w", err)
		}

		r.ch = ch
	}

	return r.ch, nil
}

// publishing builds the message of a submission.
func publishing(s mtype.Submission) (amqp.Publishing, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("cannot encode submission: %w", err)
	}

	return amqp.Publishing{
		Headers:      amqp.Table{"x-sub-name": s.Key()},
		Body:         body,
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    s.Submitted,
	}, nil
}

// SendSubmission publishes a submission to the "subs" exchange.
func (r *Amqp) SendSubmission(_ context.Context, s mtype.Submission) error {
	msg, err := publishing(s)
	if err != nil {
		return err
	}

	ch, err := r.channel()
	if err != nil {
		return err
	}

	if err = ch.Publish(exchange, s.Key(), false, false, msg); err != nil {
		return fmt.Errorf("cannot publish submission %s: %w", s.TxID, err)
	}

	return nil
}

// GetSubmissions consumes the submissions of coin from its queue bound to the "subs" exchange, pushing them to the
// returned channel. The consumer is cancelled when ctx is done.
func (r *Amqp) GetSubmissions(ctx context.Context, coin string,
	mut *sync.Mutex) (<-chan mtype.Submission, <-chan error, error) {
	ch, err := r.channel()
	if err != nil {
		return nil, nil, err
	}

	queue, consumer := exchange+"."+coin, "tracker-"+coin

	if _, err = ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, nil, fmt.Errorf("cannot declare queue %s: %w", queue, err)
	}

	if err = ch.QueueBind(queue, coin+".#", exchange, false, nil); err != nil {
		return nil, nil, fmt.Errorf("cannot bind queue %s: %w", queue, err)
	}

	msgs, err := ch.Consume(queue, consumer, false, false, false, false, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot consume queue %s: %w", queue, err)
	}

	subs := make(chan mtype.Submission)
	errs := make(chan error)

	go func() {
		<-ctx.Done()

		_ = ch.Cancel(consumer, false)
	}()

	go func() {
		defer close(subs)
		defer close(errs)

		for m := range msgs {
			var s mtype.Submission
			if err := json.Unmarshal(m.Body, &s); err != nil {
				// a message that cannot be decoded will never be, drop it
				_ = m.Reject(false)

				select {
				case errs <- fmt.Errorf("cannot decode submission: %w", err):
				case <-ctx.Done():
					return
				}

				continue
			}

			select {
			case subs <- s:
			case <-ctx.Done():
				_ = m.Nack(false, true)

				return
			}

			mut.Lock() // wait for the tracker to finish processing the submission
			_ = m.Ack(false)
		}
	}()

	return subs, errs, nil
}
