// Package kafka implements the message broker interface for Kafka. Submissions of each coin go to their own topic,
// keyed by network and transaction id.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	mtype "github.com/tarancss/chaingate/lib/msg/types"
)

const topicPrefix = "chaingate.submissions."

// retryDelay is the wait after a failed fetch before fetching again.
var retryDelay = time.Second

// Kafka implements a producer of submissions and the consumers of the coins tracked.
type Kafka struct {
	brokers []string
	writer  *kafka.Writer
	log     *zap.Logger

	mu      sync.Mutex
	readers []*kafka.Reader
}

// New returns a broker for the comma separated list of brokers in conn (ie. localhost:9092,localhost:9093).
func New(conn string, log *zap.Logger) (*Kafka, error) {
	brokers := strings.Split(conn, ",")
	for i := range brokers {
		brokers[i] = strings.TrimSpace(brokers[i])
		if brokers[i] == "" {
			return nil, fmt.Errorf("invalid kafka brokers %q", conn)
		}
	}

	return &Kafka{
		brokers: brokers,
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Balancer:               &kafka.Hash{},
			AllowAutoTopicCreation: true,
			RequiredAcks:           kafka.RequireAll,
			BatchTimeout:           10 * time.Millisecond,
		},
		log: log,
	}, nil
}

func topic(coin string) string {
	return topicPrefix + coin
}

// Setup checks the brokers are reachable.
func (k *Kafka) Setup(ctx context.Context) error {
	var errs []error

	for _, b := range k.brokers {
		conn, err := kafka.DialContext(ctx, "tcp", b)
		if err != nil {
			errs = append(errs, err)

			continue
		}

		return conn.Close()
	}

	return fmt.Errorf("no kafka broker reachable: %w", errors.Join(errs...))
}

// Close flushes pending submissions and closes the consumers.
func (k *Kafka) Close() error {
	errs := []error{k.writer.Close()}

	k.mu.Lock()
	for _, r := range k.readers {
		errs = append(errs, r.Close())
	}

	k.readers = nil
	k.mu.Unlock()

	return errors.Join(errs...)
}

func message(s mtype.Submission) (kafka.Message, error) {
	body, err := json.Marshal(s)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("cannot encode submission: %w", err)
	}

	return kafka.Message{
		Topic: topic(s.Coin),
		Key:   []byte(s.Network + "." + s.TxID),
		Value: body,
		Time:  s.Submitted,
	}, nil
}

// SendSubmission publishes a submission to the topic of its coin.
func (k *Kafka) SendSubmission(ctx context.Context, s mtype.Submission) error {
	m, err := message(s)
	if err != nil {
		return err
	}

	if err = k.writer.WriteMessages(ctx, m); err != nil {
		return fmt.Errorf("kafka write error: %w", err)
	}

	return nil
}

// GetSubmissions consumes the submissions of coin in the "tracker-<coin>" consumer group, pushing them to the returned
// channel. Offsets are committed once the caller unlocks mut. Consumption stops when ctx is done.
func (k *Kafka) GetSubmissions(ctx context.Context, coin string,
	mut *sync.Mutex) (<-chan mtype.Submission, <-chan error, error) {
	r := kafka.NewReader(kafka.ReaderConfig{
		Brokers:     k.brokers,
		GroupID:     "tracker-" + coin,
		Topic:       topic(coin),
		MinBytes:    1,
		MaxBytes:    10e6,
		StartOffset: kafka.FirstOffset,
	})

	k.mu.Lock()
	k.readers = append(k.readers, r)
	k.mu.Unlock()

	subs := make(chan mtype.Submission)
	errs := make(chan error)

	go func() {
		defer close(subs)
		defer close(errs)

		for {
			m, err := r.FetchMessage(ctx)
			if err != nil {
				if ctx.Err() != nil || errors.Is(err, io.EOF) {
					return
				}

				k.log.Warn("kafka fetch error", zap.String("coin", coin), zap.Error(err))
				time.Sleep(retryDelay)

				continue
			}

			var s mtype.Submission
			if err = json.Unmarshal(m.Value, &s); err != nil {
				_ = r.CommitMessages(ctx, m)

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
				return
			}

			mut.Lock() // wait for the tracker to finish processing the submission

			if err = r.CommitMessages(ctx, m); err != nil {
				k.log.Warn("kafka commit error", zap.String("coin", coin), zap.Error(err))
			}
		}
	}()

	return subs, errs, nil
}
