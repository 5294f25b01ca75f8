// Package broker implements the opening of message broker connections.
package broker

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/tarancss/chaingate/lib/msg"
	"github.com/tarancss/chaingate/lib/msg/amqp"
	"github.com/tarancss/chaingate/lib/msg/kafka"
)

// Message broker types
const (
	RABBITMQ string = "rabbitmq"
	KAFKA    string = "kafka"
)

// ErrUnknownType is returned for a broker type that is not implemented.
var ErrUnknownType = errors.New("unknown message broker type")

// New returns a new message broker connection according to the options (broker type). An empty type returns no
// broker, submissions are then not published.
func New(options, connection string, log *zap.Logger) (msg.MsgBroker, error) {
	var (
		mb  msg.MsgBroker
		err error
	)

	switch options {
	case RABBITMQ:
		mb, err = amqp.New(connection, log)
	case KAFKA:
		mb, err = kafka.New(connection, log)
	case "":
		return nil, nil //nolint:nilnil // no broker configured
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownType, options)
	}

	if err != nil {
		return nil, err
	}

	return mb, nil
}
