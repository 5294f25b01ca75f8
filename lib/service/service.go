// Package service contains the startup steps shared by the gateway and tracker services.
package service

import (
	"context"
	"errors"
	"net/http"
	"os"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/tarancss/chaingate/lib/block"
	"github.com/tarancss/chaingate/lib/block/node"
	"github.com/tarancss/chaingate/lib/config"
	"github.com/tarancss/chaingate/lib/metrics"
	"github.com/tarancss/chaingate/lib/msg"
	"github.com/tarancss/chaingate/lib/msg/broker"
)

// BrokerRetryDelay is the wait before connecting again to a message broker that is not ready yet.
var BrokerRetryDelay = 10 * time.Second

// Options are the command line flags of the services.
type Options struct {
	Config  string `short:"c" long:"config" description:"JSON configuration file"`
	Monitor bool   `short:"m" long:"monitor" description:"serve Prometheus metrics on the configured metrics address"`
}

// ParseFlags parses the command line into Options. It exits after printing the help if requested.
func ParseFlags(args []string) (Options, error) {
	var opts Options

	if _, err := flags.ParseArgs(&opts, args); err != nil {
		var fe *flags.Error
		if errors.As(err, &fe) && fe.Type == flags.ErrHelp {
			os.Exit(0)
		}

		return opts, err
	}

	return opts, nil
}

// Registry connects to the nodes of every configured coin, recording the metrics of their calls.
func Registry(ctx context.Context, conf config.ServiceConfig, log *zap.Logger) (*block.Registry, error) {
	return block.Init(ctx, conf.Coins, func(coin, network string) node.RPCMetrics {
		return metrics.NewRPCClient(coin, network)
	}, log)
}

// Monitor serves the Prometheus metrics on addr. The returned server is shut down by the caller.
func Monitor(addr string, log *zap.Logger) *http.Server {
	h := http.NewServeMux()
	h.Handle("/metrics", promhttp.Handler())

	s := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		log.Info("serving metrics API", zap.String("addr", addr))

		if err := s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			log.Error("metrics server stopped", zap.Error(err))
		}
	}()

	return s
}

// Broker connects to the configured message broker and sets it up. A broker that is not ready is tried again once
// after BrokerRetryDelay. No broker type returns a nil broker.
func Broker(ctx context.Context, conf config.ServiceConfig, log *zap.Logger) (msg.MsgBroker, error) {
	if conf.MbType == "" {
		log.Warn("no message broker configured, submissions are not tracked")

		return nil, nil //nolint:nilnil // no broker configured
	}

	return retry.DoWithData(
		func() (msg.MsgBroker, error) {
			mb, err := broker.New(conf.MbType, conf.MbConn, log)
			if err != nil {
				return nil, err
			}

			if err = mb.Setup(ctx); err != nil {
				_ = mb.Close()

				return nil, err
			}

			return mb, nil
		},
		retry.Context(ctx),
		retry.Attempts(2),
		retry.Delay(BrokerRetryDelay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool { return !errors.Is(err, broker.ErrUnknownType) }),
		retry.OnRetry(func(n uint, err error) {
			log.Warn("message broker not ready", zap.String("type", conf.MbType), zap.Uint("attempt", n+1),
				zap.Error(err))
		}),
	)
}
