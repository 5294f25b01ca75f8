// Package gateway implements the gateway microservice.
//
// This microservice implements a RESTful API for clients to read the transactions, blocks and tokens of multiple
// blockchains and to broadcast signed transactions to them. Requests are dispatched to the providers registered for
// the coin in the uri. Every failure is replied with status 400 and an ErrorModel body.
package gateway

import (
	"context"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/tarancss/chaingate/lib/block"
)

// Gateway contains the data necessary to deliver the service
type Gateway struct {
	reg     *block.Registry
	db      SubmissionStore     // optional, records broadcasts
	mb      SubmissionPublisher // optional, notifies broadcasts to the tracker
	enrich  *Enricher
	log     *zap.Logger
	timeout time.Duration // per request, 0 means no timeout
	mu      sync.Mutex    // guards the servers while starting and stopping
	stopped bool
	s       *http.Server  // http server
	ss      *http.Server  // https server
	sc      chan struct{} // closed once the servers are shut down
}

// New returns a pointer to a new Gateway service serving the coins in reg. db and mb may be nil.
func New(reg *block.Registry, db SubmissionStore, mb SubmissionPublisher, timeout time.Duration,
	log *zap.Logger) *Gateway {
	return &Gateway{
		reg:     reg,
		db:      db,
		mb:      mb,
		enrich:  NewEnricher(log),
		log:     log,
		timeout: timeout,
		sc:      make(chan struct{}),
	}
}

// Stop shuts down the http servers implementing the RESTful API, making Init return. Connections to the nodes,
// database and message broker are closed by the caller.
func (g *Gateway) Stop(ctx context.Context) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.stopped {
		return
	}

	g.stopped = true

	if g.s != nil {
		if err := g.s.Shutdown(ctx); err != nil {
			g.log.Error("http server shutdown", zap.Error(err))
		}
	}

	if g.ss != nil {
		if err := g.ss.Shutdown(ctx); err != nil {
			g.log.Error("https server shutdown", zap.Error(err))
		}
	}

	close(g.sc)
}
