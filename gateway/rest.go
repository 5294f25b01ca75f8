package gateway

import (
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/tarancss/chaingate/lib/metrics"
)

// Init sets up and starts the http/https server to service the RESTful API and blocks until Stop is called. If
// sslPort, sslCert and sslKey are informed, it will also start an https (TLS) server on the specified endpoint.
func (g *Gateway) Init(endpoint, port, sslPort, sslCert, sslKey string) string {
	var (
		err, errTLS error
		wg          sync.WaitGroup
	)

	h := g.router()

	g.mu.Lock()
	if g.stopped {
		g.mu.Unlock()

		return "stopped before start"
	}

	// start http server
	if port != "" {
		g.s = g.server(h, endpoint+":"+port)

		wg.Add(1)

		go func() {
			defer wg.Done()

			if err = g.s.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				g.log.Error("http server stopped", zap.Error(err))
			}
		}()

		g.log.Info("listening to API http requests", zap.String("endpoint", endpoint), zap.String("port", port))
	}
	// start https server
	if sslPort != "" && sslCert != "" && sslKey != "" {
		g.ss = g.server(h, endpoint+":"+sslPort)

		wg.Add(1)

		go func() {
			defer wg.Done()

			if errTLS = g.ss.ListenAndServeTLS(sslCert, sslKey); !errors.Is(errTLS, http.ErrServerClosed) {
				g.log.Error("https server stopped", zap.Error(errTLS))
			}
		}()

		g.log.Info("listening to API https requests", zap.String("endpoint", endpoint), zap.String("port", sslPort))
	}
	g.mu.Unlock()
	// wait for servers to be shutdown
	<-g.sc
	wg.Wait()

	return fmt.Sprintf("shutdown http server:%v, https server:%v", err, errTLS)
}

func (g *Gateway) server(h http.Handler, addr string) *http.Server {
	s := &http.Server{
		Handler:           h,
		Addr:              addr,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	if g.timeout > 0 {
		s.ReadTimeout = g.timeout
		s.WriteTimeout = g.timeout + writeGrace
	}

	return s
}

// router returns the API definition.
func (g *Gateway) router() http.Handler {
	r := mux.NewRouter()
	r.Use(metrics.HTTP)

	v1 := r.PathPrefix("/v1").Subrouter()
	v1.HandleFunc("/coins", g.coinsHandler).Methods(http.MethodGet) // get the coins served

	c := v1.PathPrefix("/{network}/{coin}").Subrouter()
	c.HandleFunc("/tx/id/{txId}", g.handle(g.txByID)).Methods(http.MethodGet)
	c.HandleFunc("/tx/block/{block}", g.handle(g.txsByBlock)).Methods(http.MethodGet)
	c.HandleFunc("/tx/height/{height}", g.handle(g.txsByHeight)).Methods(http.MethodGet)
	c.HandleFunc("/tx/height/{height}/{includeDetails}", g.handle(g.txsByHeight)).Methods(http.MethodGet)
	c.HandleFunc("/tx/raw", g.handle(g.sendRaw)).Methods(http.MethodPost)
	c.HandleFunc("/block/height", g.handle(g.currentHeight)).Methods(http.MethodGet)
	c.HandleFunc("/tokens", g.handle(g.tokens)).Methods(http.MethodGet)
	c.HandleFunc("/tokens/{token}", g.handle(g.token)).Methods(http.MethodGet)

	return cors.Default().Handler(r)
}
