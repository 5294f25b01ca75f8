// Package main: gateway service.
//
// The gateway records the transactions it broadcasts in the database and publishes them to the message broker, so
// both should be shared with the tracker service. Without them the gateway still serves every request.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tarancss/chaingate/gateway"
	"github.com/tarancss/chaingate/lib/config"
	"github.com/tarancss/chaingate/lib/logger"
	"github.com/tarancss/chaingate/lib/service"
	"github.com/tarancss/chaingate/lib/store/db"
)

func main() {
	// get command line flags
	opts, err := service.ParseFlags(os.Args[1:])
	if err != nil {
		os.Exit(1)
	}

	// extract configuration
	conf, err := config.ExtractConfiguration(opts.Config)
	if err != nil {
		panic(err)
	}

	log, err := logger.New(conf.Env)
	if err != nil {
		panic(err)
	}

	defer func() { _ = log.Sync() }()

	log.Info("configuration loaded", zap.String("file", opts.Config), zap.Int("coins", len(conf.Coins)),
		zap.String("dbtype", conf.DBType), zap.String("mbtype", conf.MbType))

	// capture CTRL+C or docker's SIGTERM for gracious exit
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// connect to database
	dbConn, err := db.New(ctx, conf.DBType, conf.DBConn)
	if err != nil {
		log.Fatal("cannot connect to database", zap.String("dbtype", conf.DBType), zap.Error(err))
	}

	if dbConn != nil {
		defer func() {
			err := db.Close(context.Background(), conf.DBType, dbConn)
			log.Info("disconnecting database", zap.String("dbtype", conf.DBType), zap.Error(err))
		}()
	}

	// load all blockchains
	reg, err := service.Registry(ctx, conf, log)
	if err != nil {
		log.Fatal("cannot load blockchain clients", zap.Error(err))
	}
	defer reg.Close()

	// load Prometheus monitor
	if opts.Monitor {
		ms := service.Monitor(conf.MetricsAddr, log)
		defer func() { _ = ms.Shutdown(context.Background()) }()
	}

	// load message broker
	mb, err := service.Broker(ctx, conf, log)
	if err != nil {
		log.Fatal("cannot connect to message broker", zap.String("mbtype", conf.MbType), zap.Error(err))
	}

	if mb != nil {
		defer func() {
			err := mb.Close()
			log.Info("closing message broker", zap.Error(err))
		}()
	}

	// create gateway service
	g := gateway.New(reg, dbConn, mb, conf.Timeout, log)

	go func() {
		<-ctx.Done()
		log.Info("program killed")
		// wait for the requests being served
		sctx, cancel := context.WithTimeout(context.Background(), conf.Timeout)
		defer cancel()

		g.Stop(sctx)
	}()

	// init RESTful API, wait for its return and log response
	log.Info("gateway stopped", zap.String("res", g.Init(conf.Endpoint, conf.Port, conf.SSLPort, conf.SSLCert,
		conf.SSLKey)))
}
