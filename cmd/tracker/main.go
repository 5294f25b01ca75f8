// Package main: tracker service.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/tarancss/chaingate/lib/config"
	"github.com/tarancss/chaingate/lib/logger"
	"github.com/tarancss/chaingate/lib/service"
	"github.com/tarancss/chaingate/lib/store/db"
	"github.com/tarancss/chaingate/tracker"
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
		zap.Duration("poll", conf.Tracker.Poll), zap.Duration("maxAge", conf.Tracker.MaxAge))

	// capture CTRL+C or docker's SIGTERM for gracious exit
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// connect to database
	dbConn, err := db.New(ctx, conf.DBType, conf.DBConn)
	if err != nil {
		log.Fatal("cannot connect to database", zap.String("dbtype", conf.DBType), zap.Error(err))
	}

	if dbConn == nil {
		log.Warn("no database configured, resolved submissions are not stored")
	} else {
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

	// create tracker service
	t := tracker.New(reg, dbConn, mb, conf.Tracker, log)

	// launch tracker (for each coin) and wait for all of them to return
	log.Info("tracker stopped", zap.String("res", <-t.Track(ctx)))
}
