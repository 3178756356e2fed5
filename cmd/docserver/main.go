/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Command docserver serves a small document API backed by MongoDB. Every
// failure is classified and answered with a JSON {"message": ...} body;
// internal failures are reported to the configured diagnostic sink.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dirpx.dev/rejectx/classify"
	"dirpx.dev/rejectx/docstore"
	"dirpx.dev/rejectx/internal/config"
	"dirpx.dev/rejectx/internal/server"
	"dirpx.dev/rejectx/logging"
	"dirpx.dev/rejectx/metrics"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintln(os.Stderr, "docserver:", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	sink, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer sink.Close()
	log := sink.Logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := docstore.Open(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
	if err != nil {
		return fmt.Errorf("connect to mongo: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := store.Close(closeCtx); err != nil {
			log.Warn("mongo disconnect failed", "error", err)
		}
	}()
	log.Info("connected to mongo", "database", cfg.Mongo.Database, "collection", cfg.Mongo.Collection)

	opts, err := cfg.ClassifyOptions()
	if err != nil {
		return err
	}
	opts = append(opts, classify.WithLogger(log))

	var metricsHandler http.Handler
	if cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		obs, err := metrics.NewObserver(reg, cfg.Metrics.Namespace)
		if err != nil {
			return err
		}
		opts = append(opts, classify.WithObserver(obs))
		metricsHandler = promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
	}

	classifier, err := classify.New(opts...)
	if err != nil {
		return err
	}

	handler, err := server.New(server.Options{
		Store:      store,
		Classifier: classifier,
		Metrics:    metricsHandler,
		BodyLimit:  cfg.Server.BodyLimit,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ErrorLog:          slog.NewLogLogger(log.Handler(), slog.LevelWarn),
	}

	errCh := make(chan error, 2)
	go func() {
		log.Info("listening", "addr", cfg.Server.Addr)
		errCh <- srv.ListenAndServe()
	}()

	if cfg.GRPC.Addr != "" {
		gsrv, err := server.NewGRPCServer(store, classifier, cfg.GRPC.Domain)
		if err != nil {
			return err
		}
		lis, err := net.Listen("tcp", cfg.GRPC.Addr)
		if err != nil {
			return fmt.Errorf("grpc listen: %w", err)
		}
		go func() {
			log.Info("grpc listening", "addr", cfg.GRPC.Addr)
			if err := gsrv.Serve(lis); err != nil {
				errCh <- fmt.Errorf("grpc: %w", err)
			}
		}()
		defer gsrv.GracefulStop()
	}

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
