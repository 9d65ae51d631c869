// Command belatrosrv runs the Belot match server.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/belatro/belatro-server/internal/config"
	"github.com/belatro/belatro-server/internal/database"
	"github.com/belatro/belatro-server/internal/events"
	"github.com/belatro/belatro-server/internal/presence"
	"github.com/belatro/belatro-server/internal/server"
	"github.com/belatro/belatro-server/internal/service"
	"github.com/belatro/belatro-server/internal/store"
	"github.com/belatro/belatro-server/internal/timer"
)

func main() {
	cfg := config.Load()

	log := logrus.New()
	log.SetLevel(cfg.LogLevel)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var matchStore store.MatchStore
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			log.WithError(err).Fatal("redis unreachable")
		}
		matchStore = store.NewRedisStore(client, cfg.GameTTL)
		log.WithField("addr", cfg.RedisAddr).Info("using redis match store")
	} else {
		matchStore = store.NewMemoryStore()
		log.Info("using in-memory match store")
	}

	if cfg.PostgresDSN != "" {
		if err := database.Connect(ctx, cfg.PostgresDSN); err != nil {
			log.WithError(err).Warn("postgres unavailable, move log disabled")
		} else {
			defer database.Close()
			log.Info("postgres move log enabled")
		}
	}

	bus := events.NewBus()
	reg := presence.NewRegistry()
	games := service.New(matchStore, bus, log)

	turnTimers := timer.New(games, reg, log, cfg.TurnTimeout)
	turnTimers.Bind(bus)
	defer turnTimers.Stop()

	srv := server.New(games, reg, log)
	srv.Bind(bus)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.WithError(err).Warn("http shutdown")
		}
	}()

	log.WithFields(logrus.Fields{
		"addr":        cfg.HTTPAddr,
		"turnTimeout": cfg.TurnTimeout,
	}).Info("belatro server listening")

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Fatal("http server failed")
	}
}
