package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	httpapi "nim-relay/internal/api/http"
	"nim-relay/internal/api/ws"
	"nim-relay/internal/config"
	"nim-relay/internal/logging"
	"nim-relay/internal/room"
	"nim-relay/internal/store"

	_ "nim-relay/docs"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @title Nim Relay API
// @version 1.0
// @description Room listing and health endpoints for the Nim multiplayer relay. Gameplay runs over the /ws socket.
// @BasePath /
func main() {
	cfg, err := config.Load(".env")
	if err != nil {
		logrus.WithError(err).Fatal("failed to load config")
	}
	if err := logging.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		logrus.WithError(err).Fatal("failed to set up logging")
	}
	if cfg.LogLevel != "debug" && cfg.LogLevel != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	mem := store.NewMemoryStore()
	registry := room.NewRegistry(mem, room.WithCodeLength(cfg.RoomCodeLength))
	hub := ws.NewHub()
	rm := room.NewManager(registry, hub)
	socket := ws.NewHandler(hub, rm, ws.Options{
		AllowedOrigin: cfg.AllowedOrigin,
		SendBuffer:    cfg.SendBuffer,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: httpapi.NewRouter(rm, socket),
	}

	go func() {
		logrus.Infof("listening on %s", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Warn("http shutdown did not finish cleanly")
	}
	hub.Close()
	if err := socket.Drain(ctx); err != nil {
		logrus.WithError(err).Warn("socket handlers did not drain before timeout")
	}
	rm.Close()
	logrus.Info("bye")
}
