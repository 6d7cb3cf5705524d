// Package server exposes battery snapshots over HTTP on a unix socket.
// Each request takes a fresh snapshot; nothing is cached or polled.
package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/charlie0129/xbat/pkg/config"
	"github.com/charlie0129/xbat/pkg/snapshot"
)

// Opener takes one snapshot.
type Opener func(ctx context.Context) (snapshot.Snapshot, error)

const shutdownTimeout = 5 * time.Second

type Server struct {
	open   Opener
	conf   config.Config
	router *gin.Engine
}

// New builds the routes. conf may be nil, then /config answers 404.
func New(open Opener, conf config.Config) *Server {
	s := &Server{open: open, conf: conf}
	s.router = s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(ginLogger(logrus.StandardLogger()))
	router.GET("/info", s.getInfo)
	router.GET("/infos", s.getInfos)
	router.GET("/details", s.getDetails)
	router.GET("/status", s.getStatus)
	router.GET("/config", s.getConfig)
	router.GET("/version", getVersion)

	return router
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on socketPath until ctx is done, then shuts down gracefully.
// A stale socket file is replaced.
func (s *Server) Run(ctx context.Context, socketPath string, allowNonRoot bool) error {
	if err := os.Remove(socketPath); err != nil && !os.IsNotExist(err) {
		return pkgerrors.Wrapf(err, "failed to remove stale socket %s", socketPath)
	}

	l, err := net.Listen("unix", socketPath)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to listen on %s", socketPath)
	}

	if allowNonRoot {
		logrus.Infof("non-root access is allowed, changing permissions of %s to 0777", socketPath)
		if err := os.Chmod(socketPath, 0777); err != nil {
			_ = l.Close()
			return pkgerrors.Wrapf(err, "failed to change permissions of %s", socketPath)
		}
	}

	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logrus.Infof("http server listening on %s", l.Addr().String())
		errc <- srv.Serve(l)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return pkgerrors.Wrap(err, "http server failed")
	case <-ctx.Done():
	}

	logrus.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return pkgerrors.Wrap(err, "failed to shutdown http server")
	}
	return nil
}
