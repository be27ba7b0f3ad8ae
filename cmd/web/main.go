package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/minaorangina/uno/config"
	"github.com/minaorangina/uno/server"
	"github.com/minaorangina/uno/store"
	"k8s.io/klog/v2"
)

const shutdownTimeout = 10 * time.Second

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	defer klog.Flush()

	cfg, err := config.Load()
	if err != nil {
		klog.Exitf("could not load config: %v", err)
	}

	s := server.NewServer(store.NewInMemoryGameStore(), cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		klog.Infof("Listening on %s...", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			klog.Exitf("server stopped: %v", err)
		}
	}()

	<-ctx.Done()
	klog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		klog.Errorf("shutdown: %v", err)
	}
}
