package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fwojciec/stratchat/assistant"
	"github.com/fwojciec/stratchat/fsnotify"
	chathttp "github.com/fwojciec/stratchat/http"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

// Run executes the serve command until interrupted.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := chathttp.NewServer(deps.Logger)
	srv.Generator = deps.Generator
	srv.Responder = deps.Responder
	srv.Metrics = deps.Metrics
	srv.ProxyInstruction = assistant.ProxyInstruction

	ln, err := net.Listen("tcp", c.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %q: %w", c.Addr, err)
	}
	hs := &http.Server{Handler: srv, ReadHeaderTimeout: 10 * time.Second}
	fmt.Fprintf(deps.Stderr, "Listening on %s\n", ln.Addr())

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := hs.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return hs.Shutdown(shutdownCtx)
	})
	if c.Watch && deps.Reloader != nil {
		w := fsnotify.NewWatcher(deps.KnowledgePath, deps.Reloader, deps.Logger)
		g.Go(func() error {
			return w.Run(ctx)
		})
	}
	return g.Wait()
}
