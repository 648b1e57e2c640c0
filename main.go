package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nstehr/brood/agent"
	"github.com/nstehr/brood/config"
	"github.com/nstehr/brood/ipc"
	"github.com/nstehr/brood/telemetry"
)

const banner = `
██████╗ ██████╗  ██████╗  ██████╗ ██████╗
██╔══██╗██╔══██╗██╔═══██╗██╔═══██╗██╔══██╗
██████╔╝██████╔╝██║   ██║██║   ██║██║  ██║
██╔══██╗██╔══██╗██║   ██║██║   ██║██║  ██║
██████╔╝██║  ██║╚██████╔╝╚██████╔╝██████╔╝
╚═════╝ ╚═╝  ╚═╝ ╚═════╝  ╚═════╝ ╚═════╝

Timing-Window RTS Intelligence`

func main() {
	settings, err := config.Load(".")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: settings.SlogLevel(),
	}))
	slog.SetDefault(logger)

	fmt.Println(banner)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = run(ctx, settings)
	stop()
	if err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("shutting down")
}

// run serves hosts until ctx is cancelled. Everything it opens is closed
// before it returns.
func run(ctx context.Context, settings config.Settings) error {
	slog.Info("starting brood", "transport", settings.Transport, "profile", settings.ProfilePath)

	opts := agent.Options{
		ProfilePath: settings.ProfilePath,
		Seed:        settings.Seed,
		JournalDir:  settings.JournalDir,
	}
	if settings.DBPath != "" {
		store, err := telemetry.OpenStore(settings.DBPath)
		if err != nil {
			return fmt.Errorf("open match store %s: %w", settings.DBPath, err)
		}
		defer store.Close()
		opts.Store = store
	}

	serve := func(t ipc.Transport) { handleConn(t, opts) }

	switch settings.Transport {
	case config.TransportWebSocket:
		return serveWebSocket(ctx, settings.ListenAddr, serve)
	default:
		return serveUnix(ctx, settings.SocketPath, serve)
	}
}

func serveUnix(ctx context.Context, socketPath string, serve func(ipc.Transport)) error {
	// Unix sockets leave behind a file on unclean shutdown; remove it so we can rebind.
	if err := os.RemoveAll(socketPath); err != nil {
		return fmt.Errorf("clean up socket %s: %w", socketPath, err)
	}

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", socketPath, err)
	}
	defer listener.Close()
	defer os.Remove(socketPath)

	slog.Info("listening on domain socket", "path", socketPath)

	go func() {
		for {
			conn, err := listener.Accept()
			if err != nil {
				select {
				case <-ctx.Done():
					return
				default:
					slog.Error("failed to accept connection", "error", err)
					continue
				}
			}
			slog.Info("new connection accepted")
			go serve(ipc.NewFramedTransport(conn))
		}
	}()

	<-ctx.Done()
	return nil
}

func serveWebSocket(ctx context.Context, addr string, serve func(ipc.Transport)) error {
	mux := http.NewServeMux()
	mux.Handle("/agent", ipc.WebSocketHandler(func(t ipc.Transport) {
		slog.Info("new connection accepted", "remote", t.RemoteAddr())
		serve(t)
	}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	slog.Info("listening for websocket hosts", "addr", addr, "path", "/agent")

	select {
	case err := <-errCh:
		return fmt.Errorf("listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func handleConn(t ipc.Transport, opts agent.Options) {
	c := ipc.NewConnection(t, nil)
	a := agent.New(c, opts)
	defer a.Close()
	a.Register()
	c.ReadLoop()
}
