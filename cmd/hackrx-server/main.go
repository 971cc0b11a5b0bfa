package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Lllllllleong/hackrx-docqa/internal/config"
	"github.com/Lllllllleong/hackrx-docqa/internal/services"
)

func main() {
	app := &cli.App{
		Name:  "hackrx-server",
		Usage: "answer questions about PDF documents over HTTP",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a YAML config file",
				EnvVars: []string{"CONFIG_FILE"},
			},
			&cli.StringFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "port to listen on, overrides the config file",
				EnvVars: []string{"PORT"},
			},
			&cli.StringFlag{
				Name:    "env-file",
				Value:   ".env",
				Usage:   "dotenv file loaded before reading configuration",
				EnvVars: []string{"ENV_FILE"},
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if err := godotenv.Load(c.String("env-file")); err != nil {
		if c.IsSet("env-file") || !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}
	if c.IsSet("port") {
		cfg.Server.Port = c.String("port")
	}
	if err := config.JoinErrors(cfg.Validate()); err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()})))

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	runFunc := services.NewRunFunctionFromConfig(ctx, cfg)
	defer func() {
		if err := runFunc.Close(); err != nil {
			slog.Warn("Failed to close clients", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           newMux(runFunc),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return serve(ctx, srv, cfg.Server.ShutdownTimeout)
}

func newMux(runFunc *services.RunFunction) *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle(services.RunPath, runFunc)
	mux.HandleFunc("GET /healthz", runFunc.Health)
	return mux
}

// serve runs srv until ctx is cancelled, then shuts it down gracefully.
func serve(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Server listening.", "addr", srv.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutting down server.")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
