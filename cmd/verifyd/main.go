package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"libauth/cmd/internal/env"
	"libauth/internal/app"
	"libauth/internal/logging"
	"libauth/internal/remote"
)

const (
	envPrefix       = "verifyd"
	shutdownTimeout = 10 * time.Second
)

type options struct {
	addr      string
	home      string
	maxBody   int64
	logLevel  string
	logFormat string
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "verifyd:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:           "verifyd",
		Short:         "Serve Ed25519 signature verification over HTTP",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		PreRunE: func(cmd *cobra.Command, _ []string) error {
			return env.CheckEnvironmentVariables(envPrefix, cmd)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			logger, err := logging.New(cmd.ErrOrStderr(), opts.logLevel, opts.logFormat)
			if err != nil {
				return err
			}
			srv, err := newServer(opts, logger)
			if err != nil {
				return err
			}
			return serve(ctx, srv, logger)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.home, "home", "", "directory holding trusted/ (default ~/.libauth)")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", remote.DefaultMaxBody, "maximum request body in bytes")
	cmd.Flags().StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().StringVar(&opts.logFormat, "log-format", "json", "log format: text, json, json-pretty")
	return cmd
}

func newServer(opts options, logger *logrus.Logger) (*http.Server, error) {
	if opts.home == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		opts.home = filepath.Join(dir, ".libauth")
	}
	if opts.maxBody <= 0 {
		return nil, fmt.Errorf("max-body must be positive, got %d", opts.maxBody)
	}

	w, err := app.NewWire(app.Config{Home: opts.home, Logger: logger})
	if err != nil {
		return nil, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	h := remote.NewHandler(w.Verification, logger.WithField("component", "http"), remote.Options{
		MaxBody:  opts.maxBody,
		Registry: reg,
	})

	logger.WithFields(logrus.Fields{"addr": opts.addr, "home": opts.home}).Info("verifyd configured")
	return &http.Server{
		Addr:              opts.addr,
		Handler:           h,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}, nil
}

// serve runs srv until ctx is cancelled, then drains connections.
func serve(ctx context.Context, srv *http.Server, logger logrus.FieldLogger) error {
	errc := make(chan error, 1)
	go func() {
		logger.WithField("addr", srv.Addr).Info("verifyd listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
