package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/snapp-incubator/proksi-cloudbeds/internal/cloudbeds"
	"github.com/snapp-incubator/proksi-cloudbeds/internal/config"
	"github.com/snapp-incubator/proksi-cloudbeds/internal/handler"
	"github.com/snapp-incubator/proksi-cloudbeds/internal/logging"
	"github.com/snapp-incubator/proksi-cloudbeds/internal/metrics"
	"github.com/snapp-incubator/proksi-cloudbeds/internal/sampling"
	"github.com/snapp-incubator/proksi-cloudbeds/internal/storage"
)

var configPath string // Path of config file

var rootCmd = &cobra.Command{
	Use:   "proksi-cloudbeds",
	Short: "Credential-injecting proxy for the Cloudbeds API",
	Long: `proksi-cloudbeds forwards simplified ping, availability and booking
requests to the Cloudbeds REST API with a bearer credential and relays the
response, or a normalized error, in a uniform JSON envelope.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path of config file")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func serve(ctx context.Context) error {
	c, err := config.LoadHTTP(configPath)
	if err != nil {
		return err
	}

	if err := logging.Setup(c.Logging.Level); err != nil {
		return fmt.Errorf("error in setting up the logger: %w", err)
	}
	defer func() { _ = logging.L.Sync() }()

	if _, ok := (cloudbeds.Config{APIKey: c.Cloudbeds.APIKey, AccessToken: c.Cloudbeds.AccessToken}).Token(); !ok {
		logging.L.Warn("no Cloudbeds credential configured, every call will answer 401")
	}

	store, err := storage.New(c)
	if err != nil {
		return err
	}

	sampler, err := sampling.NewBucket(c.RecordProbability)
	if err != nil {
		return err
	}

	fwd := cloudbeds.NewForwarder(cloudbeds.Config{
		APIKey:      c.Cloudbeds.APIKey,
		AccessToken: c.Cloudbeds.AccessToken,
		BaseURL:     c.Cloudbeds.APIBase,
		Timeout:     c.Cloudbeds.Timeout,
	}, nil)

	r := mux.NewRouter()
	handler.New(fwd, store, sampler).Register(r)

	if c.Metrics.Enabled {
		go metrics.InitializeHTTP(c.Metrics.Bind)
	}

	srv := &http.Server{
		Addr:        c.Bind,
		Handler:     r,
		ReadTimeout: time.Second * 15,
		IdleTimeout: time.Second * 60,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.L.Info("proksi-cloudbeds is running",
			zap.String("bind", c.Bind),
			zap.String("upstream", c.Cloudbeds.APIBase),
			zap.String("storage", c.Storage.Type),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("error in HTTP server ListenAndServe: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(2)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("error in shutting down the server: %w", err)
	}
	logging.L.Info("proksi-cloudbeds is down")
	return nil
}
